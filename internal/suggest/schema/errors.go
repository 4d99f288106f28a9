package schema

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ErrValidation matches every validation error via errors.Is.
var ErrValidation = errors.New("validation failed")

type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Path)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrValidation }

type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrValidation }

type InvalidEnumValueError struct {
	Path    string
	Value   string
	Allowed []string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("field %q: invalid value %q, allowed: %s", e.Path, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *InvalidEnumValueError) Is(target error) bool { return target == ErrValidation }

type OutOfRangeError struct {
	Path  string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("field %q: value %v outside [%v, %v]", e.Path, e.Value, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrValidation }

// RuleError reports a failed cross-field rule such as MinimumOneOf.
type RuleError struct {
	Rule   string
	Fields []string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s: at least one of [%s] must be provided", e.Rule, strings.Join(e.Fields, ", "))
}

func (e *RuleError) Is(target error) bool { return target == ErrValidation }

// Errors flattens a combined validation error into its parts.
func Errors(err error) []error {
	return multierr.Errors(err)
}
