// Package schema declares the shape of suggestion requests and responses as
// plain field descriptors, interpreted by a single generic validator.
package schema

import (
	"errors"
	"fmt"
	"slices"
)

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInteger
	KindBoolean
	KindEnum
	KindList
	KindRecord
	// KindDataURI is a string holding an image as data:<mimetype>;base64,<payload>.
	KindDataURI
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindEnum:
		return "enum"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	case KindDataURI:
		return "data-uri"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Bounds limits a number or integer field, both ends inclusive.
type Bounds struct {
	Min float64
	Max float64
}

func Range(min, max float64) *Bounds {
	return &Bounds{Min: min, Max: max}
}

// Field describes one field of a record, or the element of a list (Name empty).
type Field struct {
	Name        string
	Kind        Kind
	Description string

	// Optional fields may be absent; Nullable fields may be present with null.
	Optional bool
	Nullable bool

	// Enum holds the closed value set for KindEnum.
	Enum []string
	// Items describes list elements for KindList.
	Items *Field
	// Fields describes the nested record for KindRecord.
	Fields []Field
	// Bounds is only checked for KindNumber and KindInteger.
	Bounds *Bounds
}

// Lookup returns the nested record field with the given name.
func (f Field) Lookup(name string) (Field, bool) {
	return lookup(f.Fields, name)
}

// Rule is a cross-field constraint evaluated after field validation.
type Rule struct {
	Name string
	// MinimumOneOf requires at least one of the named optional fields to be set.
	MinimumOneOf []string
}

func MinimumOneOf(name string, fields ...string) Rule {
	return Rule{Name: name, MinimumOneOf: fields}
}

// Schema is the top-level record of a request or response.
type Schema struct {
	Name   string
	Fields []Field
	Rules  []Rule
}

func (s *Schema) Lookup(name string) (Field, bool) {
	return lookup(s.Fields, name)
}

// AsField returns the schema as a record field, used when a caller needs to
// walk the schema and its nested fields uniformly.
func (s *Schema) AsField() Field {
	return Field{Name: s.Name, Kind: KindRecord, Fields: s.Fields}
}

// Check reports malformed declarations: duplicate names, enums without values,
// lists without items, bad bounds, and rules over unknown or required fields.
func (s *Schema) Check() error {
	if err := checkFields(s.Name, s.Fields); err != nil {
		return err
	}
	for _, r := range s.Rules {
		if len(r.MinimumOneOf) == 0 {
			return fmt.Errorf("%s: rule %q has no fields", s.Name, r.Name)
		}
		for _, name := range r.MinimumOneOf {
			f, ok := s.Lookup(name)
			if !ok {
				return fmt.Errorf("%s: rule %q references unknown field %q", s.Name, r.Name, name)
			}
			if !f.Optional {
				return fmt.Errorf("%s: rule %q references required field %q", s.Name, r.Name, name)
			}
		}
	}
	return nil
}

func checkFields(path string, fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("%s: unnamed field", path)
		}
		if seen[f.Name] {
			return fmt.Errorf("%s: duplicate field %q", path, f.Name)
		}
		seen[f.Name] = true
		if err := checkField(joinPath(path, f.Name), f); err != nil {
			return err
		}
	}
	return nil
}

func checkField(path string, f Field) error {
	switch f.Kind {
	case KindEnum:
		if len(f.Enum) == 0 {
			return fmt.Errorf("%s: enum without values", path)
		}
		sorted := slices.Clone(f.Enum)
		slices.Sort(sorted)
		if len(slices.Compact(sorted)) != len(f.Enum) {
			return fmt.Errorf("%s: duplicate enum values", path)
		}
	case KindList:
		if f.Items == nil {
			return fmt.Errorf("%s: list without items", path)
		}
		return checkField(path+"[]", *f.Items)
	case KindRecord:
		if len(f.Fields) == 0 {
			return fmt.Errorf("%s: record without fields", path)
		}
		return checkFields(path, f.Fields)
	case KindNumber, KindInteger:
		if f.Bounds != nil && f.Bounds.Min > f.Bounds.Max {
			return fmt.Errorf("%s: min %v above max %v", path, f.Bounds.Min, f.Bounds.Max)
		}
	case KindString, KindBoolean, KindDataURI:
	default:
		return errors.New(path + ": unknown kind " + f.Kind.String())
	}
	return nil
}

func lookup(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
