package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/2beens/fitsuggest/pkg"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Validate checks value against the schema and returns a normalized copy that
// holds only declared fields, with integers as int64. Invalid image data URIs are dropped as if absent.
// All field errors are reported together; rules are evaluated last, on the
// normalized value.
func Validate(s *Schema, value any) (map[string]any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, &TypeMismatchError{Path: s.Name, Expected: KindRecord.String(), Actual: typeName(value)}
	}

	out, errs := validateRecord("", s.Fields, m)
	for _, r := range s.Rules {
		if !anyPresent(out, r.MinimumOneOf) {
			errs = multierr.Append(errs, &RuleError{Rule: r.Name, Fields: r.MinimumOneOf})
		}
	}
	if errs != nil {
		return nil, errs
	}

	return out, nil
}

func validateRecord(path string, fields []Field, m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	var errs error
	for _, f := range fields {
		fieldPath := joinPath(path, f.Name)
		v, present := m[f.Name]

		if present && v == nil {
			switch {
			case f.Nullable:
				out[f.Name] = nil
				continue
			case f.Optional:
				present = false
			default:
				errs = multierr.Append(errs, &TypeMismatchError{Path: fieldPath, Expected: expectedName(f), Actual: "null"})
				continue
			}
		}

		if !present {
			if !f.Optional {
				errs = multierr.Append(errs, &MissingFieldError{Path: fieldPath})
			}
			continue
		}

		nv, keep, err := validateValue(fieldPath, f, v)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if !keep {
			if !f.Optional {
				errs = multierr.Append(errs, &MissingFieldError{Path: fieldPath})
			}
			continue
		}
		out[f.Name] = nv
	}
	return out, errs
}

// validateValue returns keep=false when the value must be treated as absent.
func validateValue(path string, f Field, v any) (_ any, keep bool, err error) {
	switch f.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, false, mismatch(path, f, v)
		}
		return s, true, nil

	case KindDataURI:
		s, ok := v.(string)
		if !ok {
			return nil, false, mismatch(path, f, v)
		}
		if s == "" {
			return nil, false, nil
		}
		d, err := pkg.ParseImageDataURI(s)
		if err != nil {
			log.Debugf("schema: dropping field %s, not an image data uri: %s", path, err)
			return nil, false, nil
		}
		if d.MIMEType != d.DeclaredMIMEType {
			log.Tracef("schema: field %s declares %s, payload is %s", path, d.DeclaredMIMEType, d.MIMEType)
		}
		return s, true, nil

	case KindNumber:
		n, num, ok := toNumber(v)
		if !ok {
			return nil, false, mismatch(path, f, v)
		}
		if err := checkBounds(path, f, num); err != nil {
			return nil, false, err
		}
		return n, true, nil

	case KindInteger:
		_, num, ok := toNumber(v)
		if !ok || num != math.Trunc(num) || math.Abs(num) > 1<<53 {
			return nil, false, mismatch(path, f, v)
		}
		if err := checkBounds(path, f, num); err != nil {
			return nil, false, err
		}
		// 3.0 is a valid integer; normalize so it decodes into Go ints
		return int64(num), true, nil

	case KindBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, false, mismatch(path, f, v)
		}
		return b, true, nil

	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return nil, false, mismatch(path, f, v)
		}
		if !slices.Contains(f.Enum, s) {
			return nil, false, &InvalidEnumValueError{Path: path, Value: s, Allowed: f.Enum}
		}
		return s, true, nil

	case KindList:
		items, ok := v.([]any)
		if !ok {
			return nil, false, mismatch(path, f, v)
		}
		return validateList(path, *f.Items, items)

	case KindRecord:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false, mismatch(path, f, v)
		}
		out, err := validateRecord(path, f.Fields, m)
		if err != nil {
			return nil, false, err
		}
		return out, true, nil

	default:
		return nil, false, fmt.Errorf("field %q: unsupported kind %s", path, f.Kind)
	}
}

func validateList(path string, elem Field, items []any) (any, bool, error) {
	out := make([]any, 0, len(items))
	var errs error
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if item == nil {
			if elem.Nullable {
				out = append(out, nil)
			} else {
				errs = multierr.Append(errs, &TypeMismatchError{Path: itemPath, Expected: expectedName(elem), Actual: "null"})
			}
			continue
		}
		nv, keep, err := validateValue(itemPath, elem, item)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if keep {
			out = append(out, nv)
		}
	}
	if errs != nil {
		return nil, false, errs
	}
	return out, true, nil
}

func checkBounds(path string, f Field, num float64) error {
	if f.Bounds == nil {
		return nil
	}
	if num < f.Bounds.Min || num > f.Bounds.Max {
		return &OutOfRangeError{Path: path, Value: num, Min: f.Bounds.Min, Max: f.Bounds.Max}
	}
	return nil
}

func mismatch(path string, f Field, v any) error {
	return &TypeMismatchError{Path: path, Expected: expectedName(f), Actual: typeName(v)}
}

func expectedName(f Field) string {
	if f.Kind == KindDataURI {
		return KindString.String()
	}
	return f.Kind.String()
}

// toNumber accepts the json.Number produced by Decode as well as plain Go
// numbers, and returns the value in a form that renders losslessly.
func toNumber(v any) (any, float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil, 0, false
		}
		return n, f, true
	case float64:
		return n, n, true
	case float32:
		return n, float64(n), true
	case int:
		return n, float64(n), true
	case int64:
		return n, float64(n), true
	case int32:
		return n, float64(n), true
	default:
		return nil, 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64, float32, int, int64, int32:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any:
		return "record"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// IsEmpty reports whether a normalized value counts as not provided:
// absent, null, empty string or empty list.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	default:
		return false
	}
}

func anyPresent(m map[string]any, names []string) bool {
	for _, name := range names {
		if !IsEmpty(m[name]) {
			return true
		}
	}
	return false
}
