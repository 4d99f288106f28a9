package prompt

import (
	"errors"
	"fmt"

	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

var (
	ErrUnboundField = errors.New("field not declared in schema")
	ErrKindMismatch = errors.New("segment does not fit field kind")
)

// Check verifies the template against the request schema: every referenced
// field exists in its scope, Each targets a list of records, Media targets a
// data-uri field (and only once), and data-uri fields never render as text.
func (t *Template) Check(s *schema.Schema) error {
	media := map[string]bool{}
	return t.check("", s.Fields, t.segments, media)
}

func (t *Template) check(scope string, fields []schema.Field, segments []Segment, media map[string]bool) error {
	for _, seg := range segments {
		if seg.kind == segText {
			continue
		}

		path := seg.field
		if scope != "" {
			path = scope + "." + seg.field
		}
		f, ok := lookup(fields, seg.field)
		if !ok {
			return fmt.Errorf("template %s: %q: %w", t.name, path, ErrUnboundField)
		}

		switch seg.kind {
		case segField:
			if f.Kind == schema.KindDataURI {
				return fmt.Errorf("template %s: %q is a data uri, use Media: %w", t.name, path, ErrKindMismatch)
			}
		case segIf:
			if err := t.check(scope, fields, seg.body, media); err != nil {
				return err
			}
		case segEach:
			if f.Kind != schema.KindList || f.Items == nil || f.Items.Kind != schema.KindRecord {
				return fmt.Errorf("template %s: each over %q (%s), want list of records: %w", t.name, path, f.Kind, ErrKindMismatch)
			}
			if err := t.check(path+"[]", f.Items.Fields, seg.body, media); err != nil {
				return err
			}
		case segMedia:
			if f.Kind != schema.KindDataURI {
				return fmt.Errorf("template %s: media %q (%s), want data uri: %w", t.name, path, f.Kind, ErrKindMismatch)
			}
			if scope != "" {
				return fmt.Errorf("template %s: media %q inside each: %w", t.name, path, ErrKindMismatch)
			}
			if media[path] {
				return fmt.Errorf("template %s: media %q attached twice: %w", t.name, path, ErrKindMismatch)
			}
			media[path] = true
		}
	}
	return nil
}

func lookup(fields []schema.Field, name string) (schema.Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return schema.Field{}, false
}
