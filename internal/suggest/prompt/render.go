package prompt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/fitsuggest/internal/suggest/schema"
	"github.com/2beens/fitsuggest/pkg"
)

// Attachment is an image taken out of the request.
type Attachment struct {
	Field    string
	MIMEType string
	// Data is the base64 payload, as it appeared in the data uri.
	Data string
}

// Part is either text or a media attachment.
type Part struct {
	Text  string
	Media *Attachment
}

func (p Part) IsMedia() bool {
	return p.Media != nil
}

// Rendered is the output of a template: text and media parts in template order.
type Rendered struct {
	Template string
	Parts    []Part
}

// Text joins all text parts.
func (r *Rendered) Text() string {
	var sb strings.Builder
	for _, p := range r.Parts {
		if !p.IsMedia() {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func (r *Rendered) Media() []Attachment {
	var media []Attachment
	for _, p := range r.Parts {
		if p.IsMedia() {
			media = append(media, *p.Media)
		}
	}
	return media
}

// Render fills the template with a validated request value, as returned by
// schema.Validate.
func (t *Template) Render(value map[string]any) (*Rendered, error) {
	r := &renderer{}
	if err := r.walk(t.segments, value); err != nil {
		return nil, fmt.Errorf("render %s: %w", t.name, err)
	}
	r.flush()
	return &Rendered{Template: t.name, Parts: r.parts}, nil
}

type renderer struct {
	parts []Part
	text  strings.Builder
}

func (r *renderer) flush() {
	if r.text.Len() == 0 {
		return
	}
	r.parts = append(r.parts, Part{Text: r.text.String()})
	r.text.Reset()
}

func (r *renderer) walk(segments []Segment, scope map[string]any) error {
	for _, seg := range segments {
		switch seg.kind {
		case segText:
			r.text.WriteString(seg.text)

		case segField:
			s, err := format(scope[seg.field])
			if err != nil {
				return fmt.Errorf("field %s: %w", seg.field, err)
			}
			r.text.WriteString(s)

		case segIf:
			if !truthy(scope[seg.field]) {
				continue
			}
			if err := r.walk(seg.body, scope); err != nil {
				return err
			}

		case segEach:
			v, ok := scope[seg.field]
			if !ok || v == nil {
				continue
			}
			items, ok := v.([]any)
			if !ok {
				return fmt.Errorf("each %s: not a list", seg.field)
			}
			for i, item := range items {
				elem, ok := item.(map[string]any)
				if !ok {
					return fmt.Errorf("each %s[%d]: not a record", seg.field, i)
				}
				if err := r.walk(seg.body, elem); err != nil {
					return err
				}
			}

		case segMedia:
			raw, _ := scope[seg.field].(string)
			if raw == "" {
				continue
			}
			d, err := pkg.ParseImageDataURI(raw)
			if err != nil {
				return fmt.Errorf("media %s: %w", seg.field, err)
			}
			r.flush()
			r.parts = append(r.parts, Part{Media: &Attachment{
				Field:    seg.field,
				MIMEType: d.MIMEType,
				Data:     d.Base64(),
			}})
		}
	}
	return nil
}

func truthy(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return !schema.IsEmpty(v)
}

// format renders scalars losslessly; lists and records render as JSON.
func format(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
