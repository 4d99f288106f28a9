package inference

import (
	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

// GeminiSchema is the OpenAPI subset accepted as responseSchema.
type GeminiSchema struct {
	Type             string                   `json:"type"`
	Format           string                   `json:"format,omitempty"`
	Description      string                   `json:"description,omitempty"`
	Nullable         bool                     `json:"nullable,omitempty"`
	Enum             []string                 `json:"enum,omitempty"`
	Minimum          *float64                 `json:"minimum,omitempty"`
	Maximum          *float64                 `json:"maximum,omitempty"`
	Items            *GeminiSchema            `json:"items,omitempty"`
	Properties       map[string]*GeminiSchema `json:"properties,omitempty"`
	Required         []string                 `json:"required,omitempty"`
	PropertyOrdering []string                 `json:"propertyOrdering,omitempty"`
}

// ToGeminiSchema converts an output schema into its responseSchema form.
// Property ordering follows declaration order, so the model emits fields in
// the same order the schema lists them.
func ToGeminiSchema(s *schema.Schema) *GeminiSchema {
	return fieldToGemini(s.AsField())
}

func fieldToGemini(f schema.Field) *GeminiSchema {
	gs := &GeminiSchema{
		Description: f.Description,
		Nullable:    f.Nullable,
	}

	switch f.Kind {
	case schema.KindString, schema.KindDataURI:
		gs.Type = "STRING"
	case schema.KindNumber:
		gs.Type = "NUMBER"
	case schema.KindInteger:
		gs.Type = "INTEGER"
	case schema.KindBoolean:
		gs.Type = "BOOLEAN"
	case schema.KindEnum:
		gs.Type = "STRING"
		gs.Format = "enum"
		gs.Enum = f.Enum
	case schema.KindList:
		gs.Type = "ARRAY"
		if f.Items != nil {
			gs.Items = fieldToGemini(*f.Items)
		}
	case schema.KindRecord:
		gs.Type = "OBJECT"
		gs.Properties = make(map[string]*GeminiSchema, len(f.Fields))
		for _, child := range f.Fields {
			gs.Properties[child.Name] = fieldToGemini(child)
			gs.PropertyOrdering = append(gs.PropertyOrdering, child.Name)
			if !child.Optional {
				gs.Required = append(gs.Required, child.Name)
			}
		}
	}

	if f.Bounds != nil && (f.Kind == schema.KindNumber || f.Kind == schema.KindInteger) {
		lo, hi := f.Bounds.Min, f.Bounds.Max
		gs.Minimum = &lo
		gs.Maximum = &hi
	}

	return gs
}
