// Package prompt renders suggestion requests into the instruction text (and
// image attachments) sent to the inference service.
//
// A template is a small AST of segments rather than a string to be parsed, so
// every field it touches can be checked against the bound request schema.
package prompt

import (
	"fmt"

	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

type segmentKind int

const (
	segText segmentKind = iota
	segField
	segIf
	segEach
	segMedia
)

// Segment is one node of a template. Build segments with Text, Field, If,
// Each and Media.
type Segment struct {
	kind  segmentKind
	text  string
	field string
	body  []Segment
}

// Text is a literal fragment.
func Text(s string) Segment {
	return Segment{kind: segText, text: s}
}

// Textf is Text with fmt formatting, for literals built from constants.
func Textf(format string, args ...any) Segment {
	return Text(fmt.Sprintf(format, args...))
}

// Field renders the value of the named field in the current scope.
func Field(name string) Segment {
	return Segment{kind: segField, field: name}
}

// If renders body only when the named field is present and not empty.
func If(name string, body ...Segment) Segment {
	return Segment{kind: segIf, field: name, body: body}
}

// Each renders body once per element of the named list of records. Inside
// body, Field and If refer to the element's fields.
func Each(name string, body ...Segment) Segment {
	return Segment{kind: segEach, field: name, body: body}
}

// Media attaches the named data-uri field as an image part.
func Media(name string) Segment {
	return Segment{kind: segMedia, field: name}
}

// Template is an immutable prompt bound to one request shape.
type Template struct {
	name     string
	segments []Segment
}

func New(name string, segments ...Segment) *Template {
	return &Template{name: name, segments: segments}
}

func (t *Template) Name() string {
	return t.name
}

// Bind checks the template against the request schema and panics if it
// references anything the schema does not declare. Meant for package-level
// template declarations.
func Bind(s *schema.Schema, t *Template) *Template {
	if err := t.Check(s); err != nil {
		panic(fmt.Sprintf("prompt: %s", err))
	}
	return t
}
