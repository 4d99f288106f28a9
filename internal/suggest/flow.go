// Package suggest runs suggestion flows end to end: request validation,
// prompt rendering, one inference call and response validation.
package suggest

import (
	"fmt"

	"github.com/2beens/fitsuggest/internal/suggest/prompt"
	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

// Flow is one named suggestion operation with a fixed input and output contract.
type Flow struct {
	Name string
	// Model overrides the inference client default when set.
	Model  string
	Input  *schema.Schema
	Output *schema.Schema
	Prompt *prompt.Template
}

// Check verifies both schemas and that the prompt is bound to the input schema.
func (f *Flow) Check() error {
	if f.Name == "" {
		return fmt.Errorf("flow without name")
	}
	if f.Input == nil || f.Output == nil || f.Prompt == nil {
		return fmt.Errorf("flow %s: input, output and prompt are required", f.Name)
	}
	if err := f.Input.Check(); err != nil {
		return fmt.Errorf("flow %s input: %w", f.Name, err)
	}
	if err := f.Output.Check(); err != nil {
		return fmt.Errorf("flow %s output: %w", f.Name, err)
	}
	if err := f.Prompt.Check(f.Input); err != nil {
		return fmt.Errorf("flow %s: %w", f.Name, err)
	}
	return nil
}

// WithModel returns a copy of the flow using the given model.
func (f *Flow) WithModel(model string) *Flow {
	c := *f
	c.Model = model
	return &c
}
