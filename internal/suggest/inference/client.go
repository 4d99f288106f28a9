// Package inference talks to the hosted model that turns a rendered prompt
// into a structured suggestion.
package inference

import (
	"context"
	"encoding/json"

	"github.com/2beens/fitsuggest/internal/suggest/prompt"
	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

//go:generate mockgen -source=$GOFILE -destination=../mocks_test.go -package=suggest_test

// Client makes a single schema-constrained generation call. Implementations
// must not retry; the raw JSON returned is validated by the caller.
type Client interface {
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
}

type Request struct {
	// Flow is used for logging and tracing only.
	Flow string
	// Model overrides the client default when set.
	Model        string
	Parts        []prompt.Part
	OutputSchema *schema.Schema
}
