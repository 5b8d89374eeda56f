package llm

import (
	"context"
	"encoding/json"
)

// Provider turns a single-turn prompt into structured JSON. Quiz generation
// sends one passage per request, so there is no conversation state.
type Provider interface {
	// Generate runs req. When req.Schema is set, the returned Content has
	// already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is one generation call.
type Request struct {
	// System sets the model's role, e.g. "you write comprehension questions".
	System string

	// Prompt carries the passage and the task.
	Prompt string

	// Schema, when set, selects the provider's structured output mode.
	// Without it Content is the raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0, 1]; zero leaves the provider default.
	Temperature float64
}

// Schema is a named JSON Schema, e.g. "quiz-questions".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the provider output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request, which may differ from
	// ModelID when the provider resolves aliases.
	Model string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}
