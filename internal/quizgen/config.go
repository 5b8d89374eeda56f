package quizgen

import "github.com/abhisek/memty/internal/logger"

// Config controls the behavior of the LLM synthesizer.
type Config struct {
	// Validators run in order on every generated question; a question
	// failing any of them is dropped.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Fallback serves the page when the provider fails or returns too few
	// valid questions. Nil disables fallback.
	Fallback Synthesizer

	Logger *logger.Logger
}

// DefaultConfig returns the structural validator chain with the template
// synthesizer as fallback.
func DefaultConfig() Config {
	return Config{
		Validators:  []Validator{&StructuralValidator{}},
		MaxTokens:   2048,
		Temperature: 0.4,
		Fallback:    NewTemplate(),
		Logger:      logger.Nop(),
	}
}
