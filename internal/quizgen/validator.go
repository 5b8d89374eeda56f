package quizgen

import (
	"fmt"

	"github.com/abhisek/memty/internal/lesson"
)

// Validator checks a generated question. Implementations should be
// stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs.
	Name() string

	// Validate returns nil if q passes.
	Validate(q *lesson.QuizQuestion) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks required fields and option shape.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *lesson.QuizQuestion) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}

	if q.Question == "" {
		return fail("question is empty")
	}
	if len(q.Question) > 500 {
		return fail("question exceeds 500 characters")
	}
	if len(q.Options) != OptionCount {
		return fail(fmt.Sprintf("expected %d options, got %d", OptionCount, len(q.Options)))
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if o == "" {
			return fail("option is empty")
		}
		if seen[o] {
			return fail(fmt.Sprintf("duplicate option %q", o))
		}
		seen[o] = true
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fail(fmt.Sprintf("correct index %d out of range", q.Correct))
	}
	if q.Explanation == "" {
		return fail("explanation is empty")
	}
	if len(q.Explanation) > 1000 {
		return fail("explanation exceeds 1000 characters")
	}
	return nil
}
