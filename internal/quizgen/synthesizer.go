// Package quizgen produces multiple-choice quiz questions for lesson pages
// and grades quiz answers.
package quizgen

import (
	"context"
	"fmt"

	"github.com/abhisek/memty/internal/chunker"
	"github.com/abhisek/memty/internal/lesson"
)

// Question count bounds per page.
const (
	MinQuestions = 3
	MaxQuestions = 5
	OptionCount  = 4
)

// Synthesizer produces the quiz questions for one page of text.
type Synthesizer interface {
	// Synthesize returns QuestionCount questions for the page, ids
	// "q{pageNumber}-{n}". Text with no sentences yields no questions.
	Synthesize(ctx context.Context, pageText string, pageNumber int) ([]lesson.QuizQuestion, error)
}

// QuestionCount returns clamp(floor(sentences/2), 3, 5).
func QuestionCount(sentences int) int {
	n := sentences / 2
	if n < MinQuestions {
		return MinQuestions
	}
	if n > MaxQuestions {
		return MaxQuestions
	}
	return n
}

// QuestionID formats the id of the n-th question on a page.
func QuestionID(pageNumber, n int) string {
	return fmt.Sprintf("q%d-%d", pageNumber, n)
}

// slotSentences returns the source sentence for each question slot,
// cycling through the page's sentences.
func slotSentences(pageText string) []string {
	sentences := chunker.Sentences(pageText)
	if len(sentences) == 0 {
		return nil
	}
	out := make([]string, QuestionCount(len(sentences)))
	for i := range out {
		out[i] = sentences[i%len(sentences)]
	}
	return out
}
