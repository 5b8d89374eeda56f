package quizgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/memty/internal/blanks"
	"github.com/abhisek/memty/internal/lesson"
)

const excerptLen = 50

// fillerOptions pad the distractors when a page has too few key words.
var fillerOptions = []string{"process", "structure", "evidence", "pattern", "principle", "context"}

var genericOptions = []string{
	"Key concept from the text",
	"Supporting detail",
	"Example or illustration",
	"Background information",
}

// Template builds cloze questions offline. Each slot's sentence loses its
// longest key word, the missing word is the correct option, and other key
// words from the page serve as distractors. Output depends only on the input.
type Template struct{}

// NewTemplate returns the offline synthesizer.
func NewTemplate() *Template {
	return &Template{}
}

func (t *Template) Synthesize(ctx context.Context, pageText string, pageNumber int) ([]lesson.QuizQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slots := slotSentences(pageText)
	if len(slots) == 0 {
		return nil, nil
	}
	vocab := uniqueFold(blanks.KeyWords(pageText))

	questions := make([]lesson.QuizQuestion, len(slots))
	for i, sentence := range slots {
		id := QuestionID(pageNumber, i)
		answer := keyWord(sentence)
		if answer == "" {
			questions[i] = genericQuestion(id, sentence)
			continue
		}

		correct := i % OptionCount
		options := make([]string, 0, OptionCount)
		for _, d := range distractors(vocab, answer, i) {
			if len(options) == correct {
				options = append(options, answer)
			}
			options = append(options, d)
		}
		if len(options) == correct {
			options = append(options, answer)
		}

		questions[i] = lesson.QuizQuestion{
			ID:          id,
			Question:    fmt.Sprintf("Which word completes the sentence: %q?", cloze(sentence, answer)),
			Options:     options,
			Correct:     correct,
			Explanation: fmt.Sprintf("The text states: %q", sentence),
		}
	}
	return questions, nil
}

// keyWord returns the longest eligible word of the sentence, first on ties.
func keyWord(sentence string) string {
	best := ""
	for _, w := range blanks.KeyWords(sentence) {
		if len(w) > len(best) {
			best = w
		}
	}
	return best
}

// distractors picks OptionCount-1 words from vocab other than answer,
// starting at an offset derived from the slot, padded with fillers.
func distractors(vocab []string, answer string, slot int) []string {
	var pool []string
	for _, w := range vocab {
		if !strings.EqualFold(w, answer) {
			pool = append(pool, w)
		}
	}

	out := make([]string, 0, OptionCount-1)
	for i := 0; i < len(pool) && len(out) < OptionCount-1; i++ {
		out = append(out, pool[(slot+i)%len(pool)])
	}
	for _, f := range fillerOptions {
		if len(out) == OptionCount-1 {
			break
		}
		if !strings.EqualFold(f, answer) && !containsFold(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// cloze replaces the first occurrence of word in sentence with the blank
// placeholder, keeping surrounding punctuation.
func cloze(sentence, word string) string {
	fields := strings.Fields(sentence)
	for i, f := range fields {
		if !strings.EqualFold(blanks.Strip(f), word) {
			continue
		}
		if strings.Contains(f, word) {
			fields[i] = strings.Replace(f, word, lesson.Placeholder, 1)
		} else {
			fields[i] = lesson.Placeholder
		}
		break
	}
	return strings.Join(fields, " ")
}

func genericQuestion(id, sentence string) lesson.QuizQuestion {
	excerpt := sentence
	if r := []rune(excerpt); len(r) > excerptLen {
		excerpt = string(r[:excerptLen])
	}
	return lesson.QuizQuestion{
		ID:          id,
		Question:    fmt.Sprintf("According to the text, what does the following relate to: \"%s...\"?", excerpt),
		Options:     append([]string(nil), genericOptions...),
		Correct:     0,
		Explanation: "This question tests your understanding of the main concepts presented in this section.",
	}
}

func uniqueFold(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		k := strings.ToLower(w)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, w)
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
