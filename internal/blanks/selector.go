// Package blanks selects fill-in-the-blank targets in lesson chunks and grades
// recall answers.
package blanks

import (
	"slices"
	"strings"

	"github.com/abhisek/memty/internal/lesson"
)

// Blank count bounds per chunk.
const (
	MinBlanks     = 3
	MaxBlanks     = 6
	wordsPerBlank = 4
)

// Selector builds recall templates for chunks.
type Selector struct {
	policy Policy
}

// NewSelector creates a Selector. A nil policy selects EvenlySpaced.
func NewSelector(policy Policy) *Selector {
	if policy == nil {
		policy = EvenlySpaced{}
	}
	return &Selector{policy: policy}
}

// BlankCount returns clamp(floor(wordCount/4), 3, 6).
func BlankCount(wordCount int) int {
	return min(MaxBlanks, max(MinBlanks, wordCount/wordsPerBlank))
}

// Apply returns a copy of chunk with BlankedText and Blanks populated.
// A chunk with no eligible words keeps its text as the template and has no
// blanks.
func (s *Selector) Apply(chunk lesson.LessonChunk) lesson.LessonChunk {
	tokens := tokenize(chunk.Text)

	var candidates []int
	for i, tok := range tokens {
		if Eligible(tok.word) {
			candidates = append(candidates, i)
		}
	}

	n := min(BlankCount(len(tokens)), len(candidates))
	out := chunk
	out.Blanks = nil
	if n == 0 {
		out.BlankedText = chunk.Text
		return out
	}

	picked := s.policy.Pick(candidates, n)
	slices.Sort(picked)
	picked = slices.Compact(picked)

	selected := make(map[int]bool, len(picked))
	out.Blanks = make([]lesson.Blank, len(picked))
	for i, pos := range picked {
		selected[pos] = true
		out.Blanks[i] = lesson.Blank{
			Index:    i,
			Answer:   Strip(tokens[pos].word),
			Position: pos,
		}
	}

	var b strings.Builder
	last := 0
	for i, tok := range tokens {
		b.WriteString(chunk.Text[last:tok.start])
		if selected[i] {
			b.WriteString(lesson.Placeholder)
		} else {
			b.WriteString(tok.word)
		}
		last = tok.end
	}
	b.WriteString(chunk.Text[last:])
	out.BlankedText = b.String()

	return out
}

// ApplyAll blanks every chunk in order.
func (s *Selector) ApplyAll(chunks []lesson.LessonChunk) []lesson.LessonChunk {
	out := make([]lesson.LessonChunk, len(chunks))
	for i, c := range chunks {
		out[i] = s.Apply(c)
	}
	return out
}
