package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write reading-comprehension quizzes for a study app.

Rules:
- Every question must be answerable from the passage alone.
- Provide exactly 4 distinct options per question with exactly one correct.
- Distractors should be plausible but clearly wrong given the passage.
- Keep questions short. Do not repeat a question.
- The explanation should point to the part of the passage that answers the question.`

// buildPrompt asks for count questions, one per listed focus sentence.
func buildPrompt(pageText string, focus []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write %d questions.\n\n", len(focus))
	b.WriteString("Passage:\n")
	b.WriteString(strings.TrimSpace(pageText))
	b.WriteString("\n\nFocus sentences, one question each, in order:\n")
	for i, s := range focus {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
