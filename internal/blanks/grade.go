package blanks

import (
	"strings"

	"github.com/abhisek/memty/internal/lesson"
)

// Check reports whether given matches answer, ignoring case and surrounding
// whitespace. There is no partial credit.
func Check(given, answer string) bool {
	return strings.ToLower(strings.TrimSpace(given)) == strings.ToLower(strings.TrimSpace(answer))
}

// Result is the verdict for one blank.
type Result struct {
	Blank   lesson.Blank
	Given   string
	Correct bool
}

// Grade checks answers keyed by blank index against a chunk's blanks.
// Missing answers are graded as incorrect.
func Grade(chunk lesson.LessonChunk, answers map[int]string) []Result {
	results := make([]Result, len(chunk.Blanks))
	for i, bl := range chunk.Blanks {
		given := answers[bl.Index]
		results[i] = Result{
			Blank:   bl,
			Given:   given,
			Correct: Check(given, bl.Answer),
		}
	}
	return results
}

// Score counts correct results.
func Score(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Correct {
			n++
		}
	}
	return n
}

// RecallStatsFor summarizes graded results of a recall phase.
func RecallStatsFor(results []Result, timeSpent int) lesson.RecallStats {
	score := Score(results)
	return lesson.RecallStats{
		Score:       score,
		TotalBlanks: len(results),
		Accuracy:    lesson.Percent(score, len(results)),
		TimeSpent:   timeSpent,
	}
}
