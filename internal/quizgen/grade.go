package quizgen

import (
	"time"

	"github.com/abhisek/memty/internal/lesson"
)

// Grade scores answers against questions. answers maps question id to the
// chosen option index; unanswered questions count as wrong.
func Grade(questions []lesson.QuizQuestion, answers map[string]int, elapsed time.Duration) lesson.QuizStats {
	score := 0
	for _, q := range questions {
		if a, ok := answers[q.ID]; ok && a == q.Correct {
			score++
		}
	}
	return lesson.QuizStats{
		Score:          score,
		TotalQuestions: len(questions),
		Percentage:     lesson.Percent(score, len(questions)),
		TimeSpent:      lesson.RoundHalfUp(elapsed.Seconds()),
	}
}
