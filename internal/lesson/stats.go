package lesson

import (
	"math"
	"strings"
	"time"
)

// TypingStats is the result of one typing phase. TimeSpent is in seconds.
type TypingStats struct {
	WPM       int `json:"wpm"`
	Accuracy  int `json:"accuracy"`
	TimeSpent int `json:"timeSpent"`
}

// RecallStats is the result of one recall phase.
type RecallStats struct {
	Score       int `json:"score"`
	TotalBlanks int `json:"totalBlanks"`
	Accuracy    int `json:"accuracy"`
	TimeSpent   int `json:"timeSpent"`
}

// QuizStats is the result of one quiz phase.
type QuizStats struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
	Percentage     int `json:"percentage"`
	TimeSpent      int `json:"timeSpent"`
}

// Percent returns round(part/total*100), or 0 when total is zero.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return RoundHalfUp(float64(part) / float64(total) * 100)
}

// RoundHalfUp rounds to the nearest integer with halves rounded toward
// positive infinity.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// MeasureTyping computes typing speed and accuracy for typed text against
// its target. Accuracy counts position-wise character matches over the typed
// length and is 100 when nothing was typed.
func MeasureTyping(target, typed string, elapsed time.Duration) TypingStats {
	stats := TypingStats{
		Accuracy:  100,
		TimeSpent: RoundHalfUp(elapsed.Seconds()),
	}
	if typed == "" {
		return stats
	}

	if minutes := elapsed.Minutes(); minutes > 0 {
		words := len(strings.Fields(typed))
		stats.WPM = RoundHalfUp(float64(words) / minutes)
	}

	t, g := []rune(target), []rune(typed)
	correct := 0
	for i := 0; i < len(g) && i < len(t); i++ {
		if g[i] == t[i] {
			correct++
		}
	}
	stats.Accuracy = Percent(correct, len(g))
	return stats
}
