package gamification

import (
	"time"

	"github.com/abhisek/memty/internal/lesson"
)

// Point awards and thresholds.
const (
	TypingPoints       = 5
	ShortStreakBonus   = 10
	LongStreakBonus    = 25
	ShortStreakDays    = 3
	LongStreakDays     = 7
	MasteryThreshold   = 90
	SpeedDemonWPM      = 60
	WeeklyLessonTarget = 3
	WeeklyWindowDays   = 7
)

// UserStats are the cumulative study metrics of one user.
type UserStats struct {
	Points           int `json:"points"`
	Streak           int `json:"streak"`
	LongestStreak    int `json:"longestStreak"`
	WPM              int `json:"wpm"`
	Accuracy         int `json:"accuracy"`
	LessonsCompleted int `json:"lessonsCompleted"`
	TotalStudyTime   int `json:"totalStudyTime"`
	RecallAccuracy   int `json:"recallAccuracy"`
	QuizSuccessRate  int `json:"quizSuccessRate"`
}

// State is everything the engine reduces over.
type State struct {
	Stats         UserStats
	Badges        []Badge
	LastStudyDate time.Time // zero when the user has never studied
}

// NewState returns zeroed stats and the unearned catalog.
func NewState() State {
	return State{Badges: Catalog()}
}

// Badge returns the badge with the given id.
func (s State) Badge(id BadgeID) (Badge, bool) {
	for _, b := range s.Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// EarnedCount returns how many badges have been earned.
func (s State) EarnedCount() int {
	n := 0
	for _, b := range s.Badges {
		if b.Earned {
			n++
		}
	}
	return n
}

// smooth averages a running metric with a new sample.
func smooth(prev, sample int) int {
	return lesson.RoundHalfUp(float64(prev+sample) / 2)
}

// award marks id earned at now. It reports false when the badge was
// already earned or is unknown.
func (s *State) award(id BadgeID, now time.Time) (Badge, bool) {
	for i, b := range s.Badges {
		if b.ID != id {
			continue
		}
		if b.Earned {
			return Badge{}, false
		}
		at := now
		s.Badges[i].Earned = true
		s.Badges[i].EarnedAt = &at
		return s.Badges[i], true
	}
	return Badge{}, false
}

func (s State) clone() State {
	s.Badges = append([]Badge(nil), s.Badges...)
	return s
}
