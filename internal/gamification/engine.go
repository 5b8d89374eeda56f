// Package gamification tracks points, study streaks and badges.
package gamification

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/logger"
)

// RecentWindow is how long a newly earned badge stays in the recent
// achievements list.
const RecentWindow = 5 * time.Second

// Config wires an Engine to its collaborators. Only UserID is required.
type Config struct {
	UserID string

	// Repository persists state after each event. Nil keeps state in memory.
	Repository Repository

	// Completions defaults to an in-memory log.
	Completions CompletionLog

	// Now defaults to time.Now.
	Now func() time.Time

	// Notify is called for every newly earned badge while the event is
	// being applied. It must not call back into the Engine.
	Notify func(Badge)

	Logger *logger.Logger
}

// Outcome describes what one event changed.
type Outcome struct {
	Points int
	Badges []Badge
}

type achievement struct {
	badge Badge
	at    time.Time
}

// Engine applies study events to a user's state. It is safe for
// concurrent use; events are applied one at a time.
type Engine struct {
	cfg Config

	mu     sync.Mutex
	state  State
	recent []achievement
}

// NewEngine creates an Engine and loads any persisted state. Read failures
// are logged and the affected parts start fresh.
func NewEngine(ctx context.Context, cfg Config) *Engine {
	if cfg.Completions == nil {
		cfg.Completions = NewMemoryCompletionLog()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	e := &Engine{cfg: cfg, state: NewState()}
	if cfg.Repository != nil {
		st, err := cfg.Repository.Load(ctx)
		if err != nil {
			cfg.Logger.Warn("load gamification state", "user_id", cfg.UserID, "error", err)
		}
		if st.Badges == nil {
			st.Badges = Catalog()
		}
		e.state = st
	}
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Stats returns the current stats.
func (e *Engine) Stats() UserStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Stats
}

// RecentAchievements returns badges earned within the last RecentWindow.
func (e *Engine) RecentAchievements() []Badge {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.cfg.Now()
	kept := e.recent[:0]
	for _, a := range e.recent {
		if now.Sub(a.at) < RecentWindow {
			kept = append(kept, a)
		}
	}
	e.recent = kept

	out := make([]Badge, len(kept))
	for i, a := range kept {
		out[i] = a.badge
	}
	return out
}

// TypingCompleted records a typing phase: best WPM, smoothed accuracy,
// study time, a flat completion award and the daily streak.
func (e *Engine) TypingCompleted(ctx context.Context, stats lesson.TypingStats) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.cfg.Now()
	s := &e.state.Stats
	s.WPM = max(s.WPM, stats.WPM)
	s.Accuracy = smooth(s.Accuracy, stats.Accuracy)
	s.TotalStudyTime += stats.TimeSpent
	s.Points += TypingPoints

	var dateChanged bool
	e.state.Stats, e.state.LastStudyDate, dateChanged = UpdateStreak(e.state.Stats, e.state.LastStudyDate, now)

	e.saveStats(ctx)
	if dateChanged {
		e.saveLastStudyDate(ctx)
	}
	return Outcome{Points: TypingPoints}
}

// RecallCompleted records a recall phase. Every correct blank is worth a
// point.
func (e *Engine) RecallCompleted(ctx context.Context, stats lesson.RecallStats) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.state.Stats
	s.RecallAccuracy = smooth(s.RecallAccuracy, stats.Accuracy)
	s.TotalStudyTime += stats.TimeSpent
	s.Points += stats.Score

	out := Outcome{Points: stats.Score}
	if stats.Accuracy == 100 {
		e.award(BadgePerfectRecall, &out)
	}

	e.saveStats(ctx)
	e.saveBadges(ctx, out)
	return out
}

// QuizCompleted records a quiz phase. Every correct answer is worth a point.
func (e *Engine) QuizCompleted(ctx context.Context, stats lesson.QuizStats) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.state.Stats
	s.QuizSuccessRate = smooth(s.QuizSuccessRate, stats.Percentage)
	s.TotalStudyTime += stats.TimeSpent
	s.Points += stats.Score

	e.saveStats(ctx)
	return Outcome{Points: stats.Score}
}

// LessonCompleted records a finished lesson and evaluates the completion
// badges and streak bonuses. Both bonuses apply on a streak of seven or
// more days.
func (e *Engine) LessonCompleted(ctx context.Context, lessonID string, recallAccuracy, quizScore int) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.cfg.Now()
	s := &e.state.Stats
	s.LessonsCompleted++

	var out Outcome
	if recallAccuracy >= MasteryThreshold && quizScore >= MasteryThreshold {
		e.award(BadgeLessonMaster, &out)
	}
	if s.Streak >= ShortStreakDays {
		s.Points += ShortStreakBonus
		out.Points += ShortStreakBonus
	}
	if s.Streak >= LongStreakDays {
		s.Points += LongStreakBonus
		out.Points += LongStreakBonus
		e.award(BadgeSevenDayStreak, &out)
	}
	if e.weeklyCompletions(ctx, lessonID, now) >= WeeklyLessonTarget {
		e.award(BadgeWeeklyCompletion, &out)
	}
	if s.WPM >= SpeedDemonWPM {
		e.award(BadgeSpeedDemon, &out)
	}

	e.saveStats(ctx)
	e.saveBadges(ctx, out)
	return out
}

// AwardPoints adds points outside the phase events.
func (e *Engine) AwardPoints(ctx context.Context, amount int, source string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Stats.Points += amount
	e.cfg.Logger.Debug("points awarded", "user_id", e.cfg.UserID, "amount", amount, "source", source)
	e.saveStats(ctx)
}

// Reset zeroes the stats, restores the unearned catalog and forgets the
// persisted state and completion history.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = NewState()
	e.recent = nil

	if e.cfg.Repository != nil {
		if err := e.cfg.Repository.Clear(ctx); err != nil {
			e.cfg.Logger.Warn("clear gamification state", "user_id", e.cfg.UserID, "error", err)
		}
	}
	if err := e.cfg.Completions.Clear(ctx, e.cfg.UserID); err != nil {
		e.cfg.Logger.Warn("clear completion log", "user_id", e.cfg.UserID, "error", err)
	}
}

// weeklyCompletions logs this completion and counts completions in the
// trailing window, today included.
func (e *Engine) weeklyCompletions(ctx context.Context, lessonID string, now time.Time) int {
	if err := e.cfg.Completions.Record(ctx, e.cfg.UserID, lessonID, now); err != nil {
		e.cfg.Logger.Warn("record completion", "user_id", e.cfg.UserID, "lesson_id", lessonID, "error", err)
	}
	since := Date(now).AddDate(0, 0, -(WeeklyWindowDays - 1))
	n, err := e.cfg.Completions.CountSince(ctx, e.cfg.UserID, since)
	if err != nil {
		e.cfg.Logger.Warn("count completions", "user_id", e.cfg.UserID, "error", err)
		return 0
	}
	return n
}

func (e *Engine) award(id BadgeID, out *Outcome) {
	now := e.cfg.Now()
	b, ok := e.state.award(id, now)
	if !ok {
		return
	}
	out.Badges = append(out.Badges, b)
	e.recent = append(e.recent, achievement{badge: b, at: now})
	e.cfg.Logger.Info("badge earned", "user_id", e.cfg.UserID, "badge", string(id))
	if e.cfg.Notify != nil {
		e.cfg.Notify(b)
	}
}

func (e *Engine) saveStats(ctx context.Context) {
	if e.cfg.Repository == nil {
		return
	}
	if err := e.cfg.Repository.SaveStats(ctx, e.state.Stats); err != nil {
		e.cfg.Logger.Warn("persist user stats", "user_id", e.cfg.UserID, "error", err)
	}
}

func (e *Engine) saveBadges(ctx context.Context, out Outcome) {
	if e.cfg.Repository == nil || len(out.Badges) == 0 {
		return
	}
	if err := e.cfg.Repository.SaveBadges(ctx, e.state.Badges); err != nil {
		e.cfg.Logger.Warn("persist badges", "user_id", e.cfg.UserID, "error", err)
	}
}

func (e *Engine) saveLastStudyDate(ctx context.Context) {
	if e.cfg.Repository == nil {
		return
	}
	if err := e.cfg.Repository.SaveLastStudyDate(ctx, e.state.LastStudyDate); err != nil {
		e.cfg.Logger.Warn("persist last study date", "user_id", e.cfg.UserID, "error", err)
	}
}
