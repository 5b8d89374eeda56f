// Package study holds the active lesson of a signed-in user and applies
// phase completions to it.
package study

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/memty/internal/gamification"
	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/logger"
	"github.com/abhisek/memty/internal/store"
)

// Phase is a study phase of a lesson.
type Phase string

const (
	PhaseTyping Phase = "typing"
	PhaseRecall Phase = "recall"
	PhaseQuiz   Phase = "quiz"
	PhaseDone   Phase = "done"
)

// NextPhase returns the first phase not yet completed.
func NextPhase(p lesson.Progress) Phase {
	switch {
	case !p.TypingCompleted:
		return PhaseTyping
	case !p.RecallCompleted:
		return PhaseRecall
	case !p.QuizCompleted:
		return PhaseQuiz
	default:
		return PhaseDone
	}
}

// Session applies study events for one user. Completed phases may be
// repeated; a phase may not start before the one it depends on.
type Session struct {
	lessons store.LessonRepo
	engine  *gamification.Engine
	log     *logger.Logger
	now     func() time.Time

	mu     sync.Mutex
	active *lesson.LessonData
}

// New creates a Session. log may be nil.
func New(lessons store.LessonRepo, engine *gamification.Engine, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{lessons: lessons, engine: engine, log: log, now: time.Now}
}

// Open loads a stored lesson and makes it active.
func (s *Session) Open(ctx context.Context, lessonID string) (*lesson.LessonData, error) {
	l, err := s.lessons.Get(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("open lesson %s: %w", lessonID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = l
	return l, nil
}

// Begin makes a freshly assembled lesson active and stores it.
func (s *Session) Begin(ctx context.Context, l *lesson.LessonData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = l
	s.save(ctx)
}

// Active returns the active lesson, or nil.
func (s *Session) Active() *lesson.LessonData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Close clears the active lesson.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

// AdvanceChunk moves typing progress to the next chunk, marking a page
// completed once its last chunk is typed. It reports whether every page
// is done.
func (s *Session) AdvanceChunk(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.require("advance chunk")
	if err != nil {
		return false, err
	}
	p := &l.Progress
	if p.CurrentPage >= len(l.Pages) {
		return true, nil
	}

	p.CurrentChunk++
	if p.CurrentChunk >= len(l.Pages[p.CurrentPage].Chunks) {
		l.Pages[p.CurrentPage].Completed = true
		p.CurrentPage++
		p.CurrentChunk = 0
		if p.CurrentPage < len(l.Pages) {
			l.CurrentPage = p.CurrentPage
		}
	}
	s.save(ctx)
	return p.CurrentPage >= len(l.Pages), nil
}

// CompleteTyping applies a finished typing phase.
func (s *Session) CompleteTyping(ctx context.Context, stats lesson.TypingStats) (gamification.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.require("complete typing")
	if err != nil {
		return gamification.Outcome{}, err
	}

	out := s.engine.TypingCompleted(ctx, stats)
	l.Progress.TypingCompleted = true
	s.applyOutcome(ctx, l, out)
	return out, nil
}

// CompleteRecall applies a finished recall phase. Typing must be done.
func (s *Session) CompleteRecall(ctx context.Context, stats lesson.RecallStats) (gamification.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.require("complete recall")
	if err != nil {
		return gamification.Outcome{}, err
	}
	if !l.Progress.TypingCompleted {
		return gamification.Outcome{}, &StateConsistencyError{Op: "complete recall", Reason: "typing phase not completed"}
	}

	out := s.engine.RecallCompleted(ctx, stats)
	l.Progress.RecallCompleted = true
	l.Progress.RecallAccuracy = stats.Accuracy
	s.applyOutcome(ctx, l, out)
	return out, nil
}

// CompleteQuiz applies a finished quiz phase. Recall must be done. The
// first completed quiz of a lesson also completes the lesson.
func (s *Session) CompleteQuiz(ctx context.Context, stats lesson.QuizStats) (gamification.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.require("complete quiz")
	if err != nil {
		return gamification.Outcome{}, err
	}
	if !l.Progress.RecallCompleted {
		return gamification.Outcome{}, &StateConsistencyError{Op: "complete quiz", Reason: "recall phase not completed"}
	}

	out := s.engine.QuizCompleted(ctx, stats)
	first := !l.Progress.QuizCompleted
	l.Progress.QuizCompleted = true
	l.Progress.QuizPercentage = stats.Percentage

	if first {
		done := s.engine.LessonCompleted(ctx, l.ID, l.Progress.RecallAccuracy, stats.Percentage)
		out.Points += done.Points
		out.Badges = append(out.Badges, done.Badges...)
		for i := range l.Pages {
			l.Pages[i].Completed = true
		}
		s.log.Info("lesson completed", "lesson_id", l.ID, "points", out.Points)
	}

	s.applyOutcome(ctx, l, out)
	return out, nil
}

func (s *Session) require(op string) (*lesson.LessonData, error) {
	if s.active == nil {
		return nil, &StateConsistencyError{Op: op, Reason: "no active lesson"}
	}
	return s.active, nil
}

func (s *Session) applyOutcome(ctx context.Context, l *lesson.LessonData, out gamification.Outcome) {
	stats := s.engine.Stats()
	l.Progress.TotalPoints += out.Points
	l.Progress.StreakDays = stats.Streak
	l.Progress.LastStudyDate = s.now()
	s.save(ctx)
}

// save persists the active lesson. Failures are logged; the in-memory
// lesson stays authoritative.
func (s *Session) save(ctx context.Context) {
	if s.lessons == nil || s.active == nil {
		return
	}
	if err := s.lessons.Save(ctx, s.active); err != nil {
		s.log.Warn("persist lesson", "lesson_id", s.active.ID, "error", err)
	}
}
