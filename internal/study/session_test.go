package study

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memty/internal/gamification"
	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/store"
)

type memLessons struct {
	mu      sync.Mutex
	lessons map[string]lesson.LessonData
	saveErr error
	saves   int
}

func newMemLessons() *memLessons {
	return &memLessons{lessons: map[string]lesson.LessonData{}}
}

func (m *memLessons) Save(_ context.Context, l *lesson.LessonData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.lessons[l.ID] = *l
	return nil
}

func (m *memLessons) Get(_ context.Context, id string) (*lesson.LessonData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lessons[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &l, nil
}

func (m *memLessons) List(context.Context) ([]store.LessonSummary, error) { return nil, nil }
func (m *memLessons) Delete(context.Context, string) error { return nil }

var studyNow = time.Date(2026, 4, 2, 10, 0, 0, 0, time.Local)

func sampleLesson() *lesson.LessonData {
	return &lesson.LessonData{
		ID:         "lesson-1",
		Title:      "Cells",
		TotalPages: 2,
		Pages: []lesson.LessonPage{
			{ID: "page-0", PageNumber: 1, Chunks: []lesson.LessonChunk{{ID: "chunk-0"}, {ID: "chunk-1"}}},
			{ID: "page-1", PageNumber: 2, Chunks: []lesson.LessonChunk{{ID: "chunk-0"}}},
		},
		Progress: lesson.NewProgress(studyNow),
	}
}

func newSession(t *testing.T, repo store.LessonRepo) *Session {
	t.Helper()
	engine := gamification.NewEngine(context.Background(), gamification.Config{
		UserID: "u1",
		Now:    func() time.Time { return studyNow },
	})
	s := New(repo, engine, nil)
	s.now = func() time.Time { return studyNow }
	return s
}

func TestNextPhase(t *testing.T) {
	assert.Equal(t, PhaseTyping, NextPhase(lesson.Progress{}))
	assert.Equal(t, PhaseRecall, NextPhase(lesson.Progress{TypingCompleted: true}))
	assert.Equal(t, PhaseQuiz, NextPhase(lesson.Progress{TypingCompleted: true, RecallCompleted: true}))
	assert.Equal(t, PhaseDone, NextPhase(lesson.Progress{TypingCompleted: true, RecallCompleted: true, QuizCompleted: true}))
}

func TestPhasesRequireActiveLesson(t *testing.T) {
	s := newSession(t, newMemLessons())
	ctx := context.Background()

	_, err := s.CompleteTyping(ctx, lesson.TypingStats{})
	var serr *StateConsistencyError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "complete typing", serr.Op)

	_, err = s.AdvanceChunk(ctx)
	assert.ErrorAs(t, err, &serr)
}

func TestPhasesMustRunInOrder(t *testing.T) {
	s := newSession(t, newMemLessons())
	ctx := context.Background()
	s.Begin(ctx, sampleLesson())

	_, err := s.CompleteRecall(ctx, lesson.RecallStats{Score: 3, TotalBlanks: 3, Accuracy: 100})
	var serr *StateConsistencyError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 0, s.engine.Stats().Points, "rejected phase must not touch stats")

	_, err = s.CompleteQuiz(ctx, lesson.QuizStats{})
	require.ErrorAs(t, err, &serr)

	_, err = s.CompleteTyping(ctx, lesson.TypingStats{WPM: 30, Accuracy: 90})
	require.NoError(t, err)
	_, err = s.CompleteQuiz(ctx, lesson.QuizStats{})
	assert.ErrorAs(t, err, &serr)
}

func TestFullLesson(t *testing.T) {
	repo := newMemLessons()
	s := newSession(t, repo)
	ctx := context.Background()
	s.Begin(ctx, sampleLesson())

	out, err := s.CompleteTyping(ctx, lesson.TypingStats{WPM: 40, Accuracy: 96, TimeSpent: 90})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Points)

	out, err = s.CompleteRecall(ctx, lesson.RecallStats{Score: 5, TotalBlanks: 5, Accuracy: 100, TimeSpent: 30})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Points)
	require.Len(t, out.Badges, 1)

	out, err = s.CompleteQuiz(ctx, lesson.QuizStats{Score: 3, TotalQuestions: 3, Percentage: 100, TimeSpent: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Points)
	require.Len(t, out.Badges, 1)
	assert.Equal(t, gamification.BadgeLessonMaster, out.Badges[0].ID)

	stored, err := repo.Get(ctx, "lesson-1")
	require.NoError(t, err)
	assert.Equal(t, lesson.StatusCompleted, stored.Progress.Status())
	assert.Equal(t, 13, stored.Progress.TotalPoints)
	assert.Equal(t, 1, stored.Progress.StreakDays)
	assert.Equal(t, 100, stored.Progress.RecallAccuracy)
	assert.Equal(t, 100, stored.Progress.QuizPercentage)
	assert.Equal(t, 100, stored.Percent())
	for _, p := range stored.Pages {
		assert.True(t, p.Completed)
	}
	assert.Equal(t, 1, s.engine.Stats().LessonsCompleted)

	// Retaking the quiz scores points but does not complete the lesson again.
	_, err = s.CompleteQuiz(ctx, lesson.QuizStats{Score: 2, TotalQuestions: 3, Percentage: 67})
	require.NoError(t, err)
	assert.Equal(t, 1, s.engine.Stats().LessonsCompleted)
}

func TestAdvanceChunk(t *testing.T) {
	repo := newMemLessons()
	s := newSession(t, repo)
	ctx := context.Background()
	s.Begin(ctx, sampleLesson())

	done, err := s.AdvanceChunk(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, s.Active().Progress.CurrentChunk)
	assert.Equal(t, 33, s.Active().Percent())

	done, err = s.AdvanceChunk(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	assert.True(t, s.Active().Pages[0].Completed)
	assert.Equal(t, 1, s.Active().CurrentPage)
	assert.Equal(t, 0, s.Active().Progress.CurrentChunk)

	done, err = s.AdvanceChunk(ctx)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 100, s.Active().Percent())

	done, err = s.AdvanceChunk(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestOpen(t *testing.T) {
	repo := newMemLessons()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleLesson()))

	s := newSession(t, repo)
	l, err := s.Open(ctx, "lesson-1")
	require.NoError(t, err)
	assert.Equal(t, "Cells", l.Title)
	assert.Same(t, l, s.Active())

	_, err = s.Open(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	s.Close()
	assert.Nil(t, s.Active())
}

func TestSaveFailureKeepsProgressInMemory(t *testing.T) {
	repo := newMemLessons()
	repo.saveErr = errors.New("database is locked")
	s := newSession(t, repo)
	ctx := context.Background()
	s.Begin(ctx, sampleLesson())

	_, err := s.CompleteTyping(ctx, lesson.TypingStats{WPM: 20, Accuracy: 80})
	require.NoError(t, err)
	assert.True(t, s.Active().Progress.TypingCompleted)
	assert.Equal(t, 2, repo.saves)
}
