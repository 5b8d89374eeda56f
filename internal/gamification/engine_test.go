package gamification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 5, 20, 18, 30, 0, 0, time.Local)}
}

func newRepo() *NamespaceRepository {
	return NewNamespaceRepository(store.NewNamespace(store.NewMemoryKV(), "").ForUser("u1"))
}

func newEngine(t *testing.T, repo Repository, clock *fakeClock) *Engine {
	t.Helper()
	return NewEngine(context.Background(), Config{
		UserID:     "u1",
		Repository: repo,
		Now:        clock.Now,
	})
}

func earnedIDs(badges []Badge) []BadgeID {
	var ids []BadgeID
	for _, b := range badges {
		if b.Earned {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

func TestSmooth(t *testing.T) {
	tests := []struct{ prev, sample, want int }{
		{80, 100, 90},
		{80, 85, 83},
		{0, 95, 48},
		{0, 0, 0},
		{100, 100, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, smooth(tt.prev, tt.sample), "smooth(%d, %d)", tt.prev, tt.sample)
	}
}

func TestUpdateStreak(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)

	tests := []struct {
		name        string
		stats       UserStats
		last        time.Time
		wantStreak  int
		wantLongest int
		wantChanged bool
	}{
		{"first study", UserStats{}, time.Time{}, 1, 1, true},
		{"same day", UserStats{Streak: 4, LongestStreak: 6}, now.Add(-7 * time.Hour), 4, 6, false},
		{"yesterday across month", UserStats{Streak: 4, LongestStreak: 4}, time.Date(2026, 2, 28, 23, 59, 0, 0, time.Local), 5, 5, true},
		{"yesterday keeps longer record", UserStats{Streak: 2, LongestStreak: 9}, now.AddDate(0, 0, -1), 3, 9, true},
		{"gap restarts", UserStats{Streak: 5, LongestStreak: 5}, now.AddDate(0, 0, -2), 1, 5, true},
		{"future date restarts", UserStats{Streak: 5, LongestStreak: 5}, now.AddDate(0, 0, 1), 1, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, last, changed := UpdateStreak(tt.stats, tt.last, now)
			assert.Equal(t, tt.wantStreak, got.Streak)
			assert.Equal(t, tt.wantLongest, got.LongestStreak)
			assert.Equal(t, tt.wantChanged, changed)
			if changed {
				assert.Equal(t, Date(now), last)
			} else {
				assert.Equal(t, tt.last, last)
			}
		})
	}
}

func TestTypingCompleted(t *testing.T) {
	clock := newClock()
	e := newEngine(t, newRepo(), clock)
	ctx := context.Background()

	out := e.TypingCompleted(ctx, lesson.TypingStats{WPM: 42, Accuracy: 95, TimeSpent: 60})
	assert.Equal(t, Outcome{Points: 5}, out)

	s := e.Stats()
	assert.Equal(t, 42, s.WPM)
	assert.Equal(t, 48, s.Accuracy)
	assert.Equal(t, 60, s.TotalStudyTime)
	assert.Equal(t, 5, s.Points)
	assert.Equal(t, 1, s.Streak)

	// Slower run on the same day keeps the best WPM and the streak.
	clock.Advance(time.Hour)
	e.TypingCompleted(ctx, lesson.TypingStats{WPM: 30, Accuracy: 100, TimeSpent: 40})
	s = e.Stats()
	assert.Equal(t, 42, s.WPM)
	assert.Equal(t, 74, s.Accuracy)
	assert.Equal(t, 1, s.Streak)

	clock.Advance(24 * time.Hour)
	e.TypingCompleted(ctx, lesson.TypingStats{WPM: 50, Accuracy: 100, TimeSpent: 40})
	s = e.Stats()
	assert.Equal(t, 50, s.WPM)
	assert.Equal(t, 2, s.Streak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.Equal(t, 15, s.Points)
}

func TestRecallCompletedPerfect(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	require.NoError(t, repo.SaveStats(ctx, UserStats{RecallAccuracy: 80}))

	e := newEngine(t, repo, newClock())
	out := e.RecallCompleted(ctx, lesson.RecallStats{Score: 5, TotalBlanks: 5, Accuracy: 100, TimeSpent: 30})

	assert.Equal(t, 5, out.Points)
	require.Len(t, out.Badges, 1)
	assert.Equal(t, BadgePerfectRecall, out.Badges[0].ID)

	s := e.Stats()
	assert.Equal(t, 90, s.RecallAccuracy)
	assert.Equal(t, 30, s.TotalStudyTime)
	assert.Equal(t, 5, s.Points)
	assert.Equal(t, []BadgeID{BadgePerfectRecall}, earnedIDs(e.State().Badges))
}

func TestQuizAndLessonCompletionWithWeekStreak(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	require.NoError(t, repo.SaveStats(ctx, UserStats{Streak: 7, LongestStreak: 7}))

	e := newEngine(t, repo, newClock())
	quiz := e.QuizCompleted(ctx, lesson.QuizStats{Score: 3, TotalQuestions: 3, Percentage: 100, TimeSpent: 20})
	assert.Equal(t, 3, quiz.Points)

	done := e.LessonCompleted(ctx, "lesson-1", 95, 100)
	assert.Equal(t, ShortStreakBonus+LongStreakBonus, done.Points)

	var ids []BadgeID
	for _, b := range done.Badges {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []BadgeID{BadgeLessonMaster, BadgeSevenDayStreak}, ids)

	s := e.Stats()
	assert.Equal(t, 3+10+25, s.Points)
	assert.Equal(t, 50, s.QuizSuccessRate)
	assert.Equal(t, 1, s.LessonsCompleted)
}

func TestLessonCompletedShortStreak(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	require.NoError(t, repo.SaveStats(ctx, UserStats{Streak: 3}))

	e := newEngine(t, repo, newClock())
	out := e.LessonCompleted(ctx, "lesson-1", 80, 70)
	assert.Equal(t, Outcome{Points: ShortStreakBonus}, out)
}

func TestLessonCompletedSpeedDemon(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, nil, newClock())

	e.TypingCompleted(ctx, lesson.TypingStats{WPM: 60, Accuracy: 100})
	out := e.LessonCompleted(ctx, "lesson-1", 0, 0)
	require.Len(t, out.Badges, 1)
	assert.Equal(t, BadgeSpeedDemon, out.Badges[0].ID)
}

func TestWeeklyCompletion(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	log := NewMemoryCompletionLog()

	// Eight days ago falls outside the window.
	require.NoError(t, log.Record(ctx, "u1", "old", clock.Now().AddDate(0, 0, -8)))
	// Six days ago is the oldest day inside it.
	require.NoError(t, log.Record(ctx, "u1", "a", clock.Now().AddDate(0, 0, -6)))
	// Other users never count.
	require.NoError(t, log.Record(ctx, "u2", "x", clock.Now()))

	e := NewEngine(ctx, Config{UserID: "u1", Completions: log, Now: clock.Now})

	out := e.LessonCompleted(ctx, "b", 0, 0)
	assert.Empty(t, out.Badges)

	out = e.LessonCompleted(ctx, "c", 0, 0)
	require.Len(t, out.Badges, 1)
	assert.Equal(t, BadgeWeeklyCompletion, out.Badges[0].ID)
}

func TestBadgesAreMonotonic(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	e := newEngine(t, newRepo(), clock)

	perfect := lesson.RecallStats{Score: 4, TotalBlanks: 4, Accuracy: 100}
	first := e.RecallCompleted(ctx, perfect)
	require.Len(t, first.Badges, 1)
	earnedAt := *first.Badges[0].EarnedAt

	clock.Advance(time.Hour)
	again := e.RecallCompleted(ctx, perfect)
	assert.Empty(t, again.Badges)

	e.RecallCompleted(ctx, lesson.RecallStats{Score: 0, TotalBlanks: 4, Accuracy: 0})

	b, ok := e.State().Badge(BadgePerfectRecall)
	require.True(t, ok)
	assert.True(t, b.Earned)
	assert.Equal(t, earnedAt, *b.EarnedAt)
	assert.Equal(t, 1, e.State().EarnedCount())
}

func TestRecentAchievementsExpire(t *testing.T) {
	ctx := context.Background()
	clock := newClock()

	var notified []BadgeID
	e := NewEngine(ctx, Config{
		UserID: "u1",
		Now:    clock.Now,
		Notify: func(b Badge) { notified = append(notified, b.ID) },
	})

	e.RecallCompleted(ctx, lesson.RecallStats{Score: 3, TotalBlanks: 3, Accuracy: 100})
	assert.Equal(t, []BadgeID{BadgePerfectRecall}, notified)
	require.Len(t, e.RecentAchievements(), 1)

	clock.Advance(RecentWindow - time.Millisecond)
	assert.Len(t, e.RecentAchievements(), 1)

	clock.Advance(time.Millisecond)
	assert.Empty(t, e.RecentAchievements())
}

func TestStatePersistsAcrossEngines(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	repo := newRepo()

	e := newEngine(t, repo, clock)
	e.TypingCompleted(ctx, lesson.TypingStats{WPM: 40, Accuracy: 90, TimeSpent: 10})
	e.RecallCompleted(ctx, lesson.RecallStats{Score: 3, TotalBlanks: 3, Accuracy: 100})

	reloaded := newEngine(t, repo, clock)
	assert.Equal(t, e.Stats(), reloaded.Stats())
	assert.Equal(t, []BadgeID{BadgePerfectRecall}, earnedIDs(reloaded.State().Badges))
	assert.True(t, Date(clock.Now()).Equal(reloaded.State().LastStudyDate))

	// The streak does not advance again on the same day after a reload.
	reloaded.TypingCompleted(ctx, lesson.TypingStats{WPM: 40, Accuracy: 90})
	assert.Equal(t, 1, reloaded.Stats().Streak)
}

type brokenRepo struct{}

var errBroken = errors.New("disk full")

func (brokenRepo) Load(context.Context) (State, error) { return State{}, errBroken }
func (brokenRepo) SaveStats(context.Context, UserStats) error { return errBroken }
func (brokenRepo) SaveBadges(context.Context, []Badge) error { return errBroken }
func (brokenRepo) SaveLastStudyDate(context.Context, time.Time) error { return errBroken }
func (brokenRepo) Clear(context.Context) error { return errBroken }

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, brokenRepo{}, newClock())
	assert.Len(t, e.State().Badges, len(Catalog()))

	out := e.RecallCompleted(ctx, lesson.RecallStats{Score: 2, TotalBlanks: 2, Accuracy: 100})
	assert.Len(t, out.Badges, 1)
	assert.Equal(t, 2, e.Stats().Points)
	assert.Equal(t, 50, e.Stats().RecallAccuracy)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	ns := store.NewNamespace(kv, "").ForUser("u1")
	log := NewMemoryCompletionLog()
	clock := newClock()

	e := NewEngine(ctx, Config{UserID: "u1", Repository: NewNamespaceRepository(ns), Completions: log, Now: clock.Now})
	e.TypingCompleted(ctx, lesson.TypingStats{WPM: 70, Accuracy: 100})
	e.LessonCompleted(ctx, "l1", 100, 100)
	require.NotZero(t, e.State().EarnedCount())

	e.Reset(ctx)

	assert.Equal(t, NewState(), e.State())
	assert.Empty(t, e.RecentAchievements())
	assert.Empty(t, kv.Keys())

	n, err := log.CountSince(ctx, "u1", time.Time{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMergeCatalog(t *testing.T) {
	at := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	merged := mergeCatalog([]Badge{
		{ID: BadgeSpeedDemon, Earned: true, EarnedAt: &at},
		{ID: "retired-badge", Earned: true},
	})

	require.Len(t, merged, len(Catalog()))
	assert.Equal(t, []BadgeID{BadgeSpeedDemon}, earnedIDs(merged))
	b := merged[4]
	assert.Equal(t, "Speed Demon", b.Name)
	assert.Equal(t, at, *b.EarnedAt)
}
