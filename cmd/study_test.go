package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memty/internal/blanks"
	"github.com/abhisek/memty/internal/config"
	"github.com/abhisek/memty/internal/gamification"
	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/study"
)

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	t := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

func studyLesson() *lesson.LessonData {
	return &lesson.LessonData{
		ID: "lesson-x",
		Pages: []lesson.LessonPage{{
			ID:         "page-0",
			PageNumber: 1,
			Chunks: []lesson.LessonChunk{
				{
					ID:          "chunk-0",
					Text:        "Cats are mammals.",
					BlankedText: "Cats are _______.",
					Blanks:      []lesson.Blank{{Index: 0, Answer: "mammals", Position: 2}},
				},
				{
					ID:          "chunk-1",
					Text:        "Birds can fly.",
					BlankedText: "_______ can fly.",
					Blanks:      []lesson.Blank{{Index: 0, Answer: "Birds", Position: 0}},
				},
			},
			Questions: []lesson.QuizQuestion{
				{ID: "q1-0", Question: "Which?", Options: []string{"a", "b", "c", "d"}, Correct: 1, Explanation: "b it is"},
				{ID: "q1-1", Question: "Which?", Options: []string{"a", "b", "c", "d"}, Correct: 3, Explanation: "d it is"},
			},
		}},
	}
}

func TestTypingInteractive(t *testing.T) {
	ctx := context.Background()
	eng := gamification.NewEngine(ctx, gamification.Config{UserID: "u"})
	sess := study.New(nil, eng, nil)
	l := studyLesson()
	sess.Begin(ctx, l)

	var out bytes.Buffer
	p := newPrompter(strings.NewReader("Cats are mammals.\nBirds can fly.\n"), &out)

	stats, err := typingInteractive(ctx, sess, l, p, stepClock(6*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Accuracy)
	assert.Equal(t, 60, stats.WPM) // 6 words in 6 seconds
	assert.Equal(t, 6, stats.TimeSpent)
	assert.Equal(t, 1, l.Progress.CurrentPage)
	assert.Contains(t, out.String(), "Birds can fly.")
}

func TestTypingInteractiveNoInput(t *testing.T) {
	ctx := context.Background()
	sess := study.New(nil, gamification.NewEngine(ctx, gamification.Config{UserID: "u"}), nil)
	l := studyLesson()
	sess.Begin(ctx, l)

	_, err := typingInteractive(ctx, sess, l, newPrompter(strings.NewReader(""), &bytes.Buffer{}), time.Now)
	assert.ErrorIs(t, err, errNoInput)
}

func TestRecallInteractive(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader(" Mammals \nfish\n"), &out)

	stats, err := recallInteractive(studyLesson(), p, stepClock(10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, lesson.RecallStats{Score: 1, TotalBlanks: 2, Accuracy: 50, TimeSpent: 10}, stats)
	assert.Contains(t, out.String(), `expected "Birds"`)
}

func TestQuizInteractive(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("2\nnope\n"), &out)

	stats, err := quizInteractive(studyLesson(), p, stepClock(20*time.Second))
	require.NoError(t, err)
	assert.Equal(t, lesson.QuizStats{Score: 1, TotalQuestions: 2, Percentage: 50, TimeSpent: 20}, stats)
	assert.Contains(t, out.String(), "d it is")
	assert.NotContains(t, out.String(), "b it is")
}

func TestApplyPreference(t *testing.T) {
	base := lesson.DefaultPreferences()

	tests := []struct {
		key, value string
		check      func(*testing.T, lesson.Preferences)
		wantErr    bool
	}{
		{"theme", "dark", func(t *testing.T, p lesson.Preferences) { assert.Equal(t, lesson.ThemeDark, p.Theme) }, false},
		{"theme", "sepia", nil, true},
		{"chunk-size", "99", func(t *testing.T, p lesson.Preferences) { assert.Equal(t, 30, p.ChunkSize) }, false},
		{"font-size", "20", func(t *testing.T, p lesson.Preferences) { assert.Equal(t, 20, p.FontSize) }, false},
		{"font-size", "big", nil, true},
		{"auto-advance", "false", func(t *testing.T, p lesson.Preferences) { assert.False(t, p.AutoAdvance) }, false},
		{"volume", "11", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			p, err := applyPreference(base, tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func newScoreCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().Int("score", 0, "")
	c.Flags().Int("total", 0, "")
	c.Flags().Int("time", 0, "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestScoreFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		score   int
		total   int
		ok      bool
		wantErr string
	}{
		{"unset", nil, 0, 0, false, ""},
		{"plain", []string{"--score=4", "--total=5", "--time=30"}, 4, 5, true, ""},
		{"capped", []string{"--score=9", "--total=5"}, 5, 5, true, ""},
		{"negative score", []string{"--score=-5", "--total=5"}, 0, 0, false, "--score"},
		{"negative total", []string{"--score=1", "--total=-1"}, 0, 0, false, "--total"},
		{"negative time", []string{"--score=1", "--total=2", "--time=-3"}, 0, 0, false, "--time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, total, _, ok, err := scoreFlags(newScoreCmd(t, tt.args...))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestTypingStatsFlags(t *testing.T) {
	newCmd := func(args ...string) *cobra.Command {
		c := &cobra.Command{Use: "test"}
		c.Flags().Int("wpm", 0, "")
		c.Flags().Int("accuracy", 100, "")
		c.Flags().Int("time", 0, "")
		require.NoError(t, c.ParseFlags(args))
		return c
	}
	ctx := context.Background()

	stats, err := typingStats(ctx, newCmd("--wpm=42", "--accuracy=90", "--time=60"), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, lesson.TypingStats{WPM: 42, Accuracy: 90, TimeSpent: 60}, stats)

	for _, args := range [][]string{
		{"--wpm=-1"},
		{"--wpm=40", "--accuracy=101"},
		{"--wpm=40", "--accuracy=-2"},
		{"--wpm=40", "--time=-1"},
	} {
		_, err := typingStats(ctx, newCmd(args...), nil, nil, nil)
		assert.Error(t, err, "%v", args)
	}
}

func TestBlankPolicyNames(t *testing.T) {
	assert.IsType(t, blanks.EvenlySpaced{}, blanks.PolicyByName(config.BlankPolicyEven, 1))
	assert.IsType(t, &blanks.Random{}, blanks.PolicyByName(config.BlankPolicyRandom, 1))
}
