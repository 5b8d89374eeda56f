package lesson

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleLesson() *LessonData {
	return &LessonData{
		Pages: []LessonPage{
			{Chunks: make([]LessonChunk, 3)},
			{Chunks: make([]LessonChunk, 1)},
		},
	}
}

func TestProgressStatus(t *testing.T) {
	tests := []struct {
		p    Progress
		want Status
	}{
		{Progress{}, StatusInProgress},
		{Progress{TypingCompleted: true}, StatusRecallPending},
		{Progress{TypingCompleted: true, RecallCompleted: true}, StatusQuizPending},
		{Progress{TypingCompleted: true, RecallCompleted: true, QuizCompleted: true}, StatusCompleted},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.p.Status())
	}
	assert.Equal(t, "Quiz Pending", StatusQuizPending.DisplayName())
}

func TestLessonPercent(t *testing.T) {
	l := sampleLesson()
	assert.Equal(t, 0, l.Percent())

	l.Progress.CurrentChunk = 2
	assert.Equal(t, 50, l.Percent())

	l.Progress.CurrentPage = 1
	l.Progress.CurrentChunk = 0
	assert.Equal(t, 75, l.Percent())

	l.Progress.QuizCompleted = true
	assert.Equal(t, 100, l.Percent())

	assert.Equal(t, 0, (&LessonData{}).Percent())
}

func TestPreferencesNormalize(t *testing.T) {
	p := Preferences{Theme: "neon", ChunkSize: 4, FontSize: 40}.Normalize()
	assert.Equal(t, ThemeLight, p.Theme)
	assert.Equal(t, MinChunkSize, p.ChunkSize)
	assert.Equal(t, MaxFontSize, p.FontSize)

	def := DefaultPreferences()
	assert.Equal(t, def, def.Normalize())
	assert.Equal(t, 18, def.ChunkSize)
	assert.True(t, def.AutoAdvance)
}

func TestMeasureTyping(t *testing.T) {
	target := "Cats are mammals."

	stats := MeasureTyping(target, "Cats are mammals.", 6*time.Second)
	assert.Equal(t, 30, stats.WPM)
	assert.Equal(t, 100, stats.Accuracy)
	assert.Equal(t, 6, stats.TimeSpent)

	stats = MeasureTyping(target, "Cbts", time.Minute)
	assert.Equal(t, 75, stats.Accuracy)
	assert.Equal(t, 1, stats.WPM)

	empty := MeasureTyping(target, "", 0)
	assert.Equal(t, 100, empty.Accuracy)
	assert.Equal(t, 0, empty.WPM)
}

func TestPercentAndRounding(t *testing.T) {
	assert.Equal(t, 0, Percent(1, 0))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 100, Percent(3, 3))
	assert.Equal(t, 3, RoundHalfUp(2.5))
	assert.Equal(t, 2, RoundHalfUp(2.49))
}

func TestCorrectOption(t *testing.T) {
	q := QuizQuestion{Options: []string{"a", "b", "c", "d"}, Correct: 2}
	assert.Equal(t, "c", q.CorrectOption())
	q.Correct = 9
	assert.Equal(t, "", q.CorrectOption())
}
