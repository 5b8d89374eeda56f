package components

import (
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/memty/internal/gamification"
	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/ui/theme"
)

func TestProgressBarWidth(t *testing.T) {
	s := theme.New(lesson.ThemeDark)
	for _, pct := range []int{0, 37, 100, 140, -5} {
		bar := NewProgressBar("", pct, false, 30).Render(s)
		assert.Equal(t, 30, lipgloss.Width(bar), "percent %d", pct)
	}

	withLabel := NewProgressBar("Cells", 100, true, 40).Render(s)
	assert.Equal(t, 40, lipgloss.Width(withLabel))
	assert.Contains(t, withLabel, "100%")
}

func TestBadgeList(t *testing.T) {
	at := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	badges := gamification.Catalog()
	badges[0].Earned = true
	badges[0].EarnedAt = &at

	out := BadgeList(theme.New(lesson.ThemeLight), badges)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, len(badges))
	assert.Contains(t, lines[0], "Lesson Master")
	assert.Contains(t, lines[0], "earned Feb 3, 2026")
	assert.Contains(t, lines[4], "Achieve 60+ words per minute typing speed")
}
