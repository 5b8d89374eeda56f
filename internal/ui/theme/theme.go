package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/memty/internal/lesson"
)

// Palette is the set of colors one display theme uses.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Border    color.Color
}

var (
	// Dark suits dark terminal backgrounds.
	Dark = Palette{
		Primary:   lipgloss.Color("#8B5CF6"), // Vivid Purple
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F97316"), // Orange
		Success:   lipgloss.Color("#22C55E"), // Green
		Error:     lipgloss.Color("#F43F5E"), // Rose
		Text:      lipgloss.Color("#F8FAFC"), // White
		TextDim:   lipgloss.Color("#94A3B8"), // Slate
		Border:    lipgloss.Color("#334155"), // Slate
	}

	// Light suits light terminal backgrounds.
	Light = Palette{
		Primary:   lipgloss.Color("#6D28D9"), // Deep Purple
		Secondary: lipgloss.Color("#0F766E"), // Dark Teal
		Accent:    lipgloss.Color("#C2410C"), // Burnt Orange
		Success:   lipgloss.Color("#15803D"), // Green
		Error:     lipgloss.Color("#BE123C"), // Rose
		Text:      lipgloss.Color("#0F172A"), // Navy
		TextDim:   lipgloss.Color("#475569"), // Slate
		Border:    lipgloss.Color("#CBD5E1"), // Light Slate
	}
)

// Styles are the rendering styles for CLI output.
type Styles struct {
	Palette Palette

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Body      lipgloss.Style
	Hint      lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Card      lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Earned    lipgloss.Style
	Locked    lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
}

// New returns the styles for a display theme. Unknown themes use Light.
func New(t lesson.Theme) Styles {
	p := Light
	if t == lesson.ThemeDark {
		p = Dark
	}

	return Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.TextDim),

		Body: lipgloss.NewStyle().
			Foreground(p.Text),

		Hint: lipgloss.NewStyle().
			Foreground(p.TextDim).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(p.TextDim).
			Width(20),

		Value: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		Correct: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),

		Incorrect: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		Earned: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		Locked: lipgloss.NewStyle().
			Foreground(p.TextDim),

		ProgressFilled: lipgloss.NewStyle().
			Background(p.Secondary),

		ProgressEmpty: lipgloss.NewStyle().
			Background(p.Border),
	}
}
