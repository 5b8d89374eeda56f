package lesson

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Chunk size and font size bounds offered by the settings screen.
const (
	MinChunkSize     = 10
	MaxChunkSize     = 30
	DefaultChunkSize = 18
	MinFontSize      = 16
	MaxFontSize      = 24
	DefaultFontSize  = 16
)

// Preferences are per-user study settings.
type Preferences struct {
	Theme       Theme `json:"theme"`
	ChunkSize   int   `json:"chunkSize"`
	FontSize    int   `json:"fontSize"`
	AutoAdvance bool  `json:"autoAdvance"`
}

// DefaultPreferences returns the settings a new user starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:       ThemeLight,
		ChunkSize:   DefaultChunkSize,
		FontSize:    DefaultFontSize,
		AutoAdvance: true,
	}
}

// Normalize clamps out-of-range values and replaces unknown themes.
func (p Preferences) Normalize() Preferences {
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	p.ChunkSize = clamp(p.ChunkSize, MinChunkSize, MaxChunkSize)
	p.FontSize = clamp(p.FontSize, MinFontSize, MaxFontSize)
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
