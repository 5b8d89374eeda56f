package components

import (
	"strings"

	"github.com/abhisek/memty/internal/gamification"
	"github.com/abhisek/memty/internal/ui/theme"
)

// BadgeList renders the badge catalog, earned badges highlighted.
func BadgeList(s theme.Styles, badges []gamification.Badge) string {
	var b strings.Builder
	for _, badge := range badges {
		line := badge.IconType.Glyph() + "  " + badge.Name + "  " + badge.Description
		if badge.Earned {
			b.WriteString(s.Earned.Render(line))
			if badge.EarnedAt != nil {
				b.WriteString(s.Hint.Render("  earned " + badge.EarnedAt.Format("Jan 2, 2006")))
			}
		} else {
			b.WriteString(s.Locked.Render(line))
			b.WriteString(s.Hint.Render("  " + badge.Criteria))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// KeyValues renders label/value rows.
func KeyValues(s theme.Styles, rows [][2]string) string {
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(s.Label.Render(r[0]))
		b.WriteString(s.Value.Render(r[1]))
		b.WriteString("\n")
	}
	return b.String()
}
