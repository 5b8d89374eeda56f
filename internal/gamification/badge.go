package gamification

import "time"

// BadgeID identifies a catalog badge.
type BadgeID string

const (
	BadgeLessonMaster     BadgeID = "lesson-master"
	BadgeSevenDayStreak   BadgeID = "seven-day-streak"
	BadgePerfectRecall    BadgeID = "perfect-recall"
	BadgeWeeklyCompletion BadgeID = "weekly-completion"
	BadgeSpeedDemon       BadgeID = "speed-demon"
)

// IconType selects the badge artwork.
type IconType string

const (
	IconTrophy IconType = "trophy"
	IconFlame  IconType = "flame"
	IconStar   IconType = "star"
	IconTarget IconType = "target"
	IconCrown  IconType = "crown"
)

// Glyph returns a terminal-friendly icon.
func (t IconType) Glyph() string {
	switch t {
	case IconTrophy:
		return "🏆"
	case IconFlame:
		return "🔥"
	case IconStar:
		return "⭐"
	case IconTarget:
		return "🎯"
	case IconCrown:
		return "👑"
	default:
		return "✦"
	}
}

// Badge is a one-time achievement. Once earned it stays earned until an
// explicit reset.
type Badge struct {
	ID          BadgeID    `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IconType    IconType   `json:"iconType"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty"`
	Criteria    string     `json:"criteria"`
}

// Catalog returns the unearned badge set in display order.
func Catalog() []Badge {
	return []Badge{
		{
			ID:          BadgeLessonMaster,
			Name:        "Lesson Master",
			Description: "90%+ recall and quiz score",
			IconType:    IconTrophy,
			Criteria:    "Achieve 90% or higher on both recall and quiz phases",
		},
		{
			ID:          BadgeSevenDayStreak,
			Name:        "7-Day Streak",
			Description: "Study for 7 consecutive days",
			IconType:    IconFlame,
			Criteria:    "Maintain a 7-day study streak",
		},
		{
			ID:          BadgePerfectRecall,
			Name:        "Perfect Recall",
			Description: "100% recall accuracy",
			IconType:    IconStar,
			Criteria:    "Get 100% accuracy in a recall phase",
		},
		{
			ID:          BadgeWeeklyCompletion,
			Name:        "Weekly Warrior",
			Description: "3+ lessons per week",
			IconType:    IconTarget,
			Criteria:    "Complete 3 or more lessons in a week",
		},
		{
			ID:          BadgeSpeedDemon,
			Name:        "Speed Demon",
			Description: "Type at 60+ WPM",
			IconType:    IconCrown,
			Criteria:    "Achieve 60+ words per minute typing speed",
		},
	}
}

// mergeCatalog overlays persisted badge state onto the current catalog.
// Unknown ids are dropped and missing ones start unearned.
func mergeCatalog(saved []Badge) []Badge {
	earned := make(map[BadgeID]Badge, len(saved))
	for _, b := range saved {
		if b.Earned {
			earned[b.ID] = b
		}
	}
	out := Catalog()
	for i, b := range out {
		if s, ok := earned[b.ID]; ok {
			out[i].Earned = true
			out[i].EarnedAt = s.EarnedAt
		}
	}
	return out
}
