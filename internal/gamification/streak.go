package gamification

import "time"

// Date truncates t to its calendar date in t's location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// UpdateStreak applies one study day to stats. Studying again on the same
// calendar day changes nothing; studying the day after last extends the
// streak; any other gap restarts it at 1. It returns the new last study
// date and whether anything changed.
func UpdateStreak(stats UserStats, last, now time.Time) (UserStats, time.Time, bool) {
	today := Date(now)
	if !last.IsZero() {
		prev := Date(last.In(now.Location()))
		if prev.Equal(today) {
			return stats, last, false
		}
		if prev.Equal(today.AddDate(0, 0, -1)) {
			stats.Streak++
			stats.LongestStreak = max(stats.LongestStreak, stats.Streak)
			return stats, today, true
		}
	}
	stats.Streak = 1
	stats.LongestStreak = max(stats.LongestStreak, 1)
	return stats, today, true
}
