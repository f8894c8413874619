// Package habits derives streaks and consistency scores from the set of
// dates a habit was completed on. Everything here is pure; "now" is always
// passed in.
package habits

import (
	"sort"
	"time"

	"github.com/julianstephens/girassol/internal/calendar"
	"github.com/julianstephens/girassol/internal/constants"
)

// set builds a membership lookup. Duplicates collapse.
func set(dates []string) map[string]struct{} {
	m := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		m[d] = struct{}{}
	}
	return m
}

// CurrentStreak counts consecutive completed days ending today. Today not yet
// being done does not break the streak; it just isn't counted. The walk stops
// at the first gap before today or after MaxStreakLookback days.
func CurrentStreak(dates []string, now time.Time) int {
	done := set(dates)
	streak := 0
	for i := 0; i < constants.MaxStreakLookback; i++ {
		if _, ok := done[calendar.DaysAgo(now, i)]; ok {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}

// Toggle adds day if absent and removes it if present. The input is not modified.
func Toggle(dates []string, day string) []string {
	out := make([]string, 0, len(dates)+1)
	found := false
	for _, d := range Normalize(dates) {
		if d == day {
			found = true
			continue
		}
		out = append(out, d)
	}
	if !found {
		out = append(out, day)
	}
	return out
}

// Normalize drops duplicate dates, keeping first-seen order
func Normalize(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// Contains reports whether day is in dates
func Contains(dates []string, day string) bool {
	_, ok := set(dates)[day]
	return ok
}

// Week reports completion for each of the last seven days, oldest first
func Week(dates []string, now time.Time) []bool {
	done := set(dates)
	days := calendar.LastNDays(constants.ConsistencyWindow, now)
	week := make([]bool, len(days))
	for i, d := range days {
		_, week[i] = done[d]
	}
	return week
}

// Sorted returns a copy of dates in ascending order
func Sorted(dates []string) []string {
	out := Normalize(dates)
	sort.Strings(out)
	return out
}
