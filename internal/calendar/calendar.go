// Package calendar turns clock readings into the ISO date buckets every other
// view is keyed by: "today", trailing windows, and month grids.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/girassol/internal/constants"
)

// Day is one cell of a trailing-day strip
type Day struct {
	Date    string // YYYY-MM-DD
	Weekday time.Weekday
	DayNum  int
}

// Label is the single-letter weekday name used in compact strips
func (d Day) Label() string {
	return d.Weekday.String()[:1]
}

// Format renders t as its ISO date in t's own location
func Format(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DaysAgo returns the ISO date k calendar days before anchor. Calendar
// arithmetic (not 24h subtraction) keeps DST transitions from skipping a day.
func DaysAgo(anchor time.Time, k int) string {
	return Format(anchor.AddDate(0, 0, -k))
}

// LastNDays returns the n dates ending at anchor, oldest first. n <= 0 yields an empty slice.
func LastNDays(n int, anchor time.Time) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = DaysAgo(anchor, n-1-i)
	}
	return out
}

// Strip is LastNDays with weekday metadata for display
func Strip(n int, anchor time.Time) []Day {
	if n <= 0 {
		return []Day{}
	}
	out := make([]Day, n)
	for i := 0; i < n; i++ {
		d := anchor.AddDate(0, 0, -(n - 1 - i))
		out[i] = Day{Date: Format(d), Weekday: d.Weekday(), DayNum: d.Day()}
	}
	return out
}

// Grid is a Sunday-first month layout
type Grid struct {
	Year    int
	Month   time.Month
	Leading int   // blank cells before the 1st, equal to the 1st's weekday
	Days    []int // 1..daysInMonth
}

// MonthGrid lays out month in year
func MonthGrid(year int, month time.Month) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	n := first.AddDate(0, 1, -1).Day()
	days := make([]int, n)
	for i := range days {
		days[i] = i + 1
	}
	return Grid{Year: year, Month: month, Leading: int(first.Weekday()), Days: days}
}

// Date returns the ISO date of day in the grid's month
func (g Grid) Date(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, int(g.Month), day)
}

// Weeks splits the grid into rows of seven; 0 marks a blank cell
func (g Grid) Weeks() [][]int {
	cells := make([]int, g.Leading, g.Leading+len(g.Days)+6)
	cells = append(cells, g.Days...)
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}
	weeks := make([][]int, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// ParseMonth parses YYYY-MM
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

// DateOf returns the ISO date a record timestamp falls on in loc. It accepts
// RFC3339 timestamps and plain YYYY-MM-DD dates.
func DateOf(timestamp string, loc *time.Location) (string, error) {
	timestamp = strings.TrimSpace(timestamp)
	if t, err := time.Parse(constants.DateFormat, timestamp); err == nil {
		return Format(t), nil
	}
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return "", fmt.Errorf("invalid timestamp %q: %w", timestamp, err)
	}
	return Format(t.In(loc)), nil
}
