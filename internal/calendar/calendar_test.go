package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastNDays(t *testing.T) {
	anchor := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "zero", n: 0, want: []string{}},
		{name: "negative", n: -3, want: []string{}},
		{name: "just today", n: 1, want: []string{"2025-03-02"}},
		{name: "crosses february", n: 4, want: []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastNDays(tt.n, anchor))
		})
	}
}

func TestLastNDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Spring forward happened at 02:00 on 2025-03-09.
	anchor := time.Date(2025, time.March, 10, 0, 30, 0, 0, ny)
	assert.Equal(t, []string{"2025-03-08", "2025-03-09", "2025-03-10"}, LastNDays(3, anchor))
}

func TestStrip(t *testing.T) {
	anchor := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC) // Wednesday
	days := Strip(7, anchor)
	require.Len(t, days, 7)

	assert.Equal(t, "2024-12-26", days[0].Date)
	assert.Equal(t, time.Thursday, days[0].Weekday)
	assert.Equal(t, "T", days[0].Label())
	assert.Equal(t, Day{Date: "2025-01-01", Weekday: time.Wednesday, DayNum: 1}, days[6])
}

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		leading int
		days    int
	}{
		{name: "january 2025 starts wednesday", year: 2025, month: time.January, leading: 3, days: 31},
		{name: "june 2025 starts sunday", year: 2025, month: time.June, leading: 0, days: 30},
		{name: "february leap year", year: 2024, month: time.February, leading: 4, days: 29},
		{name: "february common year", year: 2025, month: time.February, leading: 6, days: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MonthGrid(tt.year, tt.month)
			assert.Equal(t, tt.leading, g.Leading)
			require.Len(t, g.Days, tt.days)
			assert.Equal(t, 1, g.Days[0])
			assert.Equal(t, tt.days, g.Days[len(g.Days)-1])
		})
	}
}

func TestGridWeeks(t *testing.T) {
	g := MonthGrid(2025, time.January)
	weeks := g.Weeks()

	require.Len(t, weeks, 5)
	assert.Equal(t, []int{0, 0, 0, 1, 2, 3, 4}, weeks[0])
	assert.Equal(t, []int{26, 27, 28, 29, 30, 31, 0}, weeks[4])
	assert.Equal(t, "2025-01-09", g.Date(9))
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2025-12")
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)

	_, _, err = ParseMonth("12/2025")
	assert.Error(t, err)
}

func TestDateOf(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain date", in: "2025-05-01", want: "2025-05-01"},
		{name: "utc timestamp shifted back a day", in: "2025-05-02T01:30:00Z", want: "2025-05-01"},
		{name: "fractional seconds", in: "2025-05-02T15:04:05.123Z", want: "2025-05-02"},
		{name: "garbage", in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateOf(tt.in, sp)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineUsesInjectedClockAndZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	fixed := time.Date(2025, time.July, 31, 20, 0, 0, 0, time.UTC) // 05:00 on Aug 1 in Tokyo
	e := New(tokyo, func() time.Time { return fixed })

	assert.Equal(t, "2025-08-01", e.Today())
	assert.Equal(t, "2025-07-31", e.DaysAgo(1))
	assert.Equal(t, []string{"2025-07-31", "2025-08-01"}, e.LastNDays(2))
	assert.Equal(t, time.August, e.CurrentMonthGrid().Month)
	assert.Equal(t, tokyo, e.Location())
}
