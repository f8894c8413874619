package calendar

import "time"

// Engine binds the date helpers to a timezone and an injectable clock
type Engine struct {
	loc *time.Location
	now func() time.Time
}

// New returns an engine for loc. A nil now uses time.Now.
func New(loc *time.Location, now func() time.Time) *Engine {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{loc: loc, now: now}
}

func (e *Engine) Location() *time.Location { return e.loc }

// Now is the current instant in the engine's timezone
func (e *Engine) Now() time.Time { return e.now().In(e.loc) }

// Today is the current ISO date in the engine's timezone
func (e *Engine) Today() string { return Format(e.Now()) }

func (e *Engine) DaysAgo(k int) string { return DaysAgo(e.Now(), k) }

func (e *Engine) LastNDays(n int) []string { return LastNDays(n, e.Now()) }

func (e *Engine) Strip(n int) []Day { return Strip(n, e.Now()) }

func (e *Engine) CurrentMonthGrid() Grid {
	now := e.Now()
	return MonthGrid(now.Year(), now.Month())
}

func (e *Engine) DateOf(timestamp string) (string, error) { return DateOf(timestamp, e.loc) }
