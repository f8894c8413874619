package habits

import (
	"time"

	"github.com/julianstephens/girassol/internal/calendar"
	"github.com/julianstephens/girassol/internal/constants"
)

// Band buckets a consistency percentage for display
type Band string

const (
	BandStrong Band = "strong"
	BandOK     Band = "ok"
	BandWeak   Band = "weak"
)

// BandFor maps a percentage to its band: >=80 strong, >=50 ok, else weak
func BandFor(percent float64) Band {
	switch {
	case percent >= constants.BandStrongThreshold:
		return BandStrong
	case percent >= constants.BandOKThreshold:
		return BandOK
	default:
		return BandWeak
	}
}

// Score is a habit's completion over the trailing seven-day window
type Score struct {
	Completed int
	Percent   float64
	Band      Band
}

// Consistency scores today plus the six previous days
func Consistency(dates []string, now time.Time) Score {
	done := set(dates)
	count := 0
	for _, d := range calendar.LastNDays(constants.ConsistencyWindow, now) {
		if _, ok := done[d]; ok {
			count++
		}
	}
	pct := float64(count) / float64(constants.ConsistencyWindow) * 100
	return Score{Completed: count, Percent: pct, Band: BandFor(pct)}
}
