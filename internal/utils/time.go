// Package utils holds the date and time helpers shared by config, tracker and
// the reminder. Dates are YYYY-MM-DD strings, times of day are HH:MM.
package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/girassol/internal/constants"
)

// LoadLocation resolves an IANA name. "Local" and "" mean the system zone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// CombineDateAndTime returns the wall-clock instant of timeStr on dateStr in loc
func CombineDateAndTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(constants.DateFormat, dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	clock, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// ValidateDate rejects anything that is not a real calendar day, e.g. 2025-02-30
func ValidateDate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}

func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
