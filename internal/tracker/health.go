package tracker

import (
	"fmt"
	"sort"

	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/schema"
)

// WeightPoint is one weighed day
type WeightPoint struct {
	Date   string
	Weight float64
}

// DailyLogs returns every health log, oldest first
func (s *Service) DailyLogs() []models.DailyLog {
	list := loadList[models.DailyLog](s, schema.HealthLogs)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date < list[j].Date })
	return list
}

// DailyLog returns the log for day (today when empty), or a blank log when
// nothing was recorded. The bool reports whether a record exists.
func (s *Service) DailyLog(day string) (models.DailyLog, bool, error) {
	day, err := s.day(day)
	if err != nil {
		return models.DailyLog{}, false, err
	}
	for _, l := range s.DailyLogs() {
		if l.Date == day {
			return l, true, nil
		}
	}
	return models.DailyLog{Date: day}, false, nil
}

// SaveDailyLog upserts log by date and keeps the collection sorted
func (s *Service) SaveDailyLog(log models.DailyLog) (models.DailyLog, error) {
	day, err := s.day(log.Date)
	if err != nil {
		return models.DailyLog{}, err
	}
	log.Date = day
	if log.Weight != nil && *log.Weight <= 0 {
		return models.DailyLog{}, fmt.Errorf("%w: %v", ErrInvalidWeight, *log.Weight)
	}

	list := s.DailyLogs()
	out := make([]models.DailyLog, 0, len(list)+1)
	for _, l := range list {
		if l.Date != day {
			out = append(out, l)
		}
	}
	out = append(out, log)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	saveList(s, schema.HealthLogs, out)
	return log, nil
}

// UpdateDailyLog applies fn to the log of day, starting from a blank log
// when none exists, and saves the result.
func (s *Service) UpdateDailyLog(day string, fn func(*models.DailyLog)) (models.DailyLog, error) {
	log, _, err := s.DailyLog(day)
	if err != nil {
		return models.DailyLog{}, err
	}
	fn(&log)
	return s.SaveDailyLog(log)
}

// Weights returns the last n weighed days, oldest first. n <= 0 returns all.
func (s *Service) Weights(n int) []WeightPoint {
	var pts []WeightPoint
	for _, l := range s.DailyLogs() {
		if l.Weight != nil {
			pts = append(pts, WeightPoint{Date: l.Date, Weight: *l.Weight})
		}
	}
	if n > 0 && len(pts) > n {
		pts = pts[len(pts)-n:]
	}
	return pts
}

// LatestWeight returns the most recent recorded weight
func (s *Service) LatestWeight() (WeightPoint, bool) {
	pts := s.Weights(1)
	if len(pts) == 0 {
		return WeightPoint{}, false
	}
	return pts[0], true
}

// HealthTrend returns the last n logs that carry a weight or a workout,
// oldest first. n <= 0 uses the default trend size.
func (s *Service) HealthTrend(n int) []models.DailyLog {
	if n <= 0 {
		n = constants.DefaultHealthTrendSize
	}
	var out []models.DailyLog
	for _, l := range s.DailyLogs() {
		if l.Weight != nil || l.Workout {
			out = append(out, l)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}
