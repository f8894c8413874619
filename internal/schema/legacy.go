package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/girassol/internal/calendar"
	"github.com/julianstephens/girassol/internal/kvstore"
	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/utils"
)

// migrateLegacyWeight seeds health_logs from the legacy weight log. It only
// runs while health_logs is empty; the legacy key is never modified.
func migrateLegacyWeight(s *kvstore.Store, cal *calendar.Engine) (bool, error) {
	if existing := kvstore.Load(s, HealthLogs, []models.DailyLog(nil)); len(existing) > 0 {
		return false, nil
	}
	legacy := kvstore.Load(s, LegacyWeight, []models.LegacyWeightLog(nil))
	if len(legacy) == 0 {
		return false, nil
	}

	logs := ConvertLegacyWeights(legacy, cal.Today())
	if err := kvstore.SaveErr(s, HealthLogs, logs); err != nil {
		return false, err
	}
	return true, nil
}

// ConvertLegacyWeights maps legacy records to daily logs. Records sharing a
// date collapse to the last one; the result is sorted by date.
func ConvertLegacyWeights(legacy []models.LegacyWeightLog, today string) []models.DailyLog {
	byDate := make(map[string]models.DailyLog, len(legacy))
	for _, w := range legacy {
		date := ConvertLegacyDate(w.Date, today)
		byDate[date] = models.DailyLog{
			Date:    date,
			Weight:  models.Float(w.Weight),
			Workout: false,
			Meals:   models.Meals{},
		}
	}

	logs := make([]models.DailyLog, 0, len(byDate))
	for _, l := range byDate {
		logs = append(logs, l)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date < logs[j].Date })
	return logs
}

// ConvertLegacyDate turns DD/MM/YYYY into YYYY-MM-DD by reversing the
// slash-separated parts. Single-digit parts are zero padded. Anything that
// does not form a real calendar date becomes today.
func ConvertLegacyDate(legacy, today string) string {
	parts := strings.Split(strings.TrimSpace(legacy), "/")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	candidate := strings.Join(parts, "-")
	if utils.ValidateDate(candidate) {
		return candidate
	}

	if len(parts) == 3 {
		nums := make([]int, 3)
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return today
			}
			nums[i] = n
		}
		padded := fmt.Sprintf("%04d-%02d-%02d", nums[0], nums[1], nums[2])
		if utils.ValidateDate(padded) {
			return padded
		}
	}
	return today
}
