package models

// DailyLog is the health record of one calendar day. Date is the natural key.
type DailyLog struct {
	Date    string   `json:"date"` // YYYY-MM-DD
	Weight  *float64 `json:"weight,omitempty"`
	Workout bool     `json:"workout"`
	Meals   Meals    `json:"meals"`
}

// Meals holds the six fixed meal slots of a day
type Meals struct {
	Breakfast      bool `json:"breakfast"`
	MorningSnack   bool `json:"morningSnack"`
	Lunch          bool `json:"lunch"`
	AfternoonSnack bool `json:"afternoonSnack"`
	Dinner         bool `json:"dinner"`
	Supper         bool `json:"supper"`
}

// Count returns how many meal slots are checked
func (m Meals) Count() int {
	n := 0
	for _, v := range []bool{m.Breakfast, m.MorningSnack, m.Lunch, m.AfternoonSnack, m.Dinner, m.Supper} {
		if v {
			n++
		}
	}
	return n
}

// LegacyWeightLog is the pre-health-log weight record. Only read during migration.
type LegacyWeightLog struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"` // DD/MM/YYYY
	Weight float64 `json:"weight"`
}

// Float returns a pointer to v, for DailyLog.Weight
func Float(v float64) *float64 {
	return &v
}
