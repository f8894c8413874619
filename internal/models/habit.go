package models

// Habit is a daily practice tracked by the set of days it was completed on.
type Habit struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Streak         int      `json:"streak"`         // cached, recomputed from CompletedDates
	CompletedDates []string `json:"completedDates"` // YYYY-MM-DD, no duplicates
}
