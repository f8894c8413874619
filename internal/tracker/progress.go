package tracker

import (
	"sort"

	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/habits"
	"github.com/julianstephens/girassol/internal/models"
)

// Badge is an achievement unlocked by recent activity
type Badge struct {
	Name        string
	Description string
}

var (
	BadgeEnergy      = Badge{Name: "Energy", Description: "3+ workouts in the last 7 logs"}
	BadgeFocused     = Badge{Name: "Focused", Description: "10+ todos completed"}
	BadgeUnstoppable = Badge{Name: "Unstoppable", Description: "7 day streak"}
	BadgeGardener    = Badge{Name: "Gardener", Description: "every habit above 50% this week"}
)

// HabitScore is one habit's trailing-week consistency
type HabitScore struct {
	Habit models.Habit
	habits.Score
}

// TaskStats counts todos by state
type TaskStats struct {
	Completed int
	Pending   int
}

func (t TaskStats) Total() int { return t.Completed + t.Pending }

// Progress is the snapshot shown by the progress view
type Progress struct {
	Habits []HabitScore
	Tasks  TaskStats
	Trend  []models.DailyLog
	Badges []Badge
}

// Consistency scores every habit over the trailing week, best first
func (s *Service) Consistency() []HabitScore {
	now := s.cal.Now()
	list := s.Habits()
	scores := make([]HabitScore, 0, len(list))
	for _, h := range list {
		scores = append(scores, HabitScore{Habit: h, Score: habits.Consistency(h.CompletedDates, now)})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Percent > scores[j].Percent })
	return scores
}

func (s *Service) TaskStats() TaskStats {
	var st TaskStats
	for _, t := range s.Todos() {
		if t.Completed {
			st.Completed++
		} else {
			st.Pending++
		}
	}
	return st
}

// Progress gathers scores, task counts, the health trend and earned badges
func (s *Service) Progress() Progress {
	p := Progress{
		Habits: s.Consistency(),
		Tasks:  s.TaskStats(),
		Trend:  s.HealthTrend(constants.DefaultHealthTrendSize),
	}
	p.Badges = Badges(p.Habits, p.Tasks, s.DailyLogs())
	return p
}

// Badges evaluates every badge rule. logs must be sorted oldest first.
func Badges(scores []HabitScore, tasks TaskStats, logs []models.DailyLog) []Badge {
	var out []Badge

	recent := logs
	if len(recent) > constants.BadgeEnergyWindow {
		recent = recent[len(recent)-constants.BadgeEnergyWindow:]
	}
	workouts := 0
	for _, l := range recent {
		if l.Workout {
			workouts++
		}
	}
	if workouts >= constants.BadgeEnergyWorkouts {
		out = append(out, BadgeEnergy)
	}

	if tasks.Completed >= constants.BadgeFocusedTasks {
		out = append(out, BadgeFocused)
	}

	maxStreak := 0
	for _, sc := range scores {
		maxStreak = max(maxStreak, sc.Habit.Streak)
	}
	if maxStreak >= constants.BadgeUnstoppableDays {
		out = append(out, BadgeUnstoppable)
	}

	if len(scores) > 0 {
		all := true
		for _, sc := range scores {
			if sc.Percent <= constants.BadgeGardenerMinScore {
				all = false
				break
			}
		}
		if all {
			out = append(out, BadgeGardener)
		}
	}
	return out
}
