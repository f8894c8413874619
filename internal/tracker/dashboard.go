package tracker

import (
	"time"

	"github.com/julianstephens/girassol/internal/habits"
)

// Greeting is the time-of-day salutation on the dashboard
type Greeting string

const (
	GreetingMorning   Greeting = "Good morning, sunshine!"
	GreetingAfternoon Greeting = "Good afternoon! Keep shining."
	GreetingNight     Greeting = "Good night. Rest to grow."
)

// GreetingFor picks the greeting for the hour of t: 5-11 morning, 12-17 afternoon
func GreetingFor(t time.Time) Greeting {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return GreetingMorning
	case h >= 12 && h < 18:
		return GreetingAfternoon
	default:
		return GreetingNight
	}
}

// Summary is the at-a-glance dashboard
type Summary struct {
	Greeting     Greeting
	Today        string
	ActiveHabits int
	DoneToday    int
	PendingTodos int
	LatestWeight *WeightPoint
}

func (s *Service) Summary() Summary {
	now := s.cal.Now()
	today := s.cal.Today()
	sum := Summary{
		Greeting:     GreetingFor(now),
		Today:        today,
		PendingTodos: s.TaskStats().Pending,
	}
	for _, h := range s.Habits() {
		sum.ActiveHabits++
		if habits.Contains(h.CompletedDates, today) {
			sum.DoneToday++
		}
	}
	if w, ok := s.LatestWeight(); ok {
		sum.LatestWeight = &w
	}
	return sum
}
