package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/girassol/internal/habits"
	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/schema"
)

// Habits returns every habit with its streak recomputed for today
func (s *Service) Habits() []models.Habit {
	list := loadList[models.Habit](s, schema.Habits)
	now := s.cal.Now()
	for i := range list {
		list[i].CompletedDates = habits.Normalize(list[i].CompletedDates)
		list[i].Streak = habits.CurrentStreak(list[i].CompletedDates, now)
	}
	return list
}

// Habit resolves one habit by id, title or id prefix
func (s *Service) Habit(ref string) (models.Habit, error) {
	list := s.Habits()
	i, err := resolve(list, ref, habitID, habitTitle)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %w", err)
	}
	return list[i], nil
}

// AddHabit appends a new habit with no completions
func (s *Service) AddHabit(title string) (models.Habit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Habit{}, fmt.Errorf("habit title: %w", ErrEmptyText)
	}
	h := models.Habit{ID: s.newID(), Title: title, CompletedDates: []string{}}
	list := append(s.Habits(), h)
	saveList(s, schema.Habits, list)
	return h, nil
}

// ToggleHabit flips the completion of day (today when empty) and returns the
// habit with its new streak.
func (s *Service) ToggleHabit(ref, day string) (models.Habit, bool, error) {
	day, err := s.day(day)
	if err != nil {
		return models.Habit{}, false, err
	}

	list := s.Habits()
	i, err := resolve(list, ref, habitID, habitTitle)
	if err != nil {
		return models.Habit{}, false, fmt.Errorf("habit %w", err)
	}

	h := &list[i]
	h.CompletedDates = habits.Toggle(h.CompletedDates, day)
	h.Streak = habits.CurrentStreak(h.CompletedDates, s.cal.Now())
	saveList(s, schema.Habits, list)
	return *h, habits.Contains(h.CompletedDates, day), nil
}

// DeleteHabit removes a habit and its history
func (s *Service) DeleteHabit(ref string) (models.Habit, error) {
	list := s.Habits()
	i, err := resolve(list, ref, habitID, habitTitle)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %w", err)
	}
	removed := list[i]
	list = append(list[:i], list[i+1:]...)
	saveList(s, schema.Habits, list)
	return removed, nil
}

func habitID(h models.Habit) string    { return h.ID }
func habitTitle(h models.Habit) string { return h.Title }
