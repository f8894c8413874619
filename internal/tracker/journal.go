package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/schema"
)

// Entries returns journal entries newest first
func (s *Service) Entries() []models.JournalEntry {
	return loadList[models.JournalEntry](s, schema.Journal)
}

// Entry resolves one entry by id or id prefix
func (s *Service) Entry(ref string) (models.JournalEntry, error) {
	list := s.Entries()
	i, err := resolve(list, ref, entryID, nil)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("journal entry %w", err)
	}
	return list[i], nil
}

// AddEntry prepends an entry stamped with the current time
func (s *Service) AddEntry(content string, mood models.Mood) (models.JournalEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.JournalEntry{}, fmt.Errorf("journal entry: %w", ErrEmptyText)
	}
	e := models.JournalEntry{
		ID:      s.newID(),
		Date:    s.cal.Now().Format(time.RFC3339),
		Content: content,
		Mood:    mood,
	}
	saveList(s, schema.Journal, append([]models.JournalEntry{e}, s.Entries()...))
	return e, nil
}

// EditEntry replaces the content in place. Date, mood and any cached
// analysis are kept.
func (s *Service) EditEntry(ref, content string) (models.JournalEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.JournalEntry{}, fmt.Errorf("journal entry: %w", ErrEmptyText)
	}
	return s.updateEntry(ref, func(e *models.JournalEntry) {
		e.Content = content
	})
}

func (s *Service) DeleteEntry(ref string) (models.JournalEntry, error) {
	list := s.Entries()
	i, err := resolve(list, ref, entryID, nil)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("journal entry %w", err)
	}
	removed := list[i]
	saveList(s, schema.Journal, append(list[:i], list[i+1:]...))
	return removed, nil
}

// SetAnalysis stores the AI analysis of an entry. An entry that already has
// one keeps it.
func (s *Service) SetAnalysis(ref, analysis string) (models.JournalEntry, error) {
	return s.updateEntry(ref, func(e *models.JournalEntry) {
		if e.AIAnalysis == "" {
			e.AIAnalysis = analysis
		}
	})
}

// EntriesOn returns the entries written on day in the calendar's timezone
func (s *Service) EntriesOn(day string) []models.JournalEntry {
	var out []models.JournalEntry
	for _, e := range s.Entries() {
		if d, err := s.cal.DateOf(e.Date); err == nil && d == day {
			out = append(out, e)
		}
	}
	return out
}

func (s *Service) updateEntry(ref string, fn func(*models.JournalEntry)) (models.JournalEntry, error) {
	list := s.Entries()
	i, err := resolve(list, ref, entryID, nil)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("journal entry %w", err)
	}
	fn(&list[i])
	saveList(s, schema.Journal, list)
	return list[i], nil
}

func entryID(e models.JournalEntry) string { return e.ID }
