package models

import "fmt"

// Mood is the optional emotional tag of a journal entry
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodMotivated Mood = "motivated"
)

// ParseMood validates a mood name. Empty input means no mood.
func ParseMood(s string) (Mood, error) {
	switch Mood(s) {
	case "", MoodHappy, MoodNeutral, MoodSad, MoodMotivated:
		return Mood(s), nil
	default:
		return "", fmt.Errorf("invalid mood %q: must be happy, neutral, sad, or motivated", s)
	}
}

// JournalEntry is a free-text entry. AIAnalysis is written once and never regenerated.
type JournalEntry struct {
	ID         string `json:"id"`
	Date       string `json:"date"` // RFC3339 timestamp of creation
	Content    string `json:"content"`
	Mood       Mood   `json:"mood,omitempty"`
	AIAnalysis string `json:"aiAnalysis,omitempty"`
}
