package ai

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/errors"
	"github.com/julianstephens/girassol/internal/models"
)

// ErrNotConfigured means no API key is available
var ErrNotConfigured = stderrors.New("no AI API key configured")

const (
	minSubtasks = 3
	maxSubtasks = 5
	newsCount   = 5
)

// Tasks holds the prompts used by the application
type Tasks struct {
	gen      Generator
	language string
}

// NewTasks wraps gen. A nil gen makes every task fail with ErrNotConfigured.
func NewTasks(gen Generator, language string) *Tasks {
	if language == "" {
		language = constants.DefaultAILanguage
	}
	return &Tasks{gen: gen, language: language}
}

// Configured reports whether a generator is available
func (t *Tasks) Configured() bool {
	return t != nil && t.gen != nil
}

func (t *Tasks) generate(ctx context.Context, req Request) (Response, error) {
	if !t.Configured() {
		return Response{}, fmt.Errorf("%w: %w", errors.ErrAICall, ErrNotConfigured)
	}
	return t.gen.Generate(ctx, req)
}

// AnalyzeJournalEntry returns short coaching feedback on entry
func (t *Tasks) AnalyzeJournalEntry(ctx context.Context, entry string) (string, error) {
	prompt := fmt.Sprintf(`Analyse this journal entry from a user focused on their goals for the year.
Be motivating and concise, and act as a personal life coach.
Answer in %s.
Give short feedback (at most 3 sentences) and one practical suggestion.

Journal: %q`, t.language, entry)

	resp, err := t.generate(ctx, Request{Prompt: prompt})
	if err != nil {
		return "", err
	}
	if resp.Text == "" {
		return "", fmt.Errorf("%w: empty analysis", errors.ErrAICall)
	}
	return resp.Text, nil
}

var stringArraySchema = map[string]any{
	"type":  "ARRAY",
	"items": map[string]any{"type": "STRING"},
}

// GenerateSubtasks suggests 3 to 5 short steps for task
func (t *Tasks) GenerateSubtasks(ctx context.Context, task string) ([]string, error) {
	prompt := fmt.Sprintf(`Generate a list of %d to %d short, practical subtasks to complete the following task: %q.
Return ONLY a JSON array of strings in %s. No markdown or explanations.
Example: ["Step 1", "Step 2"]`, minSubtasks, maxSubtasks, task, t.language)

	resp, err := t.generate(ctx, Request{Prompt: prompt, Schema: stringArraySchema})
	if err != nil {
		return nil, err
	}
	if resp.Text == "" {
		return []string{}, nil
	}

	var raw []string
	if err := json.Unmarshal([]byte(StripFences(resp.Text)), &raw); err != nil {
		return nil, fmt.Errorf("%w: subtasks are not a JSON string array: %v", errors.ErrAICall, err)
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// FetchLatestNews asks for the most important AI news of the last two days,
// grounded in web search. Items without a URL borrow the grounding link at
// the same position.
func (t *Tasks) FetchLatestNews(ctx context.Context) ([]models.NewsItem, error) {
	prompt := fmt.Sprintf(`Search for the latest news (last 24 to 48 hours) about Artificial Intelligence.
Pick the %d most important and impactful stories.
Return ONLY a JSON array where each item has this shape:
{
  "title": "Headline",
  "summary": "Short, direct summary in %s (max 20 words)",
  "source": "Source name",
  "date": "Date (e.g. Today, Yesterday)",
  "url": "Link to the story (extract the real link if possible, otherwise leave empty)"
}
Make sure it is valid JSON. No markdown.`, newsCount, t.language)

	resp, err := t.generate(ctx, Request{Prompt: prompt, JSON: true, Search: true})
	if err != nil {
		return nil, err
	}

	cleaned := StripFences(resp.Text)
	if cleaned == "" {
		cleaned = "[]"
	}
	var items []models.NewsItem
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("%w: news is not a JSON array: %v", errors.ErrAICall, err)
	}
	BackfillURLs(items, resp.GroundingURIs)
	if items == nil {
		items = []models.NewsItem{}
	}
	return items, nil
}

// StripFences removes markdown code fences the model sometimes adds
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// BackfillURLs fills empty item URLs from uris by index
func BackfillURLs(items []models.NewsItem, uris []string) {
	for i := range items {
		if items[i].URL == "" && i < len(uris) && uris[i] != "" {
			items[i].URL = uris[i]
		}
	}
}
