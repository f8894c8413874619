// Package assistant runs the AI tasks against tracker records. Each task is
// one-shot: a failure degrades to a placeholder and is never retried.
package assistant

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/julianstephens/girassol/internal/ai"
	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/logger"
	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/tracker"
)

// ErrInFlight means a task for the same record is still running
var ErrInFlight = stderrors.New("a request for this item is already in progress")

const newsTaskKey = "news"

type Assistant struct {
	svc   *tracker.Service
	tasks *ai.Tasks

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func New(svc *tracker.Service, tasks *ai.Tasks) *Assistant {
	return &Assistant{svc: svc, tasks: tasks, inFlight: make(map[string]struct{})}
}

// acquire marks key busy and returns the func that clears it
func (a *Assistant) acquire(key string) (func(), error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, busy := a.inFlight[key]; busy {
		return nil, fmt.Errorf("%w: %s", ErrInFlight, key)
	}
	a.inFlight[key] = struct{}{}
	return func() {
		a.mu.Lock()
		delete(a.inFlight, key)
		a.mu.Unlock()
	}, nil
}

// Analysis is the outcome of AnalyzeEntry
type Analysis struct {
	Entry  models.JournalEntry
	Text   string
	Cached bool // the entry already had an analysis
	Failed bool // Text is a placeholder and was not stored
}

// AnalyzeEntry returns the stored analysis of an entry, or asks the model
// for one and stores it. Placeholders are returned but never stored.
func (a *Assistant) AnalyzeEntry(ctx context.Context, ref string) (Analysis, error) {
	e, err := a.svc.Entry(ref)
	if err != nil {
		return Analysis{}, err
	}
	if e.AIAnalysis != "" {
		return Analysis{Entry: e, Text: e.AIAnalysis, Cached: true}, nil
	}
	if !a.tasks.Configured() {
		return Analysis{Entry: e, Text: constants.AnalysisNotConfigured, Failed: true}, nil
	}

	release, err := a.acquire("journal:" + e.ID)
	if err != nil {
		return Analysis{}, err
	}
	defer release()

	text, err := a.tasks.AnalyzeJournalEntry(ctx, e.Content)
	if err != nil {
		logger.Warn("Journal analysis failed", "entry", e.ID, "error", err)
		return Analysis{Entry: e, Text: constants.AnalysisUnavailable, Failed: true}, nil
	}

	e, err = a.svc.SetAnalysis(e.ID, text)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{Entry: e, Text: e.AIAnalysis}, nil
}

// SuggestSubtasks appends AI-suggested subtasks to a todo and returns the
// texts that were added. Without an API key a single manual placeholder is
// added. A failed call adds nothing.
func (a *Assistant) SuggestSubtasks(ctx context.Context, ref string) (models.Todo, []string, error) {
	t, err := a.svc.Todo(ref)
	if err != nil {
		return models.Todo{}, nil, err
	}

	release, err := a.acquire("todo:" + t.ID)
	if err != nil {
		return models.Todo{}, nil, err
	}
	defer release()

	var suggestions []string
	if !a.tasks.Configured() {
		suggestions = []string{constants.ManualSubtaskSuggestion}
	} else {
		suggestions, err = a.tasks.GenerateSubtasks(ctx, t.Text)
		if err != nil {
			logger.Warn("Subtask generation failed", "todo", t.ID, "error", err)
			return t, []string{}, nil
		}
	}
	if len(suggestions) == 0 {
		return t, []string{}, nil
	}

	t, err = a.svc.AddSubtasks(t.ID, suggestions...)
	if err != nil {
		return models.Todo{}, nil, err
	}
	return t, suggestions, nil
}

// RefreshNews fetches fresh news and caches it. On failure, or when nothing
// came back, the previous cache is kept and returned with refreshed=false.
func (a *Assistant) RefreshNews(ctx context.Context) (cache models.NewsCache, refreshed bool, err error) {
	release, err := a.acquire(newsTaskKey)
	if err != nil {
		return models.NewsCache{}, false, err
	}
	defer release()

	old, _ := a.svc.News()
	if !a.tasks.Configured() {
		return old, false, nil
	}

	items, err := a.tasks.FetchLatestNews(ctx)
	if err != nil {
		logger.Warn("News refresh failed, keeping cached news", "error", err)
		return old, false, nil
	}
	if len(items) == 0 {
		logger.Info("News refresh returned no items, keeping cached news")
		return old, false, nil
	}
	return a.svc.CacheNews(items), true, nil
}
