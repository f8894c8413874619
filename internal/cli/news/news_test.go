package news

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/girassol/internal/ai"
	"github.com/julianstephens/girassol/internal/cli/clitest"
	"github.com/julianstephens/girassol/internal/models"
)

const newsJSON = `[{"title":"Model released","summary":"A new model.","source":"Wire","date":"Today"}]`

func TestNewsRefreshAndShow(t *testing.T) {
	gen := clitest.Generator(func(req ai.Request) (ai.Response, error) {
		if !req.Search {
			t.Error("news request should enable search grounding")
		}
		return ai.Response{Text: newsJSON, GroundingURIs: []string{"https://example.com/a"}}, nil
	})
	ctx, out := clitest.New(t, clitest.WithGenerator(gen))

	if err := (&NewsShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("news show failed: %v", err)
	}
	if !strings.Contains(out.String(), "No news cached.") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&NewsRefreshCmd{}).Run(ctx); err != nil {
		t.Fatalf("news refresh failed: %v", err)
	}
	if !strings.Contains(out.String(), "Model released") || !strings.Contains(out.String(), "https://example.com/a") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&NewsShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("news show failed: %v", err)
	}
	if !strings.Contains(out.String(), "Model released") {
		t.Errorf("cached news not shown: %q", out.String())
	}
}

func TestNewsRefreshFailureKeepsCache(t *testing.T) {
	ctx, out := clitest.New(t, clitest.WithGenerator(clitest.Fail(errors.New("offline"))))
	ctx.Tracker.CacheNews([]models.NewsItem{{Title: "Old story", Source: "Wire"}})

	if err := (&NewsRefreshCmd{}).Run(ctx); err != nil {
		t.Fatalf("news refresh failed: %v", err)
	}
	if !strings.Contains(out.String(), "previous results") || !strings.Contains(out.String(), "Old story") {
		t.Errorf("output = %q", out.String())
	}
}
