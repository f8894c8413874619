package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/girassol/internal/assistant"
	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/models"
)

type NewsCmd struct {
	Show    NewsShowCmd    `cmd:"" help:"Show cached news." default:"1"`
	Refresh NewsRefreshCmd `cmd:"" help:"Fetch the latest news with the AI assistant."`
}

type NewsShowCmd struct{}

func (c *NewsShowCmd) Run(ctx *cli.Context) error {
	cache, ok := ctx.Tracker.News()
	if !ok || len(cache.Items) == 0 {
		fmt.Fprintln(ctx.Out, "No news cached. Run 'girassol news refresh'.")
		return nil
	}
	printNews(ctx, cache)
	return nil
}

type NewsRefreshCmd struct{}

func (c *NewsRefreshCmd) Run(ctx *cli.Context) error {
	cache, refreshed, err := ctx.Assistant.RefreshNews(context.Background())
	if err != nil {
		if errors.Is(err, assistant.ErrInFlight) {
			return fmt.Errorf("a news refresh is already running")
		}
		return err
	}
	if !refreshed {
		fmt.Fprintln(ctx.Out, cli.WarnStyle.Render("Could not fetch news right now; showing the previous results."))
	}
	if len(cache.Items) == 0 {
		fmt.Fprintln(ctx.Out, "No news available.")
		return nil
	}
	printNews(ctx, cache)
	return nil
}

func printNews(ctx *cli.Context, cache models.NewsCache) {
	if t, err := time.Parse(time.RFC3339Nano, cache.Date); err == nil {
		fmt.Fprintln(ctx.Out, cli.MutedStyle.Render("Fetched "+t.In(ctx.Calendar.Location()).Format("2006-01-02 15:04")))
	}
	for i, item := range cache.Items {
		fmt.Fprintln(ctx.Out)
		fmt.Fprintf(ctx.Out, "%d. %s\n", i+1, cli.TitleStyle.Render(item.Title))
		fmt.Fprintln(ctx.Out, cli.Indent(item.Summary))
		meta := item.Source
		if item.Date != "" {
			meta += " · " + item.Date
		}
		fmt.Fprintln(ctx.Out, cli.Indent(cli.MutedStyle.Render(meta)))
		if item.URL != "" {
			fmt.Fprintln(ctx.Out, cli.Indent(item.URL))
		}
	}
}
