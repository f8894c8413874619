package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/girassol/internal/assistant"
	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/utils"
)

type JournalCmd struct {
	Add     JournalAddCmd     `cmd:"" help:"Write a journal entry."`
	List    JournalListCmd    `cmd:"" help:"List journal entries, newest first."`
	Edit    JournalEditCmd    `cmd:"" help:"Replace an entry's content."`
	Delete  JournalDeleteCmd  `cmd:"" help:"Delete an entry."`
	Analyze JournalAnalyzeCmd `cmd:"" help:"Get AI feedback on an entry."`
}

type JournalAddCmd struct {
	Content string `arg:"" help:"Entry text."`
	Mood    string `help:"Mood: happy, neutral, sad or motivated." default:""`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	mood, err := models.ParseMood(c.Mood)
	if err != nil {
		return err
	}
	e, err := ctx.Tracker.AddEntry(c.Content, mood)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Saved journal entry (%s)\n", cli.ShortID(e.ID))
	return nil
}

type JournalListCmd struct {
	Date  string `help:"Only show entries written on this date (YYYY-MM-DD)." default:""`
	Limit int    `help:"Maximum number of entries to show (0 for all)." default:"0"`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	entries := ctx.Tracker.Entries()
	if c.Date != "" {
		if !utils.ValidateDate(c.Date) {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
		}
		entries = ctx.Tracker.EntriesOn(c.Date)
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}
	if len(entries) == 0 {
		fmt.Fprintln(ctx.Out, "No journal entries found.")
		return nil
	}
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(ctx.Out)
		}
		fmt.Fprintln(ctx.Out, formatEntry(ctx, e))
	}
	return nil
}

type JournalEditCmd struct {
	Entry   string `arg:"" help:"Entry ID or ID prefix."`
	Content string `arg:"" help:"New entry text."`
}

func (c *JournalEditCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Tracker.EditEntry(c.Entry, c.Content)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Updated journal entry (%s)\n", cli.ShortID(e.ID))
	return nil
}

type JournalDeleteCmd struct {
	Entry string `arg:"" help:"Entry ID or ID prefix."`
}

func (c *JournalDeleteCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Tracker.DeleteEntry(c.Entry)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Deleted journal entry (%s)\n", cli.ShortID(e.ID))
	return nil
}

type JournalAnalyzeCmd struct {
	Entry string `arg:"" help:"Entry ID or ID prefix."`
}

func (c *JournalAnalyzeCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Assistant.AnalyzeEntry(context.Background(), c.Entry)
	if err != nil {
		if errors.Is(err, assistant.ErrInFlight) {
			return fmt.Errorf("analysis already running for this entry")
		}
		return err
	}
	if res.Failed {
		fmt.Fprintln(ctx.Out, cli.WarnStyle.Render(res.Text))
		return nil
	}
	fmt.Fprintln(ctx.Out, cli.TitleStyle.Render("Coach says:"))
	fmt.Fprintln(ctx.Out, res.Text)
	return nil
}

func formatEntry(ctx *cli.Context, e models.JournalEntry) string {
	when := e.Date
	if t, err := time.Parse(time.RFC3339Nano, e.Date); err == nil {
		when = t.In(ctx.Calendar.Location()).Format("2006-01-02 15:04")
	}
	head := fmt.Sprintf("%s  %s", cli.TitleStyle.Render(when), cli.MutedStyle.Render(cli.ShortID(e.ID)))
	if e.Mood != "" {
		head += "  (" + string(e.Mood) + ")"
	}
	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\n")
	b.WriteString(cli.Indent(e.Content))
	if e.AIAnalysis != "" {
		b.WriteString("\n")
		b.WriteString(cli.Indent(cli.MutedStyle.Render("AI: " + e.AIAnalysis)))
	}
	return b.String()
}
