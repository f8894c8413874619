package views

import (
	"fmt"

	"github.com/julianstephens/girassol/internal/cli"
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	p := ctx.Tracker.Progress()

	fmt.Fprintln(ctx.Out, cli.TitleStyle.Render("Weekly consistency"))
	if len(p.Habits) == 0 {
		fmt.Fprintln(ctx.Out, "  No habits yet.")
	}
	for _, hs := range p.Habits {
		fmt.Fprintf(ctx.Out, "  %-24s %s  %d/7\n", hs.Habit.Title,
			cli.BandStyle(hs.Band).Render(fmt.Sprintf("%5.1f%%", hs.Percent)), hs.Completed)
	}

	fmt.Fprintln(ctx.Out)
	fmt.Fprintln(ctx.Out, cli.TitleStyle.Render("Tasks"))
	fmt.Fprintf(ctx.Out, "  %d completed, %d pending\n", p.Tasks.Completed, p.Tasks.Pending)

	fmt.Fprintln(ctx.Out)
	fmt.Fprintln(ctx.Out, cli.TitleStyle.Render("Health trend"))
	if len(p.Trend) == 0 {
		fmt.Fprintln(ctx.Out, "  No health logs yet.")
	}
	for _, l := range p.Trend {
		weight := "    -"
		if l.Weight != nil {
			weight = fmt.Sprintf("%5.1f", *l.Weight)
		}
		fmt.Fprintf(ctx.Out, "  %s  %s  workout %s\n", l.Date, weight, cli.Check(l.Workout))
	}

	fmt.Fprintln(ctx.Out)
	fmt.Fprintln(ctx.Out, cli.TitleStyle.Render("Badges"))
	if len(p.Badges) == 0 {
		fmt.Fprintln(ctx.Out, cli.MutedStyle.Render("  None yet. Keep going!"))
	}
	for _, b := range p.Badges {
		fmt.Fprintf(ctx.Out, "  %s  %s\n", cli.DoneStyle.Render(b.Name), cli.MutedStyle.Render(b.Description))
	}
	return nil
}
