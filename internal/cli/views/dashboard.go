package views

import (
	"fmt"

	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/models"
)

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	sum := ctx.Tracker.Summary()

	fmt.Fprintln(ctx.Out, cli.TitleStyle.Render(string(sum.Greeting)))
	fmt.Fprintln(ctx.Out, cli.MutedStyle.Render(sum.Today))
	fmt.Fprintln(ctx.Out)
	fmt.Fprintf(ctx.Out, "Habits:  %d/%d done today\n", sum.DoneToday, sum.ActiveHabits)
	fmt.Fprintf(ctx.Out, "Todos:   %d pending\n", sum.PendingTodos)
	if sum.LatestWeight != nil {
		fmt.Fprintf(ctx.Out, "Weight:  %.1f (%s)\n", sum.LatestWeight.Weight, sum.LatestWeight.Date)
	} else {
		fmt.Fprintln(ctx.Out, "Weight:  not recorded")
	}

	if log, found, err := ctx.Tracker.DailyLog(""); err == nil && found {
		fmt.Fprintf(ctx.Out, "Today:   workout %s  meals %d/6\n", cli.Check(log.Workout), log.Meals.Count())
	}

	pending := pendingTodos(ctx.Tracker.SortedTodos(), 3)
	if len(pending) > 0 {
		fmt.Fprintln(ctx.Out)
		fmt.Fprintln(ctx.Out, cli.TitleStyle.Render("Up next"))
		for _, t := range pending {
			fmt.Fprintf(ctx.Out, "  %s %s [%s]\n", cli.Check(false), t.Text, t.Priority)
		}
	}
	return nil
}

func pendingTodos(list []models.Todo, n int) []models.Todo {
	var out []models.Todo
	for _, t := range list {
		if len(out) == n {
			break
		}
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}
