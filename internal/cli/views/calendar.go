package views

import (
	"fmt"

	"github.com/julianstephens/girassol/internal/calendar"
	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/habits"
)

type CalendarCmd struct {
	Month string `help:"Month to show (YYYY-MM, default: current)." default:""`
	Habit string `help:"Only mark days this habit was completed." default:""`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	grid := ctx.Calendar.CurrentMonthGrid()
	if c.Month != "" {
		year, month, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		grid = calendar.MonthGrid(year, month)
	}

	var mark func(string) bool
	legend := "* habit done, journal written or health logged"
	if c.Habit != "" {
		h, err := ctx.Tracker.Habit(c.Habit)
		if err != nil {
			return err
		}
		mark = func(date string) bool { return habits.Contains(h.CompletedDates, date) }
		legend = fmt.Sprintf("* %s done", h.Title)
	} else {
		active := activeDays(ctx)
		mark = func(date string) bool { return active[date] }
	}

	fmt.Fprintln(ctx.Out, cli.RenderMonth(grid, ctx.Calendar.Today(), mark))
	fmt.Fprintln(ctx.Out, cli.MutedStyle.Render(legend))
	return nil
}

func activeDays(ctx *cli.Context) map[string]bool {
	days := make(map[string]bool)
	for _, h := range ctx.Tracker.Habits() {
		for _, d := range h.CompletedDates {
			days[d] = true
		}
	}
	for _, e := range ctx.Tracker.Entries() {
		if d, err := ctx.Calendar.DateOf(e.Date); err == nil {
			days[d] = true
		}
	}
	for _, l := range ctx.Tracker.DailyLogs() {
		days[l.Date] = true
	}
	return days
}
