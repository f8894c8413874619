package habits

import (
	"fmt"

	"github.com/julianstephens/girassol/internal/cli"
	streak "github.com/julianstephens/girassol/internal/habits"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with streaks and this week's consistency."`
	Mark   HabitMarkCmd   `cmd:"" help:"Toggle a habit as done for a day."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Log    HabitLogCmd    `cmd:"" help:"Show a habit's recent history."`
}

type HabitAddCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Tracker.AddHabit(c.Title)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Added habit: %s (%s)\n", h.Title, cli.ShortID(h.ID))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	list := ctx.Tracker.Habits()
	if len(list) == 0 {
		fmt.Fprintln(ctx.Out, "No habits found.")
		return nil
	}

	now := ctx.Calendar.Now()
	days := ctx.Calendar.Strip(7)
	for _, h := range list {
		score := streak.Consistency(h.CompletedDates, now)
		fmt.Fprintf(ctx.Out, "%s  %s\n", cli.TitleStyle.Render(h.Title), cli.MutedStyle.Render(cli.ShortID(h.ID)))
		fmt.Fprintf(ctx.Out, "  Streak: %d day(s)   This week: %s\n", h.Streak,
			cli.BandStyle(score.Band).Render(fmt.Sprintf("%.0f%% (%s)", score.Percent, score.Band)))
		fmt.Fprintln(ctx.Out, cli.Indent(cli.RenderStrip(days, func(date string) bool {
			return streak.Contains(h.CompletedDates, date)
		})))
	}
	return nil
}

type HabitMarkCmd struct {
	Habit string `arg:"" help:"Habit title or ID."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	h, done, err := ctx.Tracker.ToggleHabit(c.Habit, c.Date)
	if err != nil {
		return err
	}
	day := c.Date
	if day == "" {
		day = ctx.Calendar.Today()
	}
	if done {
		fmt.Fprintf(ctx.Out, "✓ Marked habit %q for %s (streak: %d)\n", h.Title, day, h.Streak)
	} else {
		fmt.Fprintf(ctx.Out, "Unmarked habit %q for %s (streak: %d)\n", h.Title, day, h.Streak)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit title or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Tracker.DeleteHabit(c.Habit)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Deleted habit: %s\n", h.Title)
	return nil
}

type HabitLogCmd struct {
	Habit string `arg:"" help:"Habit title or ID."`
	Days  int    `help:"Number of days to show." default:"14"`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive")
	}
	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s  (streak: %d, %d completion(s))\n", cli.TitleStyle.Render(h.Title), h.Streak, len(h.CompletedDates))
	fmt.Fprintln(ctx.Out, cli.RenderStrip(ctx.Calendar.Strip(c.Days), func(date string) bool {
		return streak.Contains(h.CompletedDates, date)
	}))
	return nil
}
