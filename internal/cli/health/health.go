package health

import (
	"fmt"
	"strings"

	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/models"
)

type HealthCmd struct {
	Log     HealthLogCmd     `cmd:"" help:"Record weight, workout and meals for a day."`
	Show    HealthShowCmd    `cmd:"" help:"Show the log for a day."`
	Weights HealthWeightsCmd `cmd:"" help:"Show recent weigh-ins."`
	Trend   HealthTrendCmd   `cmd:"" help:"Show the recent health trend."`
}

type HealthLogCmd struct {
	Date        string   `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Weight      *float64 `help:"Weight for the day."`
	ClearWeight bool     `help:"Remove the recorded weight."`
	Workout     *bool    `help:"Whether you worked out."`

	Breakfast      *bool `help:"Had breakfast."`
	MorningSnack   *bool `help:"Had a morning snack."`
	Lunch          *bool `help:"Had lunch."`
	AfternoonSnack *bool `help:"Had an afternoon snack."`
	Dinner         *bool `help:"Had dinner."`
	Supper         *bool `help:"Had supper."`
}

func (c *HealthLogCmd) Run(ctx *cli.Context) error {
	if c.Weight != nil && c.ClearWeight {
		return fmt.Errorf("--weight and --clear-weight cannot be used together")
	}

	log, err := ctx.Tracker.UpdateDailyLog(c.Date, func(l *models.DailyLog) {
		switch {
		case c.Weight != nil:
			l.Weight = models.Float(*c.Weight)
		case c.ClearWeight:
			l.Weight = nil
		}
		set(&l.Workout, c.Workout)
		set(&l.Meals.Breakfast, c.Breakfast)
		set(&l.Meals.MorningSnack, c.MorningSnack)
		set(&l.Meals.Lunch, c.Lunch)
		set(&l.Meals.AfternoonSnack, c.AfternoonSnack)
		set(&l.Meals.Dinner, c.Dinner)
		set(&l.Meals.Supper, c.Supper)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Saved health log for %s\n", log.Date)
	fmt.Fprintln(ctx.Out, formatLog(log))
	return nil
}

func set(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

type HealthShowCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HealthShowCmd) Run(ctx *cli.Context) error {
	log, found, err := ctx.Tracker.DailyLog(c.Date)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, cli.TitleStyle.Render(log.Date))
	if !found {
		fmt.Fprintln(ctx.Out, cli.MutedStyle.Render("  Nothing recorded yet."))
	}
	fmt.Fprintln(ctx.Out, formatLog(log))
	return nil
}

type HealthWeightsCmd struct {
	Last int `help:"Number of weigh-ins to show (0 for all)." default:"7"`
}

func (c *HealthWeightsCmd) Run(ctx *cli.Context) error {
	pts := ctx.Tracker.Weights(c.Last)
	if len(pts) == 0 {
		fmt.Fprintln(ctx.Out, "No weights recorded.")
		return nil
	}
	lo, hi := pts[0].Weight, pts[0].Weight
	for _, p := range pts {
		lo = min(lo, p.Weight)
		hi = max(hi, p.Weight)
	}
	for _, p := range pts {
		fmt.Fprintf(ctx.Out, "%s  %6.1f  %s\n", p.Date, p.Weight, bar(p.Weight, lo, hi))
	}
	if len(pts) > 1 {
		delta := pts[len(pts)-1].Weight - pts[0].Weight
		fmt.Fprintf(ctx.Out, "\nChange: %+.1f\n", delta)
	}
	return nil
}

type HealthTrendCmd struct {
	Last int `help:"Number of logs to include." default:"14"`
}

func (c *HealthTrendCmd) Run(ctx *cli.Context) error {
	logs := ctx.Tracker.HealthTrend(c.Last)
	if len(logs) == 0 {
		fmt.Fprintln(ctx.Out, "No health logs recorded.")
		return nil
	}
	fmt.Fprintf(ctx.Out, "%-10s  %6s  %-7s  %s\n", "Date", "Weight", "Workout", "Meals")
	for _, l := range logs {
		weight := "-"
		if l.Weight != nil {
			weight = fmt.Sprintf("%.1f", *l.Weight)
		}
		workout := "no"
		if l.Workout {
			workout = "yes"
		}
		fmt.Fprintf(ctx.Out, "%-10s  %6s  %-7s  %d/6\n", l.Date, weight, workout, l.Meals.Count())
	}
	return nil
}

func formatLog(l models.DailyLog) string {
	weight := "not recorded"
	if l.Weight != nil {
		weight = fmt.Sprintf("%.1f", *l.Weight)
	}
	lines := []string{
		"  Weight:  " + weight,
		"  Workout: " + cli.Check(l.Workout),
		fmt.Sprintf("  Meals:   %d/6", l.Meals.Count()),
	}
	meals := []struct {
		name string
		done bool
	}{
		{"Breakfast", l.Meals.Breakfast},
		{"Morning snack", l.Meals.MorningSnack},
		{"Lunch", l.Meals.Lunch},
		{"Afternoon snack", l.Meals.AfternoonSnack},
		{"Dinner", l.Meals.Dinner},
		{"Supper", l.Meals.Supper},
	}
	for _, m := range meals {
		lines = append(lines, fmt.Sprintf("    %s %s", cli.Check(m.done), m.name))
	}
	return strings.Join(lines, "\n")
}

const barWidth = 20

func bar(v, lo, hi float64) string {
	n := barWidth
	if hi > lo {
		n = 1 + int((v-lo)/(hi-lo)*float64(barWidth-1))
	}
	return cli.DoneStyle.Render(strings.Repeat("█", n))
}
