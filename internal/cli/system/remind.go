package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/logger"
	"github.com/julianstephens/girassol/internal/notifier"
	"github.com/julianstephens/girassol/internal/reminder"
	"github.com/julianstephens/girassol/internal/storage"
)

// RemindRunCmd keeps checking the daily reminder until interrupted
type RemindRunCmd struct {
	DryRun bool `help:"Print reminders instead of sending them to the tray app."`
}

func (c *RemindRunCmd) Run(ctx *cli.Context) error {
	rem := reminder.New(ctx.Tracker, sender(ctx, c.DryRun), ctx.Config.Reminder.Interval, ctx.Config.GracePeriod())

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A JSON store can be edited by another girassol process; re-check on change
	var wake chan struct{}
	if js, ok := ctx.Store.(*storage.JSONStore); ok {
		wake = make(chan struct{}, 1)
		go func() {
			err := js.Watch(runCtx, func() {
				select {
				case wake <- struct{}{}:
				default:
				}
			})
			if err != nil {
				logger.Warn("Store watcher stopped", "error", err)
			}
		}()
	}

	prefs := ctx.Tracker.Preferences()
	fmt.Fprintf(ctx.Out, "Reminder running (daily at %s, notifications %s). Press Ctrl+C to stop.\n",
		prefs.NotificationTime, onOff(prefs.Notifications))
	return rem.Run(runCtx, wake)
}

// RemindCheckCmd runs one reminder check
type RemindCheckCmd struct {
	DryRun bool `help:"Print the reminder instead of sending it to the tray app."`
}

func (c *RemindCheckCmd) Run(ctx *cli.Context) error {
	rem := reminder.New(ctx.Tracker, sender(ctx, c.DryRun), ctx.Config.Reminder.Interval, ctx.Config.GracePeriod())
	outcome, err := rem.Tick(ctx.Calendar.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Reminder: %s\n", outcome)
	if last := rem.LastFired(); last != "" {
		fmt.Fprintf(ctx.Out, "Last fired: %s\n", last)
	}
	return nil
}

func sender(ctx *cli.Context, dryRun bool) notifier.Sender {
	w := notifier.Writer{W: ctx.Out}
	if dryRun {
		return w
	}
	return notifier.Fallback{Primary: notifier.New(), Secondary: w}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
