package settings

import (
	"fmt"

	"github.com/julianstephens/girassol/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Sounds           *bool   `help:"Enable or disable sounds."`
	Notifications    *bool   `help:"Enable or disable the daily reminder."`
	NotificationTime *string `help:"Daily reminder time (HH:MM)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	prefs := ctx.Tracker.Preferences()

	if c.List {
		fmt.Fprintln(ctx.Out, "Current Settings:")
		fmt.Fprintf(ctx.Out, "  Sounds:            %v\n", prefs.Sounds)
		fmt.Fprintf(ctx.Out, "  Notifications:     %v\n", prefs.Notifications)
		fmt.Fprintf(ctx.Out, "  Notification Time: %s\n", prefs.NotificationTime)
		fmt.Fprintln(ctx.Out, "\nConfiguration:")
		fmt.Fprintf(ctx.Out, "  Store:             %s\n", ctx.Store.GetConfigPath())
		fmt.Fprintf(ctx.Out, "  Timezone:          %s\n", ctx.Calendar.Location())
		fmt.Fprintf(ctx.Out, "  AI Model:          %s\n", ctx.Config.AI.Model)
		fmt.Fprintf(ctx.Out, "  AI Enabled:        %v\n", ctx.AIEnabled)
		fmt.Fprintf(ctx.Out, "  Max Backups:       %d\n", ctx.Config.Backup.MaxBackups)
		return nil
	}

	updated := false
	if c.Sounds != nil {
		prefs.Sounds = *c.Sounds
		updated = true
	}
	if c.Notifications != nil {
		prefs.Notifications = *c.Notifications
		updated = true
	}
	if c.NotificationTime != nil {
		prefs.NotificationTime = *c.NotificationTime
		updated = true
	}

	if updated {
		if err := ctx.Tracker.SavePreferences(prefs); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Fprintln(ctx.Out, "Settings updated successfully.")
	} else {
		fmt.Fprintln(ctx.Out, "No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}
