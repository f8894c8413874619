// Package reminder fires the daily check-in notification. It polls the clock
// on a fixed interval and fires at most once per calendar day, inside a grace
// window after the configured time.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/kvstore"
	"github.com/julianstephens/girassol/internal/logger"
	"github.com/julianstephens/girassol/internal/notifier"
	"github.com/julianstephens/girassol/internal/schema"
	"github.com/julianstephens/girassol/internal/tracker"
	"github.com/julianstephens/girassol/internal/utils"
)

// Outcome says what a tick did
type Outcome string

const (
	OutcomeDisabled     Outcome = "disabled"
	OutcomeTooEarly     Outcome = "too-early"
	OutcomeMissed       Outcome = "missed"
	OutcomeAlreadyFired Outcome = "already-fired"
	OutcomeFired        Outcome = "fired"
	OutcomeFailed       Outcome = "failed"
)

type Reminder struct {
	svc      *tracker.Service
	sender   notifier.Sender
	interval time.Duration
	grace    time.Duration
}

// New builds a reminder. Non-positive interval or grace use the defaults.
func New(svc *tracker.Service, sender notifier.Sender, interval, grace time.Duration) *Reminder {
	if interval <= 0 {
		interval = constants.DefaultReminderInterval
	}
	if grace <= 0 {
		grace = time.Duration(constants.DefaultNotificationGracePeriodMin) * time.Minute
	}
	return &Reminder{svc: svc, sender: sender, interval: interval, grace: grace}
}

// LastFired returns the date of the last delivered reminder, if any
func (r *Reminder) LastFired() string {
	return kvstore.Load(r.svc.Store(), schema.ReminderLastFired, "")
}

// Tick checks the clock once. A failed delivery is not stamped, so the next
// tick inside the window tries again.
func (r *Reminder) Tick(now time.Time) (Outcome, error) {
	prefs := r.svc.Preferences()
	if !prefs.Notifications {
		return OutcomeDisabled, nil
	}

	loc := r.svc.Calendar().Location()
	now = now.In(loc)
	today := now.Format(constants.DateFormat)
	if r.LastFired() == today {
		return OutcomeAlreadyFired, nil
	}

	target, err := utils.CombineDateAndTime(today, prefs.NotificationTime, loc)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("invalid notification time: %w", err)
	}
	switch {
	case now.Before(target):
		return OutcomeTooEarly, nil
	case !now.Before(target.Add(r.grace)):
		return OutcomeMissed, nil
	}

	if err := r.sender.Notify(constants.ReminderTitle, constants.ReminderBody); err != nil {
		return OutcomeFailed, fmt.Errorf("failed to send reminder: %w", err)
	}
	if err := kvstore.SaveErr(r.svc.Store(), schema.ReminderLastFired, today); err != nil {
		logger.Warn("Reminder sent but could not be stamped", "error", err)
	}
	return OutcomeFired, nil
}

// Run ticks until ctx is done. A value on wake triggers an immediate tick,
// for example after the store was changed by another process.
func (r *Reminder) Run(ctx context.Context, wake <-chan struct{}) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logger.Info("Reminder loop started", "interval", r.interval, "grace", r.grace)
	r.tick()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder loop stopped")
			return nil
		case <-ticker.C:
			r.tick()
		case <-wake:
			r.tick()
		}
	}
}

func (r *Reminder) tick() {
	outcome, err := r.Tick(r.svc.Calendar().Now())
	if err != nil {
		logger.Error("Reminder tick failed", "outcome", outcome, "error", err)
		return
	}
	if outcome == OutcomeFired {
		logger.Info("Reminder delivered")
	} else {
		logger.Debug("Reminder tick", "outcome", outcome)
	}
}
