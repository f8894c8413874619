package settings

import (
	"strings"
	"testing"

	"github.com/julianstephens/girassol/internal/cli/clitest"
)

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := clitest.New(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Sounds:            true", "Notifications:     false", "Notification Time: 20:00"} {
		if !strings.Contains(got, want) {
			t.Errorf("settings list missing %q:\n%s", want, got)
		}
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _ := clitest.New(t)

	on, off, at := true, false, "07:45"
	cmd := &SettingsCmd{Sounds: &off, Notifications: &on, NotificationTime: &at}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	prefs := ctx.Tracker.Preferences()
	if prefs.Sounds || !prefs.Notifications || prefs.NotificationTime != "07:45" {
		t.Errorf("preferences = %+v", prefs)
	}
}

func TestSettingsCmd_InvalidTime(t *testing.T) {
	ctx, _ := clitest.New(t)

	bad := "25:00"
	if err := (&SettingsCmd{NotificationTime: &bad}).Run(ctx); err == nil {
		t.Error("expected error for invalid notification time")
	}
	if got := ctx.Tracker.Preferences().NotificationTime; got != "20:00" {
		t.Errorf("notification time = %q, want unchanged", got)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if !strings.Contains(out.String(), "No changes specified.") {
		t.Errorf("output = %q", out.String())
	}
}
