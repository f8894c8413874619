package habits

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/girassol/internal/cli/clitest"
	"github.com/julianstephens/girassol/internal/tracker"
)

func TestHabitCommands(t *testing.T) {
	ctx, out := clitest.New(t)

	if err := (&HabitAddCmd{Title: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	if err := (&HabitAddCmd{Title: "  "}).Run(ctx); err == nil {
		t.Error("habit add with blank title should fail")
	}

	for _, day := range []string{"2025-06-13", "2025-06-14", ""} {
		if err := (&HabitMarkCmd{Habit: "read", Date: day}).Run(ctx); err != nil {
			t.Fatalf("habit mark %q failed: %v", day, err)
		}
	}
	h, err := ctx.Tracker.Habit("Read")
	if err != nil {
		t.Fatalf("habit lookup failed: %v", err)
	}
	if h.Streak != 3 {
		t.Errorf("streak = %d, want 3", h.Streak)
	}

	out.Reset()
	if err := (&HabitMarkCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit unmark failed: %v", err)
	}
	if !strings.Contains(out.String(), "Unmarked") {
		t.Errorf("second mark should unmark, got %q", out.String())
	}

	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("habit list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Read") || !strings.Contains(out.String(), "Streak: 2") {
		t.Errorf("habit list output = %q", out.String())
	}

	out.Reset()
	if err := (&HabitLogCmd{Habit: "Read", Days: 7}).Run(ctx); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}
	if got := strings.Count(out.String(), "●"); got != 2 {
		t.Errorf("habit log shows %d completions, want 2", got)
	}

	if err := (&HabitMarkCmd{Habit: "Read", Date: "15/06/2025"}).Run(ctx); err == nil {
		t.Error("habit mark with invalid date should fail")
	}
	if err := (&HabitDeleteCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}
	if _, err := ctx.Tracker.Habit("Read"); err == nil {
		t.Error("deleted habit still resolves")
	}
}

func TestHabitNotFound(t *testing.T) {
	ctx, _ := clitest.New(t)
	err := (&HabitMarkCmd{Habit: "missing"}).Run(ctx)
	if !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestHabitListEmpty(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("habit list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No habits found.") {
		t.Errorf("output = %q", out.String())
	}
}
