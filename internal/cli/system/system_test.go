package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/cli/clitest"
	"github.com/julianstephens/girassol/internal/config"
	"github.com/julianstephens/girassol/internal/kvstore"
	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/schema"
	"github.com/julianstephens/girassol/internal/storage"
	"github.com/julianstephens/girassol/internal/storage/sqlite"
)

func newUninitialized(t *testing.T, store storage.Provider) *cli.Context {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	cfg := config.Default()
	cfg.Timezone = "UTC"
	ctx, err := cli.NewContext(store, cfg, cli.Options{
		Now:    func() time.Time { return clitest.Now },
		Out:    &strings.Builder{},
		APIKey: "test-key",
	})
	if err != nil {
		t.Fatalf("failed to build context: %v", err)
	}
	return ctx
}

func TestInitCmd_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })
	ctx := newUninitialized(t, store)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if got, want := ctx.Migrator.CurrentVersion(), ctx.Migrator.LatestVersion(); got != want {
		t.Errorf("data version = %d, want %d", got, want)
	}
}

func TestInitCmd_JSONForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "girassol.json")
	store := storage.NewJSONStore(path)
	ctx := newUninitialized(t, store)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := ctx.Tracker.AddHabit("Read"); err != nil {
		t.Fatal(err)
	}
	if err := (&InitCmd{}).Run(ctx); err == nil {
		t.Error("second init of a JSON store should fail without --force")
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if n := len(ctx.Tracker.Habits()); n != 0 {
		t.Errorf("habits after forced init = %d, want 0", n)
	}
}

func TestMigrateCmd_LegacyWeights(t *testing.T) {
	ctx, out := clitest.New(t)

	// Pretend the data predates the first migration
	if err := ctx.KV.SetRaw(schema.SchemaVersion, nil); err != nil {
		t.Fatal(err)
	}
	legacy := []models.LegacyWeightLog{{ID: "1", Date: "25/12/2024", Weight: 80}}
	if err := kvstore.SaveErr(ctx.KV, schema.LegacyWeight, legacy); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "No schema migrations to apply.") {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "Applied data migration") {
		t.Errorf("output = %q", out.String())
	}
	logs := ctx.Tracker.DailyLogs()
	if len(logs) != 1 || logs[0].Date != "2024-12-25" || logs[0].Weight == nil || *logs[0].Weight != 80 {
		t.Errorf("migrated logs = %+v", logs)
	}

	out.Reset()
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "No data migrations to apply") {
		t.Errorf("second migrate output = %q", out.String())
	}
}

func TestDoctorCmd_Healthy(t *testing.T) {
	ctx, out := clitest.New(t, clitest.WithGenerator(clitest.Reply("ok")))
	if _, err := ctx.Backups.CreateBackup(); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed on healthy store: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "All diagnostics passed!") {
		t.Errorf("output = %q", out.String())
	}
}

func TestDoctorCmd_Warnings(t *testing.T) {
	ctx, out := clitest.New(t)

	// Missing backups and API key are warnings, not failures
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor should not fail on warnings: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "⚠ Backups present: WARNING") || !strings.Contains(got, "⚠ AI API key: WARNING") {
		t.Errorf("output = %q", got)
	}
}

func TestDoctorCmd_CorruptCollection(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := ctx.Store.SetItem(schema.Habits.String(), "{not json"); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail on a corrupt collection")
	}
	if !strings.Contains(out.String(), "❌ Collections: FAIL") {
		t.Errorf("output = %q", out.String())
	}
}

func TestDoctorCmd_Unreachable(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "missing.db"))
	ctx := newUninitialized(t, store)
	out := &strings.Builder{}
	ctx.Out = out

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail when the store is missing")
	}
	if !strings.Contains(out.String(), "⊘ Collections: SKIPPED") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRemindCheckCmd(t *testing.T) {
	evening := time.Date(2025, time.June, 15, 20, 5, 0, 0, time.UTC)
	ctx, out := clitest.New(t, clitest.WithNow(func() time.Time { return evening }))

	prefs := ctx.Tracker.Preferences()
	prefs.Notifications = true
	if err := ctx.Tracker.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}

	if err := (&RemindCheckCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("remind check failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "[Girassol]") || !strings.Contains(got, "Reminder: fired") || !strings.Contains(got, "Last fired: 2025-06-15") {
		t.Errorf("output = %q", got)
	}

	out.Reset()
	if err := (&RemindCheckCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("remind check failed: %v", err)
	}
	if !strings.Contains(out.String(), "Reminder: already-fired") {
		t.Errorf("second check output = %q", out.String())
	}
}

func TestRemindCheckCmd_Disabled(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&RemindCheckCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("remind check failed: %v", err)
	}
	if !strings.Contains(out.String(), "Reminder: disabled") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSecretCommands(t *testing.T) {
	ctx, out := clitest.New(t)

	if err := (&SecretSetAPIKeyCmd{Key: "  abc123  "}).Run(ctx); err != nil {
		t.Fatalf("set-api-key failed: %v", err)
	}
	if err := (&SecretSetConnectionCmd{ConnectionString: "postgres://db.example.com/girassol?sslmode=disable"}).Run(ctx); err != nil {
		t.Fatalf("set-connection failed: %v", err)
	}

	out.Reset()
	if err := (&SecretStatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"✓ OS keyring is available", "✓ Connection string is stored in keyring", "✓ AI API key found in keyring"} {
		if !strings.Contains(got, want) {
			t.Errorf("status output missing %q:\n%s", want, got)
		}
	}

	if err := (&SecretDeleteAPIKeyCmd{}).Run(ctx); err != nil {
		t.Fatalf("delete-api-key failed: %v", err)
	}
	if err := (&SecretDeleteAPIKeyCmd{}).Run(ctx); err == nil {
		t.Error("deleting a missing API key should fail")
	}
	if err := (&SecretDeleteConnectionCmd{}).Run(ctx); err != nil {
		t.Fatalf("delete-connection failed: %v", err)
	}
}

func TestSecretSetConnectionCmd_Invalid(t *testing.T) {
	ctx, _ := clitest.New(t)
	if err := (&SecretSetConnectionCmd{ConnectionString: "/tmp/girassol.db"}).Run(ctx); err == nil {
		t.Error("a file path should be rejected as a connection string")
	}
}
