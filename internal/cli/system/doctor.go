package system

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/schema"
	"github.com/julianstephens/girassol/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(ctx *cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Data migrations", run: checkDataMigrations, needsDB: true},
	{name: "Collections", run: checkCollections, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "AI API key", run: checkAPIKey, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false
	dbReachable := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Fprintf(ctx.Out, "❌ Store reachable: FAIL\n")
		fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Fprintf(ctx.Out, "✓ Store reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Fprintf(ctx.Out, "⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n", c.name)
			fmt.Fprintf(ctx.Out, "   %v\n", err)
		default:
			fmt.Fprintf(ctx.Out, "❌ %s: FAIL\n", c.name)
			fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Fprintln(ctx.Out, "All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sm, ok := ctx.Store.(cli.SchemaMigrator)
	if !ok {
		// The JSON store has no SQL schema
		return nil
	}
	current, latest, err := sm.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("database schema version (%d) is behind (%d), run 'girassol migrate'", current, latest)
	}
	return nil
}

func checkDataMigrations(ctx *cli.Context) error {
	current, latest := ctx.Migrator.CurrentVersion(), ctx.Migrator.LatestVersion()
	if current > latest {
		return fmt.Errorf("data version (%d) is newer than supported version (%d)", current, latest)
	}
	if pending := ctx.Migrator.Pending(); len(pending) > 0 {
		return fmt.Errorf("%d data migration(s) pending, run 'girassol migrate'", len(pending))
	}
	return nil
}

// checkCollections reads every registered key raw and reports the ones that
// no longer hold valid JSON. Such keys read back as empty.
func checkCollections(ctx *cli.Context) error {
	var corrupt []string
	for _, c := range schema.Collections() {
		raw, ok, err := ctx.Store.GetItem(c.Key.String())
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", c.Key, err)
		}
		if ok && !json.Valid([]byte(raw)) {
			corrupt = append(corrupt, c.Key.String())
		}
	}
	if len(corrupt) > 0 {
		return fmt.Errorf("corrupt collections read as empty: %v", corrupt)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s, run 'girassol backup create'", ctx.Backups.GetBackupDir())
	}
	if age := ctx.Calendar.Now().Sub(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("invalid timezone %q", ctx.Config.Timezone)
	}
	now := ctx.Calendar.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkAPIKey(ctx *cli.Context) error {
	if !ctx.AIEnabled {
		return fmt.Errorf("no AI API key found in $%s, $API_KEY or the OS keyring; AI features are disabled", ctx.Config.AI.APIKeyEnv)
	}
	return nil
}
