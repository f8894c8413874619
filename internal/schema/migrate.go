package schema

import (
	"fmt"

	"github.com/julianstephens/girassol/internal/calendar"
	"github.com/julianstephens/girassol/internal/kvstore"
	"github.com/julianstephens/girassol/internal/logger"
)

// Migration is one upward data transformation. Apply must be a no-op when
// its own precondition no longer holds, so re-running it is harmless.
type Migration struct {
	Version int
	Name    string
	Apply   func(s *kvstore.Store, cal *calendar.Engine) (changed bool, err error)
}

// Migrations is the ordered table run by Migrator
var Migrations = []Migration{
	{Version: 1, Name: "legacy_weight_to_health_logs", Apply: migrateLegacyWeight},
}

// Result summarises a migrator run
type Result struct {
	From    int
	To      int
	Applied []string // names of migrations that changed data
}

// Migrator brings persisted data up to the latest migration version. The
// applied version is stamped under SchemaVersion, which sits outside the
// backup set so clearing data does not re-trigger old migrations.
type Migrator struct {
	store      *kvstore.Store
	cal        *calendar.Engine
	migrations []Migration
}

func NewMigrator(store *kvstore.Store, cal *calendar.Engine) *Migrator {
	return &Migrator{store: store, cal: cal, migrations: Migrations}
}

// WithMigrations swaps the migration table, for tests
func (m *Migrator) WithMigrations(ms []Migration) *Migrator {
	m.migrations = ms
	return m
}

// CurrentVersion is the stamped version, 0 when nothing has run
func (m *Migrator) CurrentVersion() int {
	return kvstore.Load(m.store, SchemaVersion, 0)
}

// LatestVersion is the highest version in the table
func (m *Migrator) LatestVersion() int {
	latest := 0
	for _, mg := range m.migrations {
		if mg.Version > latest {
			latest = mg.Version
		}
	}
	return latest
}

// Pending lists migrations newer than the stamped version
func (m *Migrator) Pending() []Migration {
	current := m.CurrentVersion()
	var out []Migration
	for _, mg := range m.migrations {
		if mg.Version > current {
			out = append(out, mg)
		}
	}
	return out
}

// Run applies pending migrations in order and stamps each version as it completes
func (m *Migrator) Run() (Result, error) {
	current := m.CurrentVersion()
	res := Result{From: current, To: current}

	if latest := m.LatestVersion(); current > latest {
		return res, fmt.Errorf("data version (%d) is newer than supported version (%d) - please upgrade the application", current, latest)
	}

	for _, mg := range m.Pending() {
		changed, err := mg.Apply(m.store, m.cal)
		if err != nil {
			return res, fmt.Errorf("data migration %d (%s) failed: %w", mg.Version, mg.Name, err)
		}
		if err := kvstore.SaveErr(m.store, SchemaVersion, mg.Version); err != nil {
			return res, fmt.Errorf("failed to record data migration %d: %w", mg.Version, err)
		}
		res.To = mg.Version
		if changed {
			res.Applied = append(res.Applied, mg.Name)
			logger.Info("Applied data migration", "version", mg.Version, "name", mg.Name)
		} else {
			logger.Debug("Data migration had nothing to do", "version", mg.Version, "name", mg.Name)
		}
	}
	return res, nil
}
