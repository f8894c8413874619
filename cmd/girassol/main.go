package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/cli/backups"
	"github.com/julianstephens/girassol/internal/cli/habits"
	"github.com/julianstephens/girassol/internal/cli/health"
	"github.com/julianstephens/girassol/internal/cli/journal"
	"github.com/julianstephens/girassol/internal/cli/news"
	"github.com/julianstephens/girassol/internal/cli/settings"
	"github.com/julianstephens/girassol/internal/cli/system"
	"github.com/julianstephens/girassol/internal/cli/todos"
	"github.com/julianstephens/girassol/internal/cli/views"
	"github.com/julianstephens/girassol/internal/config"
	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/errors"
	"github.com/julianstephens/girassol/internal/logger"
	"github.com/julianstephens/girassol/internal/storage"
)

var CLI struct {
	Version    kong.VersionFlag
	Store      string `help:"Store path (.db for SQLite, .json for a plain file), a PostgreSQL connection string, or 'keyring'. Credentials must NOT be embedded in connection strings." env:"GIRASSOL_STORE" default:""`
	ConfigFile string `help:"YAML config file." env:"GIRASSOL_CONFIG_FILE" default:"${config_file}"`
	Debug      bool   `help:"Enable debug logging to stderr."`

	Init      system.InitCmd       `cmd:"" help:"Initialize girassol storage."`
	Migrate   system.MigrateCmd    `cmd:"" help:"Run schema and data migrations."`
	Doctor    system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Dashboard views.DashboardCmd   `cmd:"" help:"Show today's summary." default:"1"`
	Progress  views.ProgressCmd    `cmd:"" help:"Show consistency, task stats and badges."`
	Calendar  views.CalendarCmd    `cmd:"" help:"Show a month calendar of activity."`
	Habit     habits.HabitCmd      `cmd:"" help:"Manage habits."`
	Todo      todos.TodoCmd        `cmd:"" help:"Manage todos and subtasks."`
	Journal   journal.JournalCmd   `cmd:"" help:"Manage journal entries."`
	Health    health.HealthCmd     `cmd:"" help:"Manage daily health logs."`
	News      news.NewsCmd         `cmd:"" help:"Show AI-curated news."`
	Backup    backups.BackupCmd    `cmd:"" help:"Export, import and snapshot data."`
	Settings  settings.SettingsCmd `cmd:"" help:"Manage reminder preferences."`
	Remind    struct {
		Run   system.RemindRunCmd   `cmd:"" help:"Run the daily reminder until interrupted."`
		Check system.RemindCheckCmd `cmd:"" help:"Check the daily reminder once."`
	} `cmd:"" help:"Daily reminder notifications."`
	Secret struct {
		SetAPIKey        system.SecretSetAPIKeyCmd        `cmd:"" name:"set-api-key" help:"Store the AI API key in the OS keyring."`
		DeleteAPIKey     system.SecretDeleteAPIKeyCmd     `cmd:"" name:"delete-api-key" help:"Remove the AI API key from the OS keyring."`
		SetConnection    system.SecretSetConnectionCmd    `cmd:"" name:"set-connection" help:"Store a PostgreSQL connection string in the OS keyring."`
		DeleteConnection system.SecretDeleteConnectionCmd `cmd:"" name:"delete-connection" help:"Remove the PostgreSQL connection string from the OS keyring."`
		Status           system.SecretStatusCmd           `cmd:"" help:"Show keyring and API key status."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

// Commands that load the store themselves, or never touch it
var noLoad = map[string]bool{"init": true, "secret": true, "doctor": true}

// Commands that apply data migrations themselves
var noAutoMigrate = map[string]bool{"migrate": true}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description(constants.AppDescription),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": config.DefaultPath(),
		},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Store = CLI.Store
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	store, err := cli.OpenStore(cfg.Store)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cli.ConfigDir(store)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx, err := cli.NewContext(store, cfg, cli.Options{})
	if err != nil {
		errors.Fatal(err)
	}

	command := strings.Fields(ctx.Command())[0]
	if !noLoad[command] {
		if err := store.Load(); err != nil {
			if stderrors.Is(err, storage.ErrNotInitialized) {
				errors.Fatalf("no girassol store at %s, run 'girassol init' first", store.GetConfigPath())
			}
			errors.Fatal(err)
		}
		if !noAutoMigrate[command] {
			if _, err := appCtx.Migrator.Run(); err != nil {
				errors.Fatal(err)
			}
		}
	}

	err = ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	errors.Fatal(err)
}
