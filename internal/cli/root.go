package cli

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/girassol/internal/ai"
	"github.com/julianstephens/girassol/internal/assistant"
	"github.com/julianstephens/girassol/internal/backup"
	"github.com/julianstephens/girassol/internal/calendar"
	"github.com/julianstephens/girassol/internal/config"
	"github.com/julianstephens/girassol/internal/keyring"
	"github.com/julianstephens/girassol/internal/kvstore"
	"github.com/julianstephens/girassol/internal/logger"
	"github.com/julianstephens/girassol/internal/schema"
	"github.com/julianstephens/girassol/internal/storage"
	"github.com/julianstephens/girassol/internal/tracker"
	"github.com/julianstephens/girassol/internal/utils"
)

// Context is handed to every command's Run method
type Context struct {
	Store     storage.Provider
	KV        *kvstore.Store
	Tracker   *tracker.Service
	Calendar  *calendar.Engine
	Assistant *assistant.Assistant
	Codec     *backup.Codec
	Backups   *backup.Manager
	Migrator  *schema.Migrator
	Config    *config.Config
	KeySource keyring.Source
	AIEnabled bool

	Out io.Writer
	// Confirm asks a yes/no question. Tests replace it.
	Confirm func(title, description string) (bool, error)
}

// Options overrides the ambient pieces of a Context
type Options struct {
	Now       func() time.Time
	Out       io.Writer
	Generator ai.Generator
	APIKey    string
}

// NewContext wires the services around store
func NewContext(store storage.Provider, cfg *config.Config, opts Options) (*Context, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	cal := calendar.New(loc, now)
	kv := kvstore.New(store)
	svc := tracker.New(kv, cal)
	codec := backup.NewCodec(kv)
	backups := backup.NewManager(codec, ConfigDir(store), cfg.Backup.MaxBackups)
	backups.SetNowFunc(func() time.Time { return cal.Now() })

	gen := opts.Generator
	source := keyring.SourceNone
	if gen == nil {
		key := opts.APIKey
		if key == "" {
			key, source = keyring.ResolveAPIKey(cfg.AI.APIKeyEnv)
		}
		if key != "" {
			gen = ai.NewClient(ai.Config{
				APIKey:   key,
				Endpoint: cfg.AI.Endpoint,
				Model:    cfg.AI.Model,
				Client:   &http.Client{Timeout: aiTimeout},
			})
		}
	}
	if gen == nil {
		logger.Debug("No AI API key configured; AI features disabled")
	}

	return &Context{
		Store:     store,
		KV:        kv,
		Tracker:   svc,
		Calendar:  cal,
		Assistant: assistant.New(svc, ai.NewTasks(gen, cfg.AI.Language)),
		Codec:     codec,
		Backups:   backups,
		Migrator:  schema.NewMigrator(kv, cal),
		Config:    cfg,
		KeySource: source,
		AIEnabled: gen != nil,
		Out:       out,
		Confirm:   confirm,
	}, nil
}

// ConfigDir is the directory holding logs and backups for store. Remote
// stores keep them in the default config directory.
func ConfigDir(store storage.Provider) string {
	path := store.GetConfigPath()
	if path == "" || path == ":memory:" || IsPostgres(path) {
		dir, err := config.ExpandPath(defaultConfigDir)
		if err != nil {
			return defaultConfigDir
		}
		return dir
	}
	return filepath.Dir(path)
}

// PerformAutomaticBackup snapshots the data and only logs on failure
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}
