// Package clitest builds command contexts over a throwaway SQLite store.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/girassol/internal/ai"
	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/config"
	"github.com/julianstephens/girassol/internal/storage/sqlite"
)

// Now is the fixed clock of every test context: Sunday 2025-06-15 09:30 UTC
var Now = time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

type Option func(*cli.Options, *config.Config)

// WithGenerator plugs in a fake AI backend
func WithGenerator(g ai.Generator) Option {
	return func(o *cli.Options, _ *config.Config) { o.Generator = g }
}

// WithNow overrides the clock
func WithNow(now func() time.Time) Option {
	return func(o *cli.Options, _ *config.Config) { o.Now = now }
}

// New returns an initialized context and the buffer commands print to.
// Confirmations answer yes.
func New(t *testing.T, opts ...Option) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	gokeyring.MockInit()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	cfg := config.Default()
	cfg.Timezone = "UTC"
	out := &bytes.Buffer{}
	o := cli.Options{Now: func() time.Time { return Now }, Out: out}
	for _, opt := range opts {
		opt(&o, cfg)
	}

	ctx, err := cli.NewContext(store, cfg, o)
	if err != nil {
		t.Fatalf("failed to build context: %v", err)
	}
	if _, err := ctx.Migrator.Run(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	ctx.Confirm = func(string, string) (bool, error) { return true, nil }
	return ctx, out
}

// Generator adapts a function to ai.Generator
type Generator func(req ai.Request) (ai.Response, error)

func (g Generator) Generate(_ context.Context, req ai.Request) (ai.Response, error) {
	return g(req)
}

// Reply is a Generator that always answers text
func Reply(text string) Generator {
	return func(ai.Request) (ai.Response, error) { return ai.Response{Text: text}, nil }
}

// Fail is a Generator that always errors
func Fail(err error) Generator {
	return func(ai.Request) (ai.Response, error) { return ai.Response{}, err }
}
