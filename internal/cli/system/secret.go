package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/girassol/internal/cli"
	"github.com/julianstephens/girassol/internal/keyring"
	"github.com/julianstephens/girassol/internal/storage/postgres"
)

// SecretSetAPIKeyCmd stores the AI API key in the OS keyring
type SecretSetAPIKeyCmd struct {
	Key string `arg:"" optional:"" help:"API key. Prompted for when omitted."`
}

func (cmd *SecretSetAPIKeyCmd) Run(ctx *cli.Context) error {
	key := strings.TrimSpace(cmd.Key)
	if key == "" {
		err := huh.NewInput().
			Title("AI API key").
			EchoMode(huh.EchoModePassword).
			Value(&key).
			Run()
		if err != nil {
			return err
		}
	}
	if err := keyring.SetAPIKey(strings.TrimSpace(key)); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "✓ API key stored successfully in OS keyring")
	return nil
}

type SecretDeleteAPIKeyCmd struct{}

func (cmd *SecretDeleteAPIKeyCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return fmt.Errorf("failed to delete API key from keyring: %w", err)
	}
	fmt.Fprintln(ctx.Out, "✓ API key deleted from OS keyring")
	return nil
}

// SecretSetConnectionCmd stores a PostgreSQL connection string in the OS keyring
type SecretSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *SecretSetConnectionCmd) Run(ctx *cli.Context) error {
	if !cli.IsPostgres(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		fmt.Fprintln(ctx.Out, "⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Fprintln(ctx.Out, "   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	fmt.Fprintln(ctx.Out, "✓ Connection string stored successfully in OS keyring")
	fmt.Fprintf(ctx.Out, "  Use it with --store=%s\n", cli.KeyringTarget)
	return nil
}

type SecretDeleteConnectionCmd struct{}

func (cmd *SecretDeleteConnectionCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	fmt.Fprintln(ctx.Out, "✓ Connection string deleted from OS keyring")
	return nil
}

// SecretStatusCmd reports keyring availability and where secrets come from
type SecretStatusCmd struct{}

func (cmd *SecretStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Fprintln(ctx.Out, "❌ OS keyring is not available on this system")
	} else {
		fmt.Fprintln(ctx.Out, "✓ OS keyring is available")
		if _, err := keyring.GetConnectionString(); err == nil {
			fmt.Fprintln(ctx.Out, "✓ Connection string is stored in keyring")
		} else if errors.Is(err, keyring.ErrNotFound) {
			fmt.Fprintln(ctx.Out, "ℹ No connection string stored in keyring")
		}
	}

	_, source := keyring.ResolveAPIKey(ctx.Config.AI.APIKeyEnv)
	switch source {
	case keyring.SourceEnv:
		fmt.Fprintln(ctx.Out, "✓ AI API key found in environment")
	case keyring.SourceKeyring:
		fmt.Fprintln(ctx.Out, "✓ AI API key found in keyring")
	default:
		fmt.Fprintln(ctx.Out, "ℹ No AI API key configured; AI features are disabled")
	}
	return nil
}
