package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/girassol/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing local store before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force && !cli.IsPostgres(ctx.Store.GetConfigPath()) {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Fprintf(ctx.Out, "Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	// Fresh stores start at the latest data version
	res, err := ctx.Migrator.Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Initialized girassol storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Fprintf(ctx.Out, "Data version: %d\n", res.To)
	return nil
}
