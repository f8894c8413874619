package system

import (
	"fmt"

	"github.com/julianstephens/girassol/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if sm, ok := ctx.Store.(cli.SchemaMigrator); ok {
		count, err := sm.Migrate(func(msg string) {
			fmt.Fprintln(ctx.Out, msg)
		})
		if err != nil {
			return fmt.Errorf("schema migration failed: %w", err)
		}
		if count == 0 {
			fmt.Fprintln(ctx.Out, "No schema migrations to apply. Database is up to date.")
		} else {
			fmt.Fprintf(ctx.Out, "Applied %d schema migration(s).\n", count)
		}
	}

	res, err := ctx.Migrator.Run()
	if err != nil {
		return err
	}
	if len(res.Applied) == 0 {
		fmt.Fprintf(ctx.Out, "No data migrations to apply (version %d).\n", res.To)
		return nil
	}
	for _, name := range res.Applied {
		fmt.Fprintf(ctx.Out, "✓ Applied data migration: %s\n", name)
	}
	fmt.Fprintf(ctx.Out, "Data version: %d -> %d\n", res.From, res.To)
	return nil
}
