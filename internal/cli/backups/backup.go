package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/girassol/internal/backup"
	"github.com/julianstephens/girassol/internal/cli"
)

type BackupCmd struct {
	Export  BackupExportCmd  `cmd:"" help:"Export all data as a JSON document."`
	Import  BackupImportCmd  `cmd:"" help:"Import a JSON document exported by girassol."`
	Clear   BackupClearCmd   `cmd:"" help:"Delete all tracked data."`
	Create  BackupCreateCmd  `cmd:"" help:"Create a snapshot in the backup directory."`
	List    BackupListCmd    `cmd:"" help:"List available snapshots."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a snapshot or exported file."`
}

type BackupExportCmd struct {
	Output string `short:"o" help:"Output file. Defaults to girassol_backup_<date>.json; '-' writes to stdout." default:""`
}

func (c *BackupExportCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Codec.ExportAll()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if c.Output == "-" {
		_, err := ctx.Out.Write(append(data, '\n'))
		return err
	}
	path := c.Output
	if path == "" {
		path = backup.ExportFileName(ctx.Calendar.Today())
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(ctx.Out, "✓ Exported data to %s\n", path)
	return nil
}

type BackupImportCmd struct {
	File string `arg:"" type:"existingfile" help:"Exported JSON document."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	if _, err := backup.Parse(data); err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm("Import backup?", "Collections in the file replace the current ones.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.Out, "Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	n, err := ctx.Codec.Import(data)
	if err != nil {
		if n > 0 {
			return fmt.Errorf("imported %d collection(s) with errors: %w", n, err)
		}
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Imported %d collection(s) from %s\n", n, filepath.Base(c.File))
	return nil
}

type BackupClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Delete all data?", "Habits, todos, journal, health logs and cached news will be removed. A snapshot is taken first.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.Out, "Clear cancelled.")
			return nil
		}
	}

	path, err := ctx.Backups.CreateBackup()
	if err != nil {
		return fmt.Errorf("failed to snapshot data before clearing: %w", err)
	}
	ctx.Codec.ClearAll()
	fmt.Fprintln(ctx.Out, "✓ All data cleared")
	fmt.Fprintf(ctx.Out, "  Snapshot saved as %s\n", filepath.Base(path))
	return nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	path, err := ctx.Backups.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Fprintf(ctx.Out, "✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(ctx.Out, "No backups found.")
		fmt.Fprintf(ctx.Out, "Backups are stored in: %s\n", ctx.Backups.GetBackupDir())
		return nil
	}

	fmt.Fprintf(ctx.Out, "Available backups (%d total, keeping most recent %d):\n\n", len(list), ctx.Config.Backup.MaxBackups)
	for _, b := range list {
		sizeKB := float64(b.Size) / 1024.0
		fmt.Fprintf(ctx.Out, "  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04"), filepath.Base(b.Path), sizeKB)
	}
	fmt.Fprintf(ctx.Out, "\nBackup directory: %s\n", ctx.Backups.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	path, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	if err := backup.VerifyBackup(path); err != nil {
		return err
	}

	if !c.Yes {
		fmt.Fprintln(ctx.Out, "⚠️  WARNING: This will replace your current data with the backup.")
		fmt.Fprintln(ctx.Out, "A snapshot of your current data will be created before restoring.")
		ok, err := ctx.Confirm("Restore from "+filepath.Base(path)+"?", path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.Out, "Restore cancelled.")
			return nil
		}
	}

	safety, err := ctx.Backups.RestoreBackup(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	fmt.Fprintln(ctx.Out, "✓ Data restored successfully!")
	fmt.Fprintf(ctx.Out, "  Previous data saved as %s\n", filepath.Base(safety))
	return nil
}

// resolve accepts an absolute path, a path relative to the working
// directory, or a file name inside the backup directory
func (c *BackupRestoreCmd) resolve(ctx *cli.Context) (string, error) {
	if filepath.IsAbs(c.BackupFile) {
		if _, err := os.Stat(c.BackupFile); err != nil {
			return "", fmt.Errorf("backup file not found: %s", c.BackupFile)
		}
		return c.BackupFile, nil
	}
	if _, err := os.Stat(c.BackupFile); err == nil {
		abs, err := filepath.Abs(c.BackupFile)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(ctx.Backups.GetBackupDir(), c.BackupFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", ctx.Backups.GetBackupDir())
}
