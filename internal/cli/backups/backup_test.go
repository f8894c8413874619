package backups

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/girassol/internal/cli/clitest"
	"github.com/julianstephens/girassol/internal/errors"
	"github.com/julianstephens/girassol/internal/models"
)

func TestExportClearImport(t *testing.T) {
	ctx, out := clitest.New(t)
	if _, err := ctx.Tracker.AddHabit("Read"); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Tracker.AddTodo("Ship", models.PriorityHigh); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "export.json")
	if err := (&BackupExportCmd{Output: path}).Run(ctx); err != nil {
		t.Fatalf("backup export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not a JSON object: %v", err)
	}
	if len(doc) != 5 {
		t.Errorf("export has %d keys, want 5", len(doc))
	}

	if err := (&BackupClearCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup clear failed: %v", err)
	}
	if len(ctx.Tracker.Habits()) != 0 || len(ctx.Tracker.Todos()) != 0 {
		t.Fatal("clear left data behind")
	}
	if list, _ := ctx.Backups.ListBackups(); len(list) != 1 {
		t.Errorf("clear should snapshot first, got %d snapshots", len(list))
	}

	out.Reset()
	if err := (&BackupImportCmd{File: path, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("backup import failed: %v", err)
	}
	if len(ctx.Tracker.Habits()) != 1 || len(ctx.Tracker.Todos()) != 1 {
		t.Error("import did not restore data")
	}
	if !strings.Contains(out.String(), "Imported 5 collection(s)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestExportDefaultFileName(t *testing.T) {
	ctx, _ := clitest.New(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if err := (&BackupExportCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup export failed: %v", err)
	}
	if _, err := os.Stat("girassol_backup_2025-06-15.json"); err != nil {
		t.Errorf("default export file missing: %v", err)
	}
}

func TestExportToStdout(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&BackupExportCmd{Output: "-"}).Run(ctx); err != nil {
		t.Fatalf("backup export failed: %v", err)
	}
	if !json.Valid(out.Bytes()) {
		t.Errorf("stdout export is not JSON: %q", out.String())
	}
}

func TestImportRejectsInvalidFiles(t *testing.T) {
	ctx, _ := clitest.New(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "hello"},
		{name: "array", body: "[1,2]"},
		{name: "no recognized keys", body: `{"foo": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.body), 0600); err != nil {
				t.Fatal(err)
			}
			err := (&BackupImportCmd{File: path, Yes: true}).Run(ctx)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.UserMessage(err); got != errors.InvalidBackupMessage {
				t.Errorf("user message = %q, want %q", got, errors.InvalidBackupMessage)
			}
		})
	}
}

func TestImportCancelled(t *testing.T) {
	ctx, out := clitest.New(t)
	ctx.Confirm = func(string, string) (bool, error) { return false, nil }

	path := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(path, []byte(`{"habits":[{"id":"1","title":"Read","streak":0,"completedDates":[]}]}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupImportCmd{File: path}).Run(ctx); err != nil {
		t.Fatalf("backup import failed: %v", err)
	}
	if !strings.Contains(out.String(), "Import cancelled.") || len(ctx.Tracker.Habits()) != 0 {
		t.Errorf("cancelled import changed data: %q", out.String())
	}
}

func TestCreateListRestore(t *testing.T) {
	ctx, out := clitest.New(t)
	if _, err := ctx.Tracker.AddHabit("Read"); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	list, err := ctx.Backups.ListBackups()
	if err != nil || len(list) != 1 {
		t.Fatalf("ListBackups() = %v, %v", list, err)
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), filepath.Base(list[0].Path)) {
		t.Errorf("list output = %q", out.String())
	}

	if _, err := ctx.Tracker.DeleteHabit("Read"); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(list[0].Path), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}
	if len(ctx.Tracker.Habits()) != 1 {
		t.Error("restore did not bring the habit back")
	}

	if err := (&BackupRestoreCmd{BackupFile: "missing.json", Yes: true}).Run(ctx); err == nil {
		t.Error("restore of a missing file should fail")
	}
}
