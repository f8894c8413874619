package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/logger"
)

// Info describes one snapshot file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager keeps timestamped snapshots of the backup document next to the store
type Manager struct {
	codec      *Codec
	backupDir  string
	maxBackups int
	now        func() time.Time
}

// NewManager keeps snapshots in <configDir>/backups. maxBackups <= 0 uses the default.
func NewManager(codec *Codec, configDir string, maxBackups int) *Manager {
	if maxBackups <= 0 {
		maxBackups = constants.MaxBackups
	}
	return &Manager{
		codec:      codec,
		backupDir:  filepath.Join(configDir, constants.BackupDirName),
		maxBackups: maxBackups,
		now:        time.Now,
	}
}

// SetNowFunc overrides the clock used for snapshot names
func (m *Manager) SetNowFunc(now func() time.Time) {
	m.now = now
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// ExportFileName is the suggested name for a manual export taken on day
func ExportFileName(day string) string {
	return constants.ExportFilePrefix + day + ".json"
}

// CreateBackup snapshots the current data and prunes old snapshots
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := m.codec.ExportAll()
	if err != nil {
		return "", err
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return path, nil
}

// nextPath picks a free file name: minute precision, then seconds, then a counter
func (m *Manager) nextPath() (string, error) {
	now := m.now()
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}
	free := func(p string) bool {
		_, err := os.Stat(p)
		return os.IsNotExist(err)
	}

	if p := name(now.Format(constants.BackupTimestampLayout)); free(p) {
		return p, nil
	}
	stamp := now.Format("20060102-150405")
	if p := name(stamp); free(p) {
		return p, nil
	}
	for i := 1; i <= 100; i++ {
		if p := name(fmt.Sprintf("%s-%d", stamp, i)); free(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

// parseStamp reads the timestamp out of a snapshot name, ignoring a trailing counter
func parseStamp(name string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err == nil {
			stamp = parts[0] + "-" + parts[1]
		}
	}
	for _, layout := range []string{constants.BackupTimestampLayout, "20060102-150405"} {
		if t, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ListBackups returns every snapshot, newest first
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}
		ts, ok := parseStamp(name)
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup validates the snapshot at path, snapshots the current data,
// then imports. It returns the path of the safety snapshot.
func (m *Manager) RestoreBackup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read backup %s: %w", path, err)
	}
	if _, err := Parse(data); err != nil {
		return "", err
	}

	safety, err := m.createBackup(true)
	if err != nil {
		return "", fmt.Errorf("failed to back up current data before restore: %w", err)
	}

	if _, err := m.codec.Import(data); err != nil {
		return safety, fmt.Errorf("failed to restore backup: %w", err)
	}
	return safety, nil
}

// VerifyBackup checks that the file at path is an importable document
func VerifyBackup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = Parse(data)
	return err
}
