// Package schema is the single table of persisted keys and the ordered list
// of data migrations run against them at start-up.
package schema

import "github.com/julianstephens/girassol/internal/kvstore"

const (
	Habits     kvstore.Key = "habits"
	Todos      kvstore.Key = "todos"
	Journal    kvstore.Key = "journal"
	HealthLogs kvstore.Key = "health_logs"
	NewsCache  kvstore.Key = "news_cache"

	// LegacyWeight holds pre-health-log weight records. Read only by migrations.
	LegacyWeight kvstore.Key = "weight"

	Preferences       kvstore.Key = "preferences"
	SchemaVersion     kvstore.Key = "schema_version"
	ReminderLastFired kvstore.Key = "reminder_last_fired"
)

// Collection describes one persisted key
type Collection struct {
	Key         kvstore.Key
	Description string
	Backup      bool // exported, imported and cleared as part of a backup
	Disposable  bool // cache; safe to lose
	Legacy      bool // migration source only
}

var registry = []Collection{
	{Key: Habits, Description: "habits and their completion dates", Backup: true},
	{Key: Todos, Description: "todos with subtasks", Backup: true},
	{Key: Journal, Description: "journal entries, newest first", Backup: true},
	{Key: HealthLogs, Description: "daily health logs, oldest first", Backup: true},
	{Key: NewsCache, Description: "last fetched news", Backup: true, Disposable: true},
	{Key: LegacyWeight, Description: "legacy weight log", Legacy: true},
	{Key: Preferences, Description: "reminder preferences"},
	{Key: SchemaVersion, Description: "applied data migration version"},
	{Key: ReminderLastFired, Description: "date of the last delivered reminder"},
}

// Collections returns every registered key in registry order
func Collections() []Collection {
	out := make([]Collection, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a registered key by name
func Lookup(name string) (Collection, bool) {
	for _, c := range registry {
		if string(c.Key) == name {
			return c, true
		}
	}
	return Collection{}, false
}

// BackupKeys returns the keys that make up a backup document, in registry order
func BackupKeys() []kvstore.Key {
	var keys []kvstore.Key
	for _, c := range registry {
		if c.Backup {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// IsBackupKey reports whether name belongs to the backup set
func IsBackupKey(name string) bool {
	c, ok := Lookup(name)
	return ok && c.Backup
}
