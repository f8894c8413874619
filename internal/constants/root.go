package constants

import "time"

const (
	AppName            = "girassol"
	AppDescription     = "A personal tracker for habits, todos, journal entries and daily health logs."
	Version            = "v0.1.0"
	DefaultKeyringUser = "database-connection"
	DefaultAPIKeyUser  = "gemini-api-key"
	DefaultConfigDir   = "~/.config/girassol"
	DefaultConfigPath  = "~/.config/girassol/girassol.db"
	DefaultConfigFile  = "config.yaml"

	// Backup constants
	MaxBackups             = 14
	BackupDirName          = "backups"
	BackupFilePrefix       = "girassol-"
	BackupFileSuffix       = ".json"
	BackupTimestampLayout  = "20060102-1504"
	ExportFilePrefix       = "girassol_backup_"
	ExportIndent           = "  "
	DefaultHealthTrendSize = 14

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "girassol-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.girassol"

	// Reminder constants
	DefaultReminderInterval           = 30 * time.Second
	DefaultNotificationTime           = "20:00"
	DefaultNotificationGracePeriodMin = 10
	ReminderTitle                     = "Girassol"
	ReminderBody                      = "Time to check in: mark your habits and log your day."

	// AI constants
	DefaultAIEndpoint  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultAIModel     = "gemini-3-flash-preview"
	DefaultAIAPIKeyEnv = "GEMINI_API_KEY"
	FallbackAPIKeyEnv  = "API_KEY"
	DefaultAILanguage  = "English"
	DefaultAITimeout   = 60 * time.Second

	DefaultTimezone = "Local"
)
