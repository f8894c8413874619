// Package migrations embeds the SQL schema of the sqlite and postgres providers.
package migrations

import "embed"

// FS holds one directory per dialect, each with NNN_name.sql files
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
