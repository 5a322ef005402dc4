// Package migrations embeds the SQL schema of each slot repository backend.
package migrations

import "embed"

// FS holds one directory of ordered .sql files per backend: sqlite, postgres.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
