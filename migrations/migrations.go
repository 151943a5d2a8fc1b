// Package migrations embeds the SQL migrations so cmd/migrate works from any directory.
package migrations

import "embed"

// Postgres holds the postgres/*.sql migration files
//
//go:embed postgres/*.sql
var Postgres embed.FS
