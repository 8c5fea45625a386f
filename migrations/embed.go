// Package migrations embeds the SQL schema of the moderation audit store.
package migrations

import "embed"

// FS holds the *.up.sql / *.down.sql pairs applied by database.ApplyMigrations.
//
//go:embed *.sql
var FS embed.FS
