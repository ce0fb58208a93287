// Package migrations embeds the versioned PostgreSQL schema.
package migrations

import "embed"

// FS holds the numbered .up.sql and .down.sql files
//
//go:embed *.sql
var FS embed.FS
