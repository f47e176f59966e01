package migrations

import "embed"

// FS contains embedded SQLite migrations for exchange storage.
//
//go:embed *.sql
var FS embed.FS
