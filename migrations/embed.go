// Package migrations embeds SQL migration files applied at startup.
package migrations

import "embed"

// FS holds the goose migration scripts.
//
//go:embed *.sql
var FS embed.FS
