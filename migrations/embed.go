// Package migrations embeds the SQL migration files so they can be run
// by goose at startup without shipping loose files alongside the binary.
package migrations

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
