// Package migrations embeds the SQL migration files so the binary is
// self-contained and can migrate any database it is pointed at.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
