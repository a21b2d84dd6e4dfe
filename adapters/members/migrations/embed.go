// Package migrations embeds the SQL migrations for the members schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
