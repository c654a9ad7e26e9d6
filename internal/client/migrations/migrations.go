// Package migrations embeds the goose migrations of the local client
// database (local storage and activity log).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
