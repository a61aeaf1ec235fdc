// Package migrations embeds the goose schema for the client's local
// database (credentials plus the offline query cache).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
