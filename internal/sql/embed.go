// Package sql holds the embedded schema migrations and queries.
package sql

import (
	"embed"
)

// Migrations contains the schema migration files, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
