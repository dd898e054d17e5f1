// Package db ships the SQL migrations that define the core schema.
package db

import "embed"

// Migrations holds the versioned up/down files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS
