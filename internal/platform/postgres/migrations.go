package postgres

import "embed"

// MigrationsDir is the directory inside Migrations holding the goose files.
const MigrationsDir = "migrations"

// Migrations contains the goose SQL migrations for the schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS
