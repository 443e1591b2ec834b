// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles query execution, error translation, and data mapping between
// domain entities and database records. Queries are built with squirrel and
// executed through sqlx so every store runs unchanged on a pool or a transaction.
//
// The schema lives in the embedded migrations directory and is applied with goose.
package postgres
