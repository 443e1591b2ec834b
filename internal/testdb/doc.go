// Package testdb provides utilities specifically for database integration tests.
//
// Tests obtain a migrated connection with GetTestDBWithT, which skips the test
// when no database URL is configured, and isolate their writes with WithTx,
// which always rolls back.
package testdb
