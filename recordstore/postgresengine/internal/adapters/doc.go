// Package adapters provide database adapter implementations for the PostgreSQL record store.
//
// pgx.Pool, sql.DB and sqlx.DB are supported behind the common DBAdapter interface.
// Each adapter can also run a function inside a transaction, which the record store
// uses to write a book and a borrower as one unit.
package adapters
