// Package postgresengine provides a PostgreSQL implementation of the record store.
//
// Key features:
//   - pgx.Pool, sql.DB (lib/pq) and sqlx.DB adapters
//   - optional read replica for eventually consistent reads (pgx only)
//   - versioned updates with concurrency conflict detection
//   - both sides of a loan written in one transaction
//   - insert-if-absent backed by unique constraints on (title, author) and (name, role)
//   - optional logging, metrics and tracing
//
// Usage examples:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewRecordStoreFromPGXPool(
//		pool,
//		postgresengine.WithBooksTableName("books"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//	_ = store.EnsureSchema(ctx)
//
//	book, created, _ := store.InsertBookIfAbsent(ctx, recordstore.BuildBookRecord(id, "Dune", "Herbert", "general"))
//	err := store.UpdateLoan(ctx, reservedBook, borrowerWithLoan)
//	if errors.Is(err, recordstore.ErrConcurrencyConflict) {
//		// re-read both records, decide again, retry
//	}
package postgresengine
