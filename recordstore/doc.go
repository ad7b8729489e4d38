// Package recordstore provides the storage abstractions for the library lending module.
//
// It defines the persisted record shapes for books and borrowers, a small criteria
// builder for catalog searches, sentinel errors shared by all engines, consistency
// levels carried in the context, and dependency-free observability interfaces.
//
// Engines:
//   - postgresengine: PostgreSQL via pgx, database/sql or sqlx, SQL built with goqu
//   - memengine: in-process maps guarded by a mutex
//
// Every record carries a Version. Updates are conditional on the version that was
// read; when another writer got there first the update fails with ErrConcurrencyConflict
// and the caller re-reads, re-decides and retries.
//
// Common usage pattern:
//
//	ctx = recordstore.WithStrongConsistency(ctx)
//	book, err := store.GetBook(ctx, bookID)
//	if err != nil {
//		// handle error (errors.Is(err, recordstore.ErrRecordNotFound))
//	}
//
//	book.Extensions++
//	err = store.UpdateBook(ctx, book) // conditional on book.Version
//
//	criteria := recordstore.BuildBookCriteria().WithAuthor("Herbert").Finalize()
//	books, err := store.FindBooks(ctx, criteria)
package recordstore
