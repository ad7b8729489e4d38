package service

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// Repository is the record store the service runs on.
// It is implemented by postgresengine.RecordStore and memengine.RecordStore.
type Repository interface {
	GetBook(ctx context.Context, bookID string) (recordstore.BookRecord, error)
	GetBooks(ctx context.Context, bookIDs []string) (recordstore.BookRecords, error)
	FindBooks(ctx context.Context, criteria recordstore.BookCriteria) (recordstore.BookRecords, error)
	GetBorrower(ctx context.Context, borrowerID string) (recordstore.BorrowerRecord, error)
	InsertBookIfAbsent(ctx context.Context, book recordstore.BookRecord) (recordstore.BookRecord, bool, error)
	InsertBorrowerIfAbsent(ctx context.Context, borrower recordstore.BorrowerRecord) (recordstore.BorrowerRecord, bool, error)
	UpdateBook(ctx context.Context, book recordstore.BookRecord) error
	UpdateLoan(ctx context.Context, book recordstore.BookRecord, borrower recordstore.BorrowerRecord) error
}
