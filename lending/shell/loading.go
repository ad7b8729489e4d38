package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// GetsBook is the read side every book-related slice needs.
type GetsBook interface {
	GetBook(ctx context.Context, bookID string) (recordstore.BookRecord, error)
}

// GetsBorrower is the read side every borrower-related slice needs.
type GetsBorrower interface {
	GetBorrower(ctx context.Context, borrowerID string) (recordstore.BorrowerRecord, error)
}

// LoadBook reads a book and maps it to the domain. The record is returned too, its version is the save expectation.
// A missing record is reported as core.ErrBookNotFound.
func LoadBook(ctx context.Context, store GetsBook, bookID string) (core.Book, recordstore.BookRecord, error) {
	record, err := store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, recordstore.ErrRecordNotFound) {
			return core.Book{}, recordstore.BookRecord{}, errors.Join(core.ErrBookNotFound, err)
		}

		return core.Book{}, recordstore.BookRecord{}, err
	}

	book, err := BookFromRecord(record)
	if err != nil {
		return core.Book{}, recordstore.BookRecord{}, err
	}

	return book, record, nil
}

// LoadBorrower reads a borrower and maps it to the domain.
// A missing record is reported as core.ErrBorrowerNotFound.
func LoadBorrower(ctx context.Context, store GetsBorrower, borrowerID string) (core.Borrower, recordstore.BorrowerRecord, error) {
	record, err := store.GetBorrower(ctx, borrowerID)
	if err != nil {
		if errors.Is(err, recordstore.ErrRecordNotFound) {
			return core.Borrower{}, recordstore.BorrowerRecord{}, errors.Join(core.ErrBorrowerNotFound, err)
		}

		return core.Borrower{}, recordstore.BorrowerRecord{}, err
	}

	borrower, err := BorrowerFromRecord(record)
	if err != nil {
		return core.Borrower{}, recordstore.BorrowerRecord{}, err
	}

	return borrower, record, nil
}

// ResultFor builds the HandlerResult matching a handler's final error.
func ResultFor(retryMetrics RetryMetrics, idempotent bool, err error) HandlerResult {
	switch {
	case err == nil && idempotent:
		return NewIdempotentResult(retryMetrics)
	case err == nil:
		return NewSuccessResult(retryMetrics)
	case core.IsPolicyDenial(err):
		return NewDeniedResult(retryMetrics)
	default:
		return NewErrorResult(retryMetrics)
	}
}
