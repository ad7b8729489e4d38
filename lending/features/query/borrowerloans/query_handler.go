package borrowerloans

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// RecordStore defines the interface needed by the QueryHandler.
type RecordStore interface {
	shell.GetsBorrower
	GetBooks(ctx context.Context, bookIDs []string) (recordstore.BookRecords, error)
}

// QueryHandler orchestrates the workflow Read -> Project.
type QueryHandler struct {
	recordStore RecordStore
}

// NewQueryHandler creates a new QueryHandler with the provided RecordStore dependency.
func NewQueryHandler(recordStore RecordStore) QueryHandler {
	return QueryHandler{
		recordStore: recordStore,
	}
}

// Handle reads the borrower and the books they hold and projects the loan view.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BorrowerLoans, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	borrower, _, err := shell.LoadBorrower(ctx, h.recordStore, query.BorrowerID.String())
	if err != nil {
		return BorrowerLoans{}, err
	}

	records, err := h.recordStore.GetBooks(ctx, borrower.BorrowedBooks)
	if err != nil {
		return BorrowerLoans{}, err
	}

	books := make([]core.Book, 0, len(records))
	for _, record := range records {
		book, mapErr := shell.BookFromRecord(record)
		if mapErr != nil {
			return BorrowerLoans{}, mapErr
		}

		books = append(books, book)
	}

	return ProjectBorrowerLoans(borrower, books, query.AsOf), nil
}
