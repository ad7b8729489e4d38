package checkfines

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// DefaultCurrency is the currency fines are reported in unless configured otherwise.
const DefaultCurrency = "TRY"

// RecordStore defines the interface needed by the QueryHandler.
type RecordStore interface {
	shell.GetsBorrower
	GetBooks(ctx context.Context, bookIDs []string) (recordstore.BookRecords, error)
}

// QueryHandler reads a borrower and their books and projects the fine report.
type QueryHandler struct {
	recordStore RecordStore
	currency    string
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithCurrency sets the currency label of the report.
func WithCurrency(currency string) Option {
	return func(h *QueryHandler) {
		if currency != "" {
			h.currency = currency
		}
	}
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(recordStore RecordStore, opts ...Option) QueryHandler {
	handler := QueryHandler{
		recordStore: recordStore,
		currency:    DefaultCurrency,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the workflow Read -> Project. Nothing is written.
func (h QueryHandler) Handle(ctx context.Context, query Query) (FineReport, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	borrower, _, err := shell.LoadBorrower(ctx, h.recordStore, query.BorrowerID.String())
	if err != nil {
		return FineReport{}, err
	}

	records, err := h.recordStore.GetBooks(ctx, borrower.BorrowedBooks)
	if err != nil {
		return FineReport{}, err
	}

	books := make([]core.Book, 0, len(records))
	for _, record := range records {
		book, mapErr := shell.BookFromRecord(record)
		if mapErr != nil {
			return FineReport{}, mapErr
		}

		books = append(books, book)
	}

	return ProjectFineReport(borrower, books, query.AsOf, h.currency), nil
}
