package searchbooks

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// RecordStore defines the interface needed by the QueryHandler.
type RecordStore interface {
	FindBooks(ctx context.Context, criteria recordstore.BookCriteria) (recordstore.BookRecords, error)
}

// QueryHandler finds books in the catalogue.
type QueryHandler struct {
	recordStore RecordStore
}

// NewQueryHandler creates a new QueryHandler with the provided RecordStore dependency.
func NewQueryHandler(recordStore RecordStore) QueryHandler {
	return QueryHandler{
		recordStore: recordStore,
	}
}

// Handle executes the workflow Find -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Books, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	records, err := h.recordStore.FindBooks(ctx, query.Criteria())
	if err != nil {
		return Books{}, err
	}

	return Project(records), nil
}

// Project maps book records to catalogue views, keeping their order.
func Project(records recordstore.BookRecords) Books {
	books := make([]BookView, 0, len(records))
	for _, record := range records {
		books = append(books, BookView{
			BookID:    record.BookID,
			Title:     record.Title,
			Author:    record.Author,
			Category:  record.Category,
			Available: !record.Reserved,
			Due:       record.DueAt,
		})
	}

	return Books{
		Books: books,
		Count: len(books),
	}
}
