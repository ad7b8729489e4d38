package shell

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// ErrMappingRecordFailed is returned when a stored record holds a value the domain does not accept.
var ErrMappingRecordFailed = errors.New("mapping record to domain failed")

// BookFromRecord converts a persisted book into the domain value.
func BookFromRecord(record recordstore.BookRecord) (core.Book, error) {
	category, err := core.ParseCategory(record.Category)
	if err != nil {
		return core.Book{}, errors.Join(ErrMappingRecordFailed, fmt.Errorf("book %s has category %q", record.BookID, record.Category))
	}

	return core.Book{
		ID:              record.BookID,
		Title:           record.Title,
		Author:          record.Author,
		Category:        category,
		Reserved:        record.Reserved,
		CurrentBorrower: record.CurrentBorrower,
		Due:             record.DueAt,
		Extensions:      record.Extensions,
	}, nil
}

// BookRecordFrom applies the lending state of book to base.
// The version of base is kept, so saving the result expects base to be unchanged in the store.
func BookRecordFrom(book core.Book, base recordstore.BookRecord) recordstore.BookRecord {
	record := base
	record.BookID = book.ID
	record.Title = book.Title
	record.Author = book.Author
	record.Category = book.Category.String()
	record.Reserved = book.Reserved
	record.CurrentBorrower = book.CurrentBorrower
	record.DueAt = book.Due
	record.Extensions = book.Extensions

	return record
}

// NewBookRecord converts a freshly built book into a record that was never persisted.
func NewBookRecord(book core.Book) recordstore.BookRecord {
	return recordstore.BuildBookRecord(book.ID, book.Title, book.Author, book.Category.String())
}

// BorrowerFromRecord converts a persisted borrower into the domain value.
func BorrowerFromRecord(record recordstore.BorrowerRecord) (core.Borrower, error) {
	role, err := core.ParseRole(record.Role)
	if err != nil {
		return core.Borrower{}, errors.Join(ErrMappingRecordFailed, fmt.Errorf("borrower %s has role %q", record.BorrowerID, record.Role))
	}

	return core.Borrower{
		ID:            record.BorrowerID,
		Name:          record.Name,
		Role:          role,
		BorrowedBooks: record.Clone().BorrowedBooks,
	}, nil
}

// BorrowerRecordFrom applies the borrowed set of borrower to base, keeping the version of base.
func BorrowerRecordFrom(borrower core.Borrower, base recordstore.BorrowerRecord) recordstore.BorrowerRecord {
	record := base.Clone()
	record.BorrowerID = borrower.ID
	record.Name = borrower.Name
	record.Role = borrower.Role.String()
	record.BorrowedBooks = append([]string{}, borrower.BorrowedBooks...)

	return record
}

// NewBorrowerRecord converts a freshly built borrower into a record that was never persisted.
func NewBorrowerRecord(borrower core.Borrower) recordstore.BorrowerRecord {
	return recordstore.BuildBorrowerRecord(borrower.ID, borrower.Name, borrower.Role.String())
}
