package recordstore

import (
	"slices"
	"time"
)

/***** BookRecord *****/

// BookRecord is the persisted shape of a book.
// An empty CurrentBorrower and a zero DueAt map to NULL columns.
type BookRecord struct {
	BookID          string
	Title           string
	Author          string
	Category        string
	Reserved        bool
	CurrentBorrower string
	DueAt           time.Time
	Extensions      int
	Version         VersionUint
	CreatedAt       time.Time
}

// HasDueDate reports whether DueAt is set.
func (r BookRecord) HasDueDate() bool {
	return !r.DueAt.IsZero()
}

// BuildBookRecord is the constructor for new, not yet persisted, book records.
func BuildBookRecord(bookID, title, author, category string) BookRecord {
	return BookRecord{
		BookID:   bookID,
		Title:    title,
		Author:   author,
		Category: category,
	}
}

type BookRecords = []BookRecord

/***** BorrowerRecord *****/

// BorrowerRecord is the persisted shape of a borrower.
// BorrowedBooks is stored as a JSON array, its order carries no meaning.
type BorrowerRecord struct {
	BorrowerID    string
	Name          string
	Role          string
	BorrowedBooks []string
	Version       VersionUint
	CreatedAt     time.Time
}

// BuildBorrowerRecord is the constructor for new, not yet persisted, borrower records.
func BuildBorrowerRecord(borrowerID, name, role string) BorrowerRecord {
	return BorrowerRecord{
		BorrowerID:    borrowerID,
		Name:          name,
		Role:          role,
		BorrowedBooks: []string{},
	}
}

// Clone returns a copy that shares no backing array with r.
func (r BorrowerRecord) Clone() BorrowerRecord {
	c := r
	c.BorrowedBooks = slices.Clone(r.BorrowedBooks)
	if c.BorrowedBooks == nil {
		c.BorrowedBooks = []string{}
	}

	return c
}
