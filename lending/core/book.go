package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Book is the lending state of one book.
//
// Invariant: Reserved == (CurrentBorrower != "") == HasDue().
// Extensions counts consecutive extensions since the last reserve and is reset by Reserve and Release.
type Book struct {
	ID              BookIDString
	Title           string
	Author          string
	Category        Category
	Reserved        bool
	CurrentBorrower BorrowerIDString
	Due             time.Time
	Extensions      int
}

// NewBook validates the input and builds an unreserved book.
// All failing fields are reported, joined.
func NewBook(bookID uuid.UUID, title, author, category string) (Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	var errs []error

	if title == "" {
		errs = append(errs, ErrMissingTitle)
	}

	if author == "" {
		errs = append(errs, ErrMissingAuthor)
	}

	parsedCategory, err := ParseCategory(strings.TrimSpace(category))
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Book{}, errors.Join(errs...)
	}

	return Book{
		ID:       bookID.String(),
		Title:    title,
		Author:   author,
		Category: parsedCategory,
	}, nil
}

// HasDue reports whether a due date is set.
func (b Book) HasDue() bool {
	return !b.Due.IsZero()
}

// IsLentTo reports whether the book is currently reserved by the given borrower.
func (b Book) IsLentTo(borrowerID BorrowerIDString) bool {
	return b.Reserved && b.CurrentBorrower == borrowerID
}

// Reserve lends the book to borrowerID, due LoanDuration(role) from now.
func (b Book) Reserve(borrowerID BorrowerIDString, role Role, now time.Time) (Book, error) {
	if b.Reserved {
		return b, ErrAlreadyReserved
	}

	if IsRestrictedCategory(b.Category) && role != RoleFaculty {
		return b, ErrCategoryRestricted
	}

	b.Reserved = true
	b.CurrentBorrower = borrowerID
	b.Due = now.Add(LoanDuration(role))
	b.Extensions = 0

	return b, nil
}

// Extend pushes the due date by ExtensionDuration(category).
// Checks run in order: extension limit, reservation, overdue.
func (b Book) Extend(role Role, now time.Time) (Book, error) {
	if b.Extensions >= ExtensionLimit(role) {
		return b, ErrExtensionLimitReached
	}

	if !b.HasDue() {
		return b, ErrNotReserved
	}

	if now.After(b.Due) {
		return b, ErrOverdue
	}

	b.Due = b.Due.Add(ExtensionDuration(b.Category))
	b.Extensions++

	return b, nil
}

// Release clears the reservation. Releasing an unreserved book is a no-op.
func (b Book) Release() Book {
	b.Reserved = false
	b.CurrentBorrower = ""
	b.Due = time.Time{}
	b.Extensions = 0

	return b
}

// Fine is the fine owed for this book as of now; zero when the book has no due date.
func (b Book) Fine(now time.Time) Fine {
	if !b.HasDue() {
		return Fine{BookID: b.ID}
	}

	return Fine{
		BookID:      b.ID,
		Due:         b.Due,
		OverdueDays: OverdueDays(b.Due, now),
		Amount:      ComputeFine(b.Due, now),
	}
}
