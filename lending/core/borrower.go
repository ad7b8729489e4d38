package core

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Borrower is a library member with the set of books they currently hold.
// BorrowedBooks holds unique ids; order carries no meaning.
type Borrower struct {
	ID            BorrowerIDString
	Name          string
	Role          Role
	BorrowedBooks []BookIDString
}

// NewBorrower validates the input and builds a borrower holding no books.
// All failing fields are reported, joined.
func NewBorrower(borrowerID uuid.UUID, name, role string) (Borrower, error) {
	name = strings.TrimSpace(name)

	var errs []error

	if name == "" {
		errs = append(errs, ErrMissingName)
	}

	parsedRole, err := ParseRole(strings.TrimSpace(role))
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Borrower{}, errors.Join(errs...)
	}

	return Borrower{
		ID:            borrowerID.String(),
		Name:          name,
		Role:          parsedRole,
		BorrowedBooks: []BookIDString{},
	}, nil
}

// CanBorrow reports whether the borrower is below their borrow limit.
func (b Borrower) CanBorrow() bool {
	return len(b.BorrowedBooks) < BorrowLimit(b.Role)
}

// HasBorrowed reports whether bookID is in the borrowed set.
func (b Borrower) HasBorrowed(bookID BookIDString) bool {
	return slices.Contains(b.BorrowedBooks, bookID)
}

// AddLoan adds bookID to the borrowed set. Adding a held id changes nothing.
func (b Borrower) AddLoan(bookID BookIDString) Borrower {
	if b.HasBorrowed(bookID) {
		return b
	}

	b.BorrowedBooks = append(slices.Clone(b.BorrowedBooks), bookID)

	return b
}

// RemoveLoan removes bookID from the borrowed set.
func (b Borrower) RemoveLoan(bookID BookIDString) (Borrower, error) {
	idx := slices.Index(b.BorrowedBooks, bookID)
	if idx < 0 {
		return b, ErrNotBorrowed
	}

	b.BorrowedBooks = slices.Delete(slices.Clone(b.BorrowedBooks), idx, idx+1)

	return b, nil
}
