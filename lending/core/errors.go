package core

import (
	"errors"
)

// Validation errors: the request is malformed and no record was touched.
var (
	ErrMissingTitle    = errors.New("title is required")
	ErrMissingAuthor   = errors.New("author is required")
	ErrMissingName     = errors.New("name is required")
	ErrUnknownCategory = errors.New("category must be one of textbook, periodical, general")
	ErrUnknownRole     = errors.New("role must be one of faculty, standard")
	ErrInvalidID       = errors.New("id is not a valid uuid")
)

// Not found errors.
var (
	ErrBookNotFound     = errors.New("book not found")
	ErrBorrowerNotFound = errors.New("borrower not found")
)

// Policy denials: business rule rejections, not faults.
var (
	ErrAlreadyReserved       = errors.New("book is already reserved")
	ErrCategoryRestricted    = errors.New("book category is restricted to faculty")
	ErrLimitReached          = errors.New("borrower has reached the borrow limit")
	ErrExtensionLimitReached = errors.New("extension limit reached")
	ErrOverdue               = errors.New("book is overdue")
	ErrNotReserved           = errors.New("book is not reserved")
	ErrNotBorrowedByUser     = errors.New("book is not borrowed by this borrower")
)

// ErrNotBorrowed is returned by Borrower.RemoveLoan for a book id that is not in the borrowed set.
var ErrNotBorrowed = errors.New("book id is not in the borrowed set")

// ErrLoanInconsistent means the two sides of a loan disagree: the borrower lists the book
// but the book is lent to someone else, or not lent at all. Nothing is changed.
var ErrLoanInconsistent = errors.New("loan records are inconsistent")

var policyDenials = []error{
	ErrAlreadyReserved,
	ErrCategoryRestricted,
	ErrLimitReached,
	ErrExtensionLimitReached,
	ErrOverdue,
	ErrNotReserved,
	ErrNotBorrowedByUser,
}

var validationErrors = []error{
	ErrMissingTitle,
	ErrMissingAuthor,
	ErrMissingName,
	ErrUnknownCategory,
	ErrUnknownRole,
	ErrInvalidID,
}

// IsPolicyDenial reports whether err is, or wraps, one of the policy denials.
func IsPolicyDenial(err error) bool {
	return isAnyOf(err, policyDenials)
}

// IsValidationError reports whether err is, or wraps, one of the validation errors.
func IsValidationError(err error) bool {
	return isAnyOf(err, validationErrors)
}

// IsNotFound reports whether err is, or wraps, ErrBookNotFound or ErrBorrowerNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookNotFound) || errors.Is(err, ErrBorrowerNotFound)
}

func isAnyOf(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
