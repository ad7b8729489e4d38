package borrowerloans

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// ProjectBorrowerLoans builds the loan view of a borrower.
//
// Query Logic:
//
//	GIVEN: A borrower and the books in their borrowed set
//	WHEN: BorrowerLoans query is executed
//	THEN: every book lent to the borrower is listed with its due date
//	EXCLUDES: books in the set that are not lent to this borrower
func ProjectBorrowerLoans(borrower core.Borrower, books []core.Book, asOf time.Time) BorrowerLoans {
	loans := make([]LoanInfo, 0, len(books))

	for _, book := range books {
		if !book.IsLentTo(borrower.ID) {
			continue
		}

		loans = append(loans, LoanInfo{
			BookID:     book.ID,
			Title:      book.Title,
			Author:     book.Author,
			Category:   book.Category.String(),
			Due:        book.Due,
			Extensions: book.Extensions,
			Overdue:    asOf.After(book.Due),
		})
	}

	slices.SortFunc(loans, func(a, b LoanInfo) int {
		return a.Due.Compare(b.Due)
	})

	return BorrowerLoans{
		BorrowerID:  borrower.ID,
		Name:        borrower.Name,
		Role:        borrower.Role.String(),
		BorrowLimit: core.BorrowLimit(borrower.Role),
		Loans:       loans,
		Count:       len(loans),
	}
}
