package returnbook

import (
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decision is the outcome of Decide. On a denial or failure the records are the unchanged inputs.
type Decision struct {
	Book     core.Book
	Borrower core.Borrower
	Fine     core.Fine
	Result   core.DecisionResult
}

// Decide implements the business logic of returning a book.
//
// Business Rules:
//
//	GIVEN: A book and the borrower returning it
//	WHEN: ReturnBook command is received
//	THEN: the book is released, removed from the borrower's set, BookReturned is generated
//	ERROR: NotBorrowedByUser if the book is not in the borrower's set
//	FAILURE: LoanInconsistent if the borrower lists the book but it is not lent to them; nothing changes
//
// Fine reports what was owed at the moment of return; collecting it is outside the lending rules.
func Decide(book core.Book, borrower core.Borrower, command Command) Decision {
	unchanged := Decision{Book: book, Borrower: borrower}

	if !borrower.HasBorrowed(book.ID) {
		unchanged.Result = core.ErrorDecision(
			core.BuildLendingRequestDenied(
				core.OperationReturn,
				command.BookID.String(),
				command.BorrowerID.String(),
				core.ErrNotBorrowedByUser,
				command.OccurredAt,
			),
			core.ErrNotBorrowedByUser,
		)

		return unchanged
	}

	if !book.IsLentTo(borrower.ID) {
		unchanged.Result = core.ErrorDecision(nil, core.ErrLoanInconsistent)
		return unchanged
	}

	remaining, err := borrower.RemoveLoan(book.ID)
	if err != nil {
		unchanged.Result = core.ErrorDecision(nil, core.ErrLoanInconsistent)
		return unchanged
	}

	return Decision{
		Book:     book.Release(),
		Borrower: remaining,
		Fine:     book.Fine(command.OccurredAt),
		Result:   core.SuccessDecision(core.BuildBookReturned(book.ID, borrower.ID, command.OccurredAt)),
	}
}
