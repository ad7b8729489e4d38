package extendloan

import (
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decision is the outcome of Decide. On a denial Book is the unchanged input.
type Decision struct {
	Book   core.Book
	Result core.DecisionResult
}

// Decide implements the business logic to determine whether a loan can be extended.
//
// Business Rules:
//
//	GIVEN: A book and the borrower asking
//	WHEN: ExtendLoan command is received
//	THEN: due moves by ExtensionDuration(category), extensions+1, DueDateExtended is generated
//	ERROR: NotBorrowedByUser if the book is not in the borrower's set
//	ERROR: ExtensionLimitReached if extensions >= ExtensionLimit(role)
//	ERROR: NotReserved if the book has no due date
//	ERROR: Overdue if the due date has passed
//	FAILURE: LoanInconsistent if the borrower lists the book but it is reserved by someone else
func Decide(book core.Book, borrower core.Borrower, command Command) Decision {
	if !borrower.HasBorrowed(book.ID) {
		return Decision{Book: book, Result: deny(command, core.ErrNotBorrowedByUser)}
	}

	if book.Reserved && !book.IsLentTo(borrower.ID) {
		return Decision{Book: book, Result: core.ErrorDecision(nil, core.ErrLoanInconsistent)}
	}

	extended, err := book.Extend(borrower.Role, command.OccurredAt)
	if err != nil {
		return Decision{Book: book, Result: deny(command, err)}
	}

	return Decision{
		Book:   extended,
		Result: core.SuccessDecision(core.BuildDueDateExtended(extended, command.OccurredAt)),
	}
}

func deny(command Command, reason error) core.DecisionResult {
	event := core.BuildLendingRequestDenied(
		core.OperationExtend,
		command.BookID.String(),
		command.BorrowerID.String(),
		reason,
		command.OccurredAt,
	)

	return core.ErrorDecision(event, reason)
}
