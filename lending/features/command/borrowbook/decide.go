package borrowbook

import (
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decision is the outcome of Decide: the records to save and the DecisionResult.
// On a denial Book and Borrower are the unchanged inputs.
type Decision struct {
	Book     core.Book
	Borrower core.Borrower
	Result   core.DecisionResult
}

// Decide implements the business logic to determine whether a book can be lent to a borrower.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book and a borrower
//	WHEN: BorrowBook command is received
//	THEN: both records change and a BookBorrowed event is generated
//	ERROR: LimitReached if the borrower already holds BorrowLimit(role) books
//	ERROR: AlreadyReserved if the book is reserved, by anyone
//	ERROR: CategoryRestricted if the category is textbook or periodical and the borrower is not faculty
func Decide(book core.Book, borrower core.Borrower, command Command) Decision {
	unchanged := Decision{Book: book, Borrower: borrower}

	if !borrower.CanBorrow() {
		unchanged.Result = deny(command, core.ErrLimitReached)
		return unchanged
	}

	reserved, err := book.Reserve(borrower.ID, borrower.Role, command.OccurredAt)
	if err != nil {
		unchanged.Result = deny(command, err)
		return unchanged
	}

	return Decision{
		Book:     reserved,
		Borrower: borrower.AddLoan(reserved.ID),
		Result:   core.SuccessDecision(core.BuildBookBorrowed(reserved, command.OccurredAt)),
	}
}

func deny(command Command, reason error) core.DecisionResult {
	event := core.BuildLendingRequestDenied(
		core.OperationBorrow,
		command.BookID.String(),
		command.BorrowerID.String(),
		reason,
		command.OccurredAt,
	)

	return core.ErrorDecision(event, reason)
}
