package addbook

import (
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decision is the outcome of Decide.
type Decision struct {
	Book   core.Book
	Result core.DecisionResult
}

// Decide validates the new book and describes it.
//
// Business Rules:
//
//	GIVEN: A title, an author and a category
//	WHEN: AddBook command is received
//	THEN: an unreserved book and BookAdded are generated
//	ERROR: MissingTitle, MissingAuthor, UnknownCategory, all failing fields joined
//
// Whether the book already exists is settled by the store's insert-if-absent, not here.
func Decide(command Command) Decision {
	book, err := core.NewBook(command.BookID, command.Title, command.Author, command.Category)
	if err != nil {
		return Decision{Result: core.ErrorDecision(nil, err)}
	}

	return Decision{
		Book:   book,
		Result: core.SuccessDecision(core.BuildBookAdded(book, command.OccurredAt)),
	}
}
