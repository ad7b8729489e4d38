package registerborrower

import (
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decision is the outcome of Decide.
type Decision struct {
	Borrower core.Borrower
	Result   core.DecisionResult
}

// Decide validates the new borrower.
//
// Business Rules:
//
//	GIVEN: A name and a role
//	WHEN: RegisterBorrower command is received
//	THEN: a borrower without loans and BorrowerRegistered are generated
//	ERROR: MissingName, UnknownRole
func Decide(command Command) Decision {
	borrower, err := core.NewBorrower(command.BorrowerID, command.Name, command.Role)
	if err != nil {
		return Decision{Result: core.ErrorDecision(nil, err)}
	}

	return Decision{
		Borrower: borrower,
		Result:   core.SuccessDecision(core.BuildBorrowerRegistered(borrower, command.OccurredAt)),
	}
}
