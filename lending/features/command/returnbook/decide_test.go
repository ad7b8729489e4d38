package returnbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/returnbook"
)

func givenLoan(t *testing.T, now time.Time) (core.Book, core.Borrower) {
	t.Helper()

	book, err := core.NewBook(uuid.New(), "Gödel, Escher, Bach", "Hofstadter", "general")
	require.NoError(t, err)

	borrower, err := core.NewBorrower(uuid.New(), "Kurt", "standard")
	require.NoError(t, err)

	book, err = book.Reserve(borrower.ID, borrower.Role, now)
	require.NoError(t, err)

	return book, borrower.AddLoan(book.ID)
}

func commandFor(book core.Book, borrower core.Borrower, at time.Time) returnbook.Command {
	return returnbook.BuildCommand(uuid.MustParse(book.ID), uuid.MustParse(borrower.ID), at)
}

func Test_Decide_Success_ReleasesBothSides(t *testing.T) {
	// arrange
	now := time.Now()
	book, borrower := givenLoan(t, now)

	// act
	decision := returnbook.Decide(book, borrower, commandFor(book, borrower, now.Add(time.Hour)))

	// assert
	require.NoError(t, decision.Result.HasError())
	assert.False(t, decision.Book.Reserved)
	assert.False(t, decision.Book.HasDue())
	assert.Empty(t, decision.Borrower.BorrowedBooks)
	assert.True(t, decision.Fine.Amount.IsZero())
	assert.IsType(t, core.BookReturned{}, decision.Result.Event)
}

func Test_Decide_Success_ReportsFineOfOverdueReturn(t *testing.T) {
	now := time.Now()
	book, borrower := givenLoan(t, now)

	decision := returnbook.Decide(book, borrower, commandFor(book, borrower, book.Due.Add(8*24*time.Hour)))

	require.NoError(t, decision.Result.HasError())
	assert.True(t, decimal.NewFromInt(30).Equal(decision.Fine.Amount))
}

func Test_Decide_Error_NotBorrowedByUser(t *testing.T) {
	now := time.Now()
	book, _ := givenLoan(t, now)
	other, err := core.NewBorrower(uuid.New(), "Other", "standard")
	require.NoError(t, err)

	decision := returnbook.Decide(book, other, commandFor(book, other, now))

	assert.ErrorIs(t, decision.Result.HasError(), core.ErrNotBorrowedByUser)
	assert.Equal(t, book, decision.Book)
}

func Test_Decide_Failure_BookLentToSomeoneElse(t *testing.T) {
	now := time.Now()
	book, borrower := givenLoan(t, now)
	takenOver, err := book.Release().Reserve(uuid.NewString(), core.RoleStandard, now)
	require.NoError(t, err)

	decision := returnbook.Decide(takenOver, borrower, commandFor(takenOver, borrower, now))

	assert.ErrorIs(t, decision.Result.HasError(), core.ErrLoanInconsistent)
	assert.False(t, core.IsPolicyDenial(decision.Result.HasError()))
	assert.Equal(t, takenOver, decision.Book)
	assert.Equal(t, borrower, decision.Borrower)
}
