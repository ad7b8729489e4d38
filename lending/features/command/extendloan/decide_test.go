package extendloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/extendloan"
)

const day = 24 * time.Hour

type fixture struct {
	bookID     uuid.UUID
	borrowerID uuid.UUID
	book       core.Book
	borrower   core.Borrower
	borrowedAt time.Time
}

func givenLoan(t *testing.T, category string, role string) fixture {
	t.Helper()

	f := fixture{bookID: uuid.New(), borrowerID: uuid.New(), borrowedAt: core.ToOccurredAt(time.Now())}

	book, err := core.NewBook(f.bookID, "Calculus", "Spivak", category)
	require.NoError(t, err)

	borrower, err := core.NewBorrower(f.borrowerID, "Emmy", role)
	require.NoError(t, err)

	f.book, err = book.Reserve(borrower.ID, borrower.Role, f.borrowedAt)
	require.NoError(t, err)
	f.borrower = borrower.AddLoan(f.book.ID)

	return f
}

func Test_Decide_Success_FacultyTextbook(t *testing.T) {
	// arrange
	f := givenLoan(t, "textbook", "faculty")

	// act
	decision := extendloan.Decide(f.book, f.borrower, extendloan.BuildCommand(f.bookID, f.borrowerID, f.borrowedAt))

	// assert
	require.NoError(t, decision.Result.HasError())
	assert.Equal(t, f.borrowedAt.Add(70*day), decision.Book.Due)
	assert.Equal(t, 1, decision.Book.Extensions)

	event, ok := decision.Result.Event.(core.DueDateExtended)
	require.True(t, ok)
	assert.Equal(t, 1, event.Extensions)
	assert.Equal(t, decision.Book.Due, event.DueAt)
}

func Test_Decide_Error_SixthExtensionForFaculty(t *testing.T) {
	f := givenLoan(t, "textbook", "faculty")
	command := extendloan.BuildCommand(f.bookID, f.borrowerID, f.borrowedAt)

	book := f.book
	for i := 0; i < 5; i++ {
		decision := extendloan.Decide(book, f.borrower, command)
		require.NoError(t, decision.Result.HasError())
		book = decision.Book
	}

	decision := extendloan.Decide(book, f.borrower, command)

	assert.ErrorIs(t, decision.Result.HasError(), core.ErrExtensionLimitReached)
	assert.Equal(t, book, decision.Book)
}

func Test_Decide_Error_NotBorrowedByUser(t *testing.T) {
	f := givenLoan(t, "general", "standard")
	stranger, err := core.NewBorrower(uuid.New(), "Stranger", "faculty")
	require.NoError(t, err)

	decision := extendloan.Decide(f.book, stranger, extendloan.BuildCommand(f.bookID, uuid.MustParse(stranger.ID), f.borrowedAt))

	assert.ErrorIs(t, decision.Result.HasError(), core.ErrNotBorrowedByUser)

	denied, ok := decision.Result.Event.(core.LendingRequestDenied)
	require.True(t, ok)
	assert.Equal(t, core.OperationExtend, denied.Operation)
}

func Test_Decide_Error_Overdue(t *testing.T) {
	f := givenLoan(t, "general", "standard")

	decision := extendloan.Decide(f.book, f.borrower, extendloan.BuildCommand(f.bookID, f.borrowerID, f.book.Due.Add(time.Hour)))

	assert.ErrorIs(t, decision.Result.HasError(), core.ErrOverdue)
}

func Test_Decide_Error_NotReserved(t *testing.T) {
	f := givenLoan(t, "general", "standard")
	released := f.book.Release()

	// the borrower still lists the book, the book itself has no reservation
	decision := extendloan.Decide(released, f.borrower, extendloan.BuildCommand(f.bookID, f.borrowerID, f.borrowedAt))

	assert.ErrorIs(t, decision.Result.HasError(), core.ErrNotReserved)
}

func Test_Decide_Failure_LoanInconsistent(t *testing.T) {
	f := givenLoan(t, "general", "standard")
	takenOver, err := f.book.Release().Reserve(uuid.NewString(), core.RoleStandard, f.borrowedAt)
	require.NoError(t, err)

	decision := extendloan.Decide(takenOver, f.borrower, extendloan.BuildCommand(f.bookID, f.borrowerID, f.borrowedAt))

	assert.ErrorIs(t, decision.Result.HasError(), core.ErrLoanInconsistent)
	assert.Nil(t, decision.Result.Event)
}
