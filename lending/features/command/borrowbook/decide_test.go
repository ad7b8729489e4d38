package borrowbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/borrowbook"
)

func givenBook(t *testing.T, bookID uuid.UUID, category string) core.Book {
	t.Helper()

	book, err := core.NewBook(bookID, "Structure and Interpretation", "Abelson", category)
	require.NoError(t, err)

	return book
}

func givenBorrower(t *testing.T, borrowerID uuid.UUID, role string, heldBooks int) core.Borrower {
	t.Helper()

	borrower, err := core.NewBorrower(borrowerID, "Grace", role)
	require.NoError(t, err)

	for i := 0; i < heldBooks; i++ {
		borrower = borrower.AddLoan(uuid.NewString())
	}

	return borrower
}

func assertDenied(t *testing.T, decision borrowbook.Decision, expected error) {
	t.Helper()

	assert.ErrorIs(t, decision.Result.HasError(), expected)
	assert.False(t, decision.Result.HasStateChange())
	require.NotNil(t, decision.Result.Event)
	assert.True(t, decision.Result.Event.IsErrorEvent())

	denied, ok := decision.Result.Event.(core.LendingRequestDenied)
	require.True(t, ok)
	assert.Equal(t, core.OperationBorrow, denied.Operation)
	assert.Equal(t, expected.Error(), denied.Reason)
}

func Test_Decide_Success_FacultyBorrowsTextbook(t *testing.T) {
	// arrange
	bookID, borrowerID := uuid.New(), uuid.New()
	now := time.Now()
	book := givenBook(t, bookID, "textbook")
	borrower := givenBorrower(t, borrowerID, "faculty", 4)

	// act
	decision := borrowbook.Decide(book, borrower, borrowbook.BuildCommand(bookID, borrowerID, now))

	// assert
	require.NoError(t, decision.Result.HasError())
	assert.True(t, decision.Result.HasStateChange())
	assert.True(t, decision.Book.IsLentTo(borrowerID.String()))
	assert.Equal(t, core.ToOccurredAt(now).Add(40*24*time.Hour), decision.Book.Due)
	assert.True(t, decision.Borrower.HasBorrowed(bookID.String()))
	assert.Len(t, decision.Borrower.BorrowedBooks, 5)

	event, ok := decision.Result.Event.(core.BookBorrowed)
	require.True(t, ok)
	assert.Equal(t, bookID.String(), event.BookID)
	assert.Equal(t, borrowerID.String(), event.BorrowerID)
}

func Test_Decide_Error_LimitReached(t *testing.T) {
	bookID, borrowerID := uuid.New(), uuid.New()
	book := givenBook(t, bookID, "general")
	borrower := givenBorrower(t, borrowerID, "standard", 3)

	decision := borrowbook.Decide(book, borrower, borrowbook.BuildCommand(bookID, borrowerID, time.Now()))

	assertDenied(t, decision, core.ErrLimitReached)
	assert.Equal(t, book, decision.Book)
	assert.Equal(t, borrower, decision.Borrower)
}

func Test_Decide_Error_LimitReachedIsCheckedBeforeReservation(t *testing.T) {
	bookID, borrowerID := uuid.New(), uuid.New()
	book, err := givenBook(t, bookID, "general").Reserve("someone-else", core.RoleStandard, time.Now())
	require.NoError(t, err)

	decision := borrowbook.Decide(book, givenBorrower(t, borrowerID, "standard", 3), borrowbook.BuildCommand(bookID, borrowerID, time.Now()))

	assertDenied(t, decision, core.ErrLimitReached)
}

func Test_Decide_Error_AlreadyReserved(t *testing.T) {
	bookID, borrowerID := uuid.New(), uuid.New()
	book, err := givenBook(t, bookID, "general").Reserve(uuid.NewString(), core.RoleStandard, time.Now())
	require.NoError(t, err)

	decision := borrowbook.Decide(book, givenBorrower(t, borrowerID, "faculty", 0), borrowbook.BuildCommand(bookID, borrowerID, time.Now()))

	assertDenied(t, decision, core.ErrAlreadyReserved)
}

func Test_Decide_Error_CategoryRestricted(t *testing.T) {
	for _, category := range []string{"textbook", "periodical"} {
		t.Run(category, func(t *testing.T) {
			bookID, borrowerID := uuid.New(), uuid.New()

			decision := borrowbook.Decide(
				givenBook(t, bookID, category),
				givenBorrower(t, borrowerID, "standard", 0),
				borrowbook.BuildCommand(bookID, borrowerID, time.Now()),
			)

			assertDenied(t, decision, core.ErrCategoryRestricted)
		})
	}
}
