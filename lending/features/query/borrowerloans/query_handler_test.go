package borrowerloans_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/borrowbook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/borrowerloans"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
	"github.com/AntonStoeckl/library-lending-go/recordstore/memengine"
)

func Test_QueryHandler_Handle_ListsLoansEarliestDueFirst(t *testing.T) {
	// arrange
	store, err := memengine.NewRecordStore()
	require.NoError(t, err)

	borrowerID := uuid.New()
	_, _, err = store.InsertBorrowerIfAbsent(t.Context(), recordstore.BuildBorrowerRecord(borrowerID.String(), "Grace", "faculty"))
	require.NoError(t, err)

	start := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	borrow := borrowbook.NewCommandHandler(store)

	lateBookID := uuid.New()
	earlyBookID := uuid.New()
	for i, bookID := range []uuid.UUID{lateBookID, earlyBookID} {
		_, _, err = store.InsertBookIfAbsent(t.Context(), recordstore.BuildBookRecord(bookID.String(), bookID.String(), "Author", "textbook"))
		require.NoError(t, err)
		_, err = borrow.Handle(t.Context(), borrowbook.BuildCommand(bookID, borrowerID, start.Add(-time.Duration(i)*48*time.Hour)))
		require.NoError(t, err)
	}

	asOf := start.Add(core.LoanDuration(core.RoleFaculty) - 24*time.Hour)

	// act
	result, err := borrowerloans.NewQueryHandler(store).Handle(t.Context(), borrowerloans.BuildQuery(borrowerID, asOf))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Grace", result.Name)
	assert.Equal(t, core.BorrowLimit(core.RoleFaculty), result.BorrowLimit)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, earlyBookID.String(), result.Loans[0].BookID)
	assert.True(t, result.Loans[0].Overdue)
	assert.Equal(t, lateBookID.String(), result.Loans[1].BookID)
	assert.False(t, result.Loans[1].Overdue)
}

func Test_QueryHandler_Handle_BorrowerWithoutLoans(t *testing.T) {
	store, err := memengine.NewRecordStore()
	require.NoError(t, err)

	borrowerID := uuid.New()
	_, _, err = store.InsertBorrowerIfAbsent(t.Context(), recordstore.BuildBorrowerRecord(borrowerID.String(), "Ada", "standard"))
	require.NoError(t, err)

	result, err := borrowerloans.NewQueryHandler(store).Handle(t.Context(), borrowerloans.BuildQuery(borrowerID, time.Now()))

	require.NoError(t, err)
	assert.Equal(t, 0, result.ItemCount())
	assert.NotNil(t, result.Loans)
}
