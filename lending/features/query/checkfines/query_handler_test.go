package checkfines_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/borrowbook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/checkfines"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
	"github.com/AntonStoeckl/library-lending-go/recordstore/memengine"
)

func Test_QueryHandler_Handle_SumsOverdueLoansAndChangesNothing(t *testing.T) {
	// arrange
	store, err := memengine.NewRecordStore()
	require.NoError(t, err)

	borrowerID := uuid.New()
	_, _, err = store.InsertBorrowerIfAbsent(t.Context(), recordstore.BuildBorrowerRecord(borrowerID.String(), "Ada", "standard"))
	require.NoError(t, err)

	lentAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	borrow := borrowbook.NewCommandHandler(store)

	for _, title := range []string{"First", "Second"} {
		bookID := uuid.New()
		_, _, err = store.InsertBookIfAbsent(t.Context(), recordstore.BuildBookRecord(bookID.String(), title, "Author", "general"))
		require.NoError(t, err)
		_, err = borrow.Handle(t.Context(), borrowbook.BuildCommand(bookID, borrowerID, lentAt))
		require.NoError(t, err)
	}

	before, err := store.GetBorrower(t.Context(), borrowerID.String())
	require.NoError(t, err)

	asOf := lentAt.Add(core.LoanDuration(core.RoleStandard) + 10*24*time.Hour)
	handler := checkfines.NewQueryHandler(store, checkfines.WithCurrency("EUR"))

	// act
	report, err := handler.Handle(t.Context(), checkfines.BuildQuery(borrowerID, asOf))

	// assert
	require.NoError(t, err)
	assert.Len(t, report.Fines, 2)
	assert.True(t, decimal.NewFromInt(140).Equal(report.Total))
	assert.Equal(t, "EUR", report.Currency)

	after, err := store.GetBorrower(t.Context(), borrowerID.String())
	require.NoError(t, err)
	assert.Equal(t, before.Version, after.Version)
}

func Test_QueryHandler_Handle_UnknownBorrower(t *testing.T) {
	store, err := memengine.NewRecordStore()
	require.NoError(t, err)

	_, err = checkfines.NewQueryHandler(store).Handle(t.Context(), checkfines.BuildQuery(uuid.New(), time.Now()))

	assert.ErrorIs(t, err, core.ErrBorrowerNotFound)
}
