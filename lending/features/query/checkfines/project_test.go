package checkfines_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/checkfines"
)

func Test_ProjectFineReport(t *testing.T) {
	// arrange
	lentAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	borrower, err := core.NewBorrower(uuid.New(), "Ada", "standard")
	require.NoError(t, err)

	lend := func(title string, at time.Time) core.Book {
		book, bookErr := core.NewBook(uuid.New(), title, "Author", "general")
		require.NoError(t, bookErr)
		book, bookErr = book.Reserve(borrower.ID, borrower.Role, at)
		require.NoError(t, bookErr)

		return book
	}

	onTime := lend("On Time", lentAt.Add(20*24*time.Hour))
	slightlyLate := lend("Slightly Late", lentAt.Add(5*24*time.Hour))
	veryLate := lend("Very Late", lentAt)
	someoneElses, err := lend("Someone Else's", lentAt).Release().Reserve(uuid.NewString(), core.RoleStandard, lentAt)
	require.NoError(t, err)

	asOf := veryLate.Due.Add(10 * 24 * time.Hour)

	// act
	report := checkfines.ProjectFineReport(borrower, []core.Book{onTime, slightlyLate, veryLate, someoneElses}, asOf, "TRY")

	// assert
	require.Len(t, report.Fines, 2)
	assert.Equal(t, veryLate.ID, report.Fines[0].BookID)
	assert.Equal(t, 10, report.Fines[0].OverdueDays)
	assert.True(t, decimal.NewFromInt(70).Equal(report.Fines[0].Amount))
	assert.Equal(t, slightlyLate.ID, report.Fines[1].BookID)
	assert.True(t, decimal.NewFromInt(10).Equal(report.Fines[1].Amount))
	assert.True(t, decimal.NewFromInt(80).Equal(report.Total))
	assert.Equal(t, "TRY", report.Currency)
	assert.Equal(t, 2, report.ItemCount())
}

func Test_ProjectFineReport_NoLoans(t *testing.T) {
	borrower, err := core.NewBorrower(uuid.New(), "Ada", "faculty")
	require.NoError(t, err)

	report := checkfines.ProjectFineReport(borrower, nil, time.Now(), "EUR")

	assert.False(t, report.HasFines())
	assert.Empty(t, report.Fines)
	assert.True(t, report.Total.IsZero())
}
