package extendloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/borrowbook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/extendloan"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
	"github.com/AntonStoeckl/library-lending-go/recordstore/memengine"
)

func Test_CommandHandler_Handle_ExtendsAndPersists(t *testing.T) {
	// arrange
	store, err := memengine.NewRecordStore()
	require.NoError(t, err)

	bookID, borrowerID := uuid.New(), uuid.New()
	_, _, err = store.InsertBookIfAbsent(t.Context(), recordstore.BuildBookRecord(bookID.String(), "Calculus", "Spivak", "textbook"))
	require.NoError(t, err)
	_, _, err = store.InsertBorrowerIfAbsent(t.Context(), recordstore.BuildBorrowerRecord(borrowerID.String(), "Emmy", "faculty"))
	require.NoError(t, err)

	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	_, err = borrowbook.NewCommandHandler(store).Handle(t.Context(), borrowbook.BuildCommand(bookID, borrowerID, now))
	require.NoError(t, err)

	handler := extendloan.NewCommandHandler(store)

	// act
	result, err := handler.Handle(t.Context(), extendloan.BuildCommand(bookID, borrowerID, now.Add(day)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, now.Add(70*day), result.Due)
	assert.Equal(t, 1, result.Extensions)

	book, err := store.GetBook(t.Context(), bookID.String())
	require.NoError(t, err)
	assert.Equal(t, now.Add(70*day), book.DueAt)
	assert.Equal(t, 1, book.Extensions)
}

func Test_CommandHandler_Handle_NotBorrowedByUser(t *testing.T) {
	store, err := memengine.NewRecordStore()
	require.NoError(t, err)

	bookID, borrowerID := uuid.New(), uuid.New()
	_, _, err = store.InsertBookIfAbsent(t.Context(), recordstore.BuildBookRecord(bookID.String(), "Calculus", "Spivak", "general"))
	require.NoError(t, err)
	_, _, err = store.InsertBorrowerIfAbsent(t.Context(), recordstore.BuildBorrowerRecord(borrowerID.String(), "Emmy", "standard"))
	require.NoError(t, err)

	result, err := extendloan.NewCommandHandler(store).Handle(t.Context(), extendloan.BuildCommand(bookID, borrowerID, time.Now()))

	assert.ErrorIs(t, err, core.ErrNotBorrowedByUser)
	assert.True(t, result.Metadata().Denied)
}
