package addbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/addbook"
	"github.com/AntonStoeckl/library-lending-go/recordstore/memengine"
)

func Test_CommandHandler_Handle_AddingTwiceIsIdempotent(t *testing.T) {
	// arrange
	store, err := memengine.NewRecordStore()
	require.NoError(t, err)
	handler := addbook.NewCommandHandler(store)
	now := time.Now()

	// act
	first, err := handler.Handle(t.Context(), addbook.BuildCommand(uuid.New(), "Dune", "Herbert", "general", now))
	require.NoError(t, err)
	second, err := handler.Handle(t.Context(), addbook.BuildCommand(uuid.New(), "Dune", "Herbert", "general", now))
	require.NoError(t, err)

	// assert
	assert.True(t, first.Created)
	assert.IsType(t, core.BookAdded{}, first.Event)
	assert.False(t, first.Metadata().Idempotent)

	assert.False(t, second.Created)
	assert.Nil(t, second.Event)
	assert.Equal(t, first.BookID, second.BookID)
	assert.True(t, second.Metadata().Idempotent)

	books, err := store.GetBooks(t.Context(), []string{first.BookID})
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func Test_CommandHandler_Handle_ValidationFailure_StoresNothing(t *testing.T) {
	store, err := memengine.NewRecordStore()
	require.NoError(t, err)
	bookID := uuid.New()

	result, err := addbook.NewCommandHandler(store).Handle(t.Context(), addbook.BuildCommand(bookID, "", "Herbert", "general", time.Now()))

	assert.ErrorIs(t, err, core.ErrMissingTitle)
	assert.Equal(t, 1, result.Metadata().RetryAttempts)

	_, err = store.GetBook(t.Context(), bookID.String())
	assert.Error(t, err)
}
