package borrowbook_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/borrowbook"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
	"github.com/AntonStoeckl/library-lending-go/recordstore/memengine"
)

func setupStore(t *testing.T) *memengine.RecordStore {
	t.Helper()

	store, err := memengine.NewRecordStore()
	require.NoError(t, err)

	return store
}

func seedBook(t *testing.T, store *memengine.RecordStore, title, category string) uuid.UUID {
	t.Helper()

	bookID := uuid.New()
	_, created, err := store.InsertBookIfAbsent(t.Context(), recordstore.BuildBookRecord(bookID.String(), title, "Author", category))
	require.NoError(t, err)
	require.True(t, created)

	return bookID
}

func seedBorrower(t *testing.T, store *memengine.RecordStore, name, role string) uuid.UUID {
	t.Helper()

	borrowerID := uuid.New()
	_, created, err := store.InsertBorrowerIfAbsent(t.Context(), recordstore.BuildBorrowerRecord(borrowerID.String(), name, role))
	require.NoError(t, err)
	require.True(t, created)

	return borrowerID
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	store := setupStore(t)
	bookID := seedBook(t, store, "Dune", "general")
	borrowerID := seedBorrower(t, store, "Ada", "standard")
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	handler := borrowbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(t.Context(), borrowbook.BuildCommand(bookID, borrowerID, now))

	// assert
	require.NoError(t, err)
	assert.Equal(t, now.Add(15*24*time.Hour), result.Due)
	assert.Equal(t, 1, result.Metadata().RetryAttempts)
	assert.False(t, result.Metadata().Denied)
	assert.IsType(t, core.BookBorrowed{}, result.Event)

	book, err := store.GetBook(t.Context(), bookID.String())
	require.NoError(t, err)
	assert.True(t, book.Reserved)
	assert.Equal(t, borrowerID.String(), book.CurrentBorrower)

	borrower, err := store.GetBorrower(t.Context(), borrowerID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{bookID.String()}, borrower.BorrowedBooks)
}

func Test_CommandHandler_Handle_NotFound(t *testing.T) {
	store := setupStore(t)
	bookID := seedBook(t, store, "Dune", "general")
	borrowerID := seedBorrower(t, store, "Ada", "standard")
	handler := borrowbook.NewCommandHandler(store)

	_, err := handler.Handle(t.Context(), borrowbook.BuildCommand(uuid.New(), borrowerID, time.Now()))
	assert.ErrorIs(t, err, core.ErrBookNotFound)
	assert.ErrorIs(t, err, recordstore.ErrRecordNotFound)

	_, err = handler.Handle(t.Context(), borrowbook.BuildCommand(bookID, uuid.New(), time.Now()))
	assert.ErrorIs(t, err, core.ErrBorrowerNotFound)
}

func Test_CommandHandler_Handle_DenialPersistsNothing(t *testing.T) {
	// arrange
	store := setupStore(t)
	bookID := seedBook(t, store, "Nature", "periodical")
	borrowerID := seedBorrower(t, store, "Ada", "standard")
	handler := borrowbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(t.Context(), borrowbook.BuildCommand(bookID, borrowerID, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrCategoryRestricted)
	assert.True(t, result.Metadata().Denied)
	assert.IsType(t, core.LendingRequestDenied{}, result.Event)

	book, err := store.GetBook(t.Context(), bookID.String())
	require.NoError(t, err)
	assert.False(t, book.Reserved)
	assert.Equal(t, recordstore.VersionUint(1), book.Version)
}

func Test_CommandHandler_Handle_ConcurrentBorrowsOfOneBook(t *testing.T) {
	// arrange
	store := setupStore(t)
	bookID := seedBook(t, store, "Dune", "general")

	const borrowers = 8
	borrowerIDs := make([]uuid.UUID, borrowers)
	for i := range borrowerIDs {
		borrowerIDs[i] = seedBorrower(t, store, uuid.NewString(), "standard")
	}

	handler := borrowbook.NewCommandHandler(store, borrowbook.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)))

	var wg sync.WaitGroup
	errs := make([]error, borrowers)

	// act
	for i, borrowerID := range borrowerIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = handler.Handle(context.Background(), borrowbook.BuildCommand(bookID, borrowerID, time.Now()))
		}()
	}
	wg.Wait()

	// assert
	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, core.ErrAlreadyReserved)
	}
	assert.Equal(t, 1, successes)

	book, err := store.GetBook(t.Context(), bookID.String())
	require.NoError(t, err)

	holders := 0
	for _, borrowerID := range borrowerIDs {
		borrower, err := store.GetBorrower(t.Context(), borrowerID.String())
		require.NoError(t, err)
		if len(borrower.BorrowedBooks) == 1 {
			holders++
			assert.Equal(t, borrowerID.String(), book.CurrentBorrower)
		}
	}
	assert.Equal(t, 1, holders)
}
