package memengine_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/recordstore"
	"github.com/AntonStoeckl/library-lending-go/recordstore/memengine"
)

func newStore(t *testing.T) *memengine.RecordStore {
	t.Helper()

	rs, err := memengine.NewRecordStore(memengine.WithClock(func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)

	return rs
}

func Test_InsertBookIfAbsent_IsIdempotentPerTitleAndAuthor(t *testing.T) {
	// arrange
	ctx := context.Background()
	rs := newStore(t)

	// act
	first, created1, err1 := rs.InsertBookIfAbsent(ctx, recordstore.BuildBookRecord("b-1", "Dune", "Herbert", "general"))
	second, created2, err2 := rs.InsertBookIfAbsent(ctx, recordstore.BuildBookRecord("b-2", "Dune", "Herbert", "general"))

	// assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, created1)
	assert.False(t, created2)
	assert.Equal(t, first.BookID, second.BookID)
	assert.Equal(t, recordstore.VersionUint(1), first.Version)
}

func Test_InsertBorrowerIfAbsent_ConcurrentInsertsCreateOneRecord(t *testing.T) {
	// arrange
	ctx := context.Background()
	rs := newStore(t)
	var createdCount atomic.Int32
	var wg sync.WaitGroup

	// act
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := string(rune('a' + i))
			_, created, err := rs.InsertBorrowerIfAbsent(ctx, recordstore.BuildBorrowerRecord(id, "Ada", "faculty"))
			assert.NoError(t, err)
			if created {
				createdCount.Add(1)
			}
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, int32(1), createdCount.Load())
}

func Test_UpdateBook_FailsWithConflict_ForStaleVersion(t *testing.T) {
	// arrange
	ctx := context.Background()
	rs := newStore(t)
	book, _, _ := rs.InsertBookIfAbsent(ctx, recordstore.BuildBookRecord("b-1", "Dune", "Herbert", "general"))

	first := book
	first.Extensions = 1
	require.NoError(t, rs.UpdateBook(ctx, first))

	// act
	err := rs.UpdateBook(ctx, book)

	// assert
	assert.ErrorIs(t, err, recordstore.ErrConcurrencyConflict)
	stored, _ := rs.GetBook(ctx, "b-1")
	assert.Equal(t, 1, stored.Extensions)
	assert.Equal(t, recordstore.VersionUint(2), stored.Version)
}

func Test_UpdateLoan_WritesNeither_WhenOneVersionIsStale(t *testing.T) {
	// arrange
	ctx := context.Background()
	rs := newStore(t)
	book, _, _ := rs.InsertBookIfAbsent(ctx, recordstore.BuildBookRecord("b-1", "Dune", "Herbert", "general"))
	borrower, _, _ := rs.InsertBorrowerIfAbsent(ctx, recordstore.BuildBorrowerRecord("u-1", "Ada", "standard"))

	book.Reserved = true
	book.CurrentBorrower = "u-1"
	book.DueAt = time.Now()
	borrower.BorrowedBooks = []string{"b-1"}
	borrower.Version = 5

	// act
	err := rs.UpdateLoan(ctx, book, borrower)

	// assert
	assert.ErrorIs(t, err, recordstore.ErrConcurrencyConflict)
	stored, _ := rs.GetBook(ctx, "b-1")
	assert.False(t, stored.Reserved)
}

func Test_GetBorrower_ReturnsCopy(t *testing.T) {
	// arrange
	ctx := context.Background()
	rs := newStore(t)
	_, _, _ = rs.InsertBorrowerIfAbsent(ctx, recordstore.BuildBorrowerRecord("u-1", "Ada", "standard"))

	// act
	borrower, _ := rs.GetBorrower(ctx, "u-1")
	borrower.BorrowedBooks = append(borrower.BorrowedBooks, "b-1")

	// assert
	stored, _ := rs.GetBorrower(ctx, "u-1")
	assert.Empty(t, stored.BorrowedBooks)
}

func Test_FindBooks_AppliesCriteria(t *testing.T) {
	// arrange
	ctx := context.Background()
	rs := newStore(t)
	_, _, _ = rs.InsertBookIfAbsent(ctx, recordstore.BuildBookRecord("b-1", "Dune", "Herbert", "general"))
	_, _, _ = rs.InsertBookIfAbsent(ctx, recordstore.BuildBookRecord("b-2", "Foundation", "Asimov", "general"))

	// act
	byAuthor, _ := rs.FindBooks(ctx, recordstore.BuildBookCriteria().WithAuthor("Asimov").Finalize())
	all, _ := rs.FindBooks(ctx, recordstore.BuildBookCriteria().MatchingAnyBook())

	// assert
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "b-2", byAuthor[0].BookID)
	require.Len(t, all, 2)
	assert.Equal(t, "Dune", all[0].Title)
}

func Test_Operations_FailFast_OnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rs := newStore(t)

	_, err := rs.GetBook(ctx, "b-1")

	assert.ErrorIs(t, err, context.Canceled)
}

func Test_GetBook_ReturnsNotFound(t *testing.T) {
	_, err := newStore(t).GetBook(context.Background(), "unknown")

	assert.ErrorIs(t, err, recordstore.ErrRecordNotFound)
}
