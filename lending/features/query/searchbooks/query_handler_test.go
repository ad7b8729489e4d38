package searchbooks_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/features/query/searchbooks"
	"github.com/AntonStoeckl/library-lending-go/recordstore"
	"github.com/AntonStoeckl/library-lending-go/recordstore/memengine"
)

func setupCatalogue(t *testing.T) *memengine.RecordStore {
	t.Helper()

	store, err := memengine.NewRecordStore()
	require.NoError(t, err)

	for _, book := range [][2]string{
		{"Dune", "Herbert"},
		{"Dune Messiah", "Herbert"},
		{"Dune", "Lynch"},
		{"Neuromancer", "Gibson"},
	} {
		_, _, err = store.InsertBookIfAbsent(t.Context(), recordstore.BuildBookRecord(uuid.NewString(), book[0], book[1], "general"))
		require.NoError(t, err)
	}

	return store
}

func Test_QueryHandler_Handle(t *testing.T) {
	store := setupCatalogue(t)
	handler := searchbooks.NewQueryHandler(store)

	testCases := []struct {
		name          string
		query         searchbooks.Query
		expectedCount int
	}{
		{name: "by title", query: searchbooks.BuildQuery("Dune", ""), expectedCount: 2},
		{name: "by author", query: searchbooks.BuildQuery("", "Herbert"), expectedCount: 2},
		{name: "by title and author", query: searchbooks.BuildQuery("Dune", "Herbert"), expectedCount: 1},
		{name: "blank values list all", query: searchbooks.BuildQuery("  ", ""), expectedCount: 4},
		{name: "list all", query: searchbooks.BuildListAllQuery(), expectedCount: 4},
		{name: "title match is exact", query: searchbooks.BuildQuery("dune", ""), expectedCount: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := handler.Handle(t.Context(), tc.query)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCount, result.Count)
			assert.Len(t, result.Books, tc.expectedCount)

			for _, book := range result.Books {
				assert.True(t, book.Available)
				assert.True(t, book.Due.IsZero())
			}
		})
	}
}
