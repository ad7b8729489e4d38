package registerborrower_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/registerborrower"
	"github.com/AntonStoeckl/library-lending-go/recordstore/memengine"
)

func Test_Decide_Error_UnknownRoleAndMissingName(t *testing.T) {
	decision := registerborrower.Decide(registerborrower.BuildCommand(uuid.New(), "  ", "student", time.Now()))

	err := decision.Result.HasError()
	assert.ErrorIs(t, err, core.ErrMissingName)
	assert.ErrorIs(t, err, core.ErrUnknownRole)
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	store, err := memengine.NewRecordStore()
	require.NoError(t, err)
	borrowerID := uuid.New()

	// act
	result, err := registerborrower.NewCommandHandler(store).
		Handle(t.Context(), registerborrower.BuildCommand(borrowerID, "Grace", "faculty", time.Now()))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, borrowerID.String(), result.BorrowerID)
	assert.Equal(t, core.RoleFaculty, result.Role)
	assert.IsType(t, core.BorrowerRegistered{}, result.Event)

	stored, err := store.GetBorrower(t.Context(), borrowerID.String())
	require.NoError(t, err)
	assert.Empty(t, stored.BorrowedBooks)
}

func Test_CommandHandler_Handle_ConcurrentDuplicatesCreateOneBorrower(t *testing.T) {
	// arrange
	store, err := memengine.NewRecordStore()
	require.NoError(t, err)
	handler := registerborrower.NewCommandHandler(store)

	const registrations = 6
	results := make([]registerborrower.Result, registrations)

	// act
	var wg sync.WaitGroup
	for i := range registrations {
		wg.Add(1)

		go func() {
			defer wg.Done()

			result, handleErr := handler.Handle(t.Context(), registerborrower.BuildCommand(uuid.New(), "Grace", "faculty", time.Now()))
			assert.NoError(t, handleErr)
			results[i] = result
		}()
	}
	wg.Wait()

	// assert
	created := 0
	for _, result := range results {
		assert.Equal(t, results[0].BorrowerID, result.BorrowerID)
		if result.Created {
			created++
		}
	}
	assert.Equal(t, 1, created)
}
