package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

func Test_RetryWithExponentialBackoff_Success_NoRetries(t *testing.T) {
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return nil
	}

	meta, err := RetryWithExponentialBackoff(t.Context(), fn)

	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, time.Duration(0), meta.TotalDelay)
	assert.Equal(t, "none", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_RetryOnConcurrencyConflict(t *testing.T) {
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return errors.Join(recordstore.ErrConcurrencyConflict, errors.New("book version moved"))
		}
		return nil
	}

	meta, err := RetryWithExponentialBackoff(t.Context(), fn, WithBaseDelay(time.Millisecond))

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Greater(t, meta.TotalDelay, time.Duration(0))
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_ExhaustsOnPermanentConflict(t *testing.T) {
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return recordstore.ErrConcurrencyConflict
	}

	meta, err := RetryWithExponentialBackoff(t.Context(), fn, WithMaxAttempts(3), WithBaseDelay(0))

	assert.ErrorIs(t, err, recordstore.ErrConcurrencyConflict)
	assert.Equal(t, 3, callCount)
	assert.True(t, meta.RetriesExhausted)
	assert.Equal(t, "concurrency_conflict", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_FailsFastOnOtherErrors(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedType string
	}{
		{"deadline exceeded", context.DeadlineExceeded, "context_deadline_exceeded"},
		{"canceled", context.Canceled, "context_canceled"},
		{"other", errors.New("boom"), "other"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			callCount := 0

			meta, err := RetryWithExponentialBackoff(t.Context(), func(_ context.Context) error {
				callCount++
				return tc.err
			})

			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, 1, callCount)
			assert.Equal(t, tc.expectedType, meta.LastErrorType)
			assert.False(t, meta.RetriesExhausted)
		})
	}
}

func Test_RetryWithExponentialBackoff_StopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		cancel()
		return recordstore.ErrConcurrencyConflict
	}

	_, err := RetryWithExponentialBackoff(ctx, fn, WithBaseDelay(time.Second))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	fn := func(_ context.Context) error { return nil }

	_, err := RetryWithExponentialBackoff(t.Context(), fn, WithMaxAttempts(0))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)

	_, err = RetryWithExponentialBackoff(t.Context(), fn, WithBaseDelay(-time.Millisecond))
	assert.ErrorIs(t, err, ErrNegativeBaseDelay)

	_, err = RetryWithExponentialBackoff(t.Context(), fn, WithJitterFactor(1.5))
	assert.ErrorIs(t, err, ErrInvalidJitterFactor)
}
