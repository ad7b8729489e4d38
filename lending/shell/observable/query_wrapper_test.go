package observable_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/internal/testutil/spies"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/lending/shell/observable"
)

type testQuery struct{}

func (testQuery) QueryType() string { return "TestQuery" }

type testQueryResult struct {
	items []string
}

func (r testQueryResult) ItemCount() int { return len(r.items) }

type queryHandlerStub struct {
	result testQueryResult
	err    error
}

func (h queryHandlerStub) Handle(_ context.Context, _ testQuery) (testQueryResult, error) {
	return h.result, h.err
}

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	metrics := spies.NewMetricsCollectorSpy()
	logs := spies.NewLogHandlerSpy(false)

	wrapper, err := observable.NewQueryWrapper[testQuery, testQueryResult](
		queryHandlerStub{result: testQueryResult{items: []string{"a", "b"}}},
		observable.WithQueryMetrics[testQuery, testQueryResult](metrics),
		observable.WithQueryLogging[testQuery, testQueryResult](slog.New(logs)),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(t.Context(), testQuery{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.ItemCount())
	assert.True(t, metrics.HasCounterRecord(shell.QueryHandlerCallsMetric,
		map[string]string{shell.LogAttrQueryType: "TestQuery", shell.LogAttrStatus: shell.StatusSuccess}))

	record := logs.FindLog(slog.LevelInfo, shell.LogMsgQueryCompleted)
	require.NotNil(t, record)
	count, ok := spies.AttrValue(record, shell.LogAttrItemCount)
	assert.True(t, ok)
	assert.Equal(t, "2", count)
}

func Test_QueryWrapper_Handle_NotFound(t *testing.T) {
	// arrange
	metrics := spies.NewMetricsCollectorSpy()
	tracing := spies.NewTracingCollectorSpy()

	wrapper, err := observable.NewQueryWrapper[testQuery, testQueryResult](
		queryHandlerStub{err: core.ErrBorrowerNotFound},
		observable.WithQueryMetrics[testQuery, testQueryResult](metrics),
		observable.WithQueryTracing[testQuery, testQueryResult](tracing),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(t.Context(), testQuery{})

	// assert
	assert.ErrorIs(t, err, core.ErrBorrowerNotFound)
	assert.True(t, metrics.HasCounterRecord(shell.QueryHandlerCallsMetric,
		map[string]string{shell.LogAttrStatus: shell.StatusNotFound}))

	span := tracing.FindSpan(shell.SpanNameQueryHandle)
	require.NotNil(t, span)
	assert.Equal(t, shell.StatusNotFound, span.Status)
}
