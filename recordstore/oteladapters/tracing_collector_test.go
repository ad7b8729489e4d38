package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/library-lending-go/recordstore/oteladapters"
)

func newTracingCollector() (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(trace.WithSyncer(exporter))

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func spanAttribute(span tracetest.SpanStub, key string) (string, bool) {
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			return attr.Value.AsString(), true
		}
	}

	return "", false
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	collector, exporter := newTracingCollector()

	// act
	_, spanCtx := collector.StartSpan(context.Background(), "recordstore.get_book", map[string]string{"operation": "get_book"})
	spanCtx.AddAttribute("book_id", "b-1")
	collector.FinishSpan(spanCtx, "success", map[string]string{"record_count": "1"})

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "recordstore.get_book", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)

	for key, expected := range map[string]string{"operation": "get_book", "book_id": "b-1", "record_count": "1"} {
		value, found := spanAttribute(spans[0], key)
		assert.True(t, found, key)
		assert.Equal(t, expected, value)
	}
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	tests := []struct {
		status   string
		expected codes.Code
	}{
		{"success", codes.Ok},
		{"denied", codes.Ok},
		{"not_found", codes.Ok},
		{"error", codes.Error},
		{"timeout", codes.Error},
		{"conflict", codes.Error},
		{"canceled", codes.Error},
		{"something_else", codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			collector, exporter := newTracingCollector()

			_, spanCtx := collector.StartSpan(context.Background(), "lending.borrow", nil)
			collector.FinishSpan(spanCtx, tt.status, nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.expected, spans[0].Status.Code)
		})
	}
}

func Test_TracingCollector_NestsSpansThroughContext(t *testing.T) {
	// arrange
	collector, exporter := newTracingCollector()

	// act
	ctx, parent := collector.StartSpan(context.Background(), "lending.borrow", nil)
	_, child := collector.StartSpan(ctx, "recordstore.update_loan", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

func Test_OTelSpanContext_UnknownStatusBecomesAttribute(t *testing.T) {
	collector, exporter := newTracingCollector()

	_, spanCtx := collector.StartSpan(context.Background(), "x", nil)
	collector.FinishSpan(spanCtx, "weird", nil)

	value, found := spanAttribute(exporter.GetSpans()[0], "status")
	assert.True(t, found)
	assert.Equal(t, "weird", value)
}
