// Package oteladapters implements the recordstore observability interfaces with OpenTelemetry.
//
// The record store and the lending service depend only on the small interfaces in
// package recordstore. This package plugs them into an OpenTelemetry MeterProvider,
// TracerProvider and LoggerProvider:
//
//	meter := otel.Meter("library-lending")
//	tracer := otel.Tracer("library-lending")
//
//	store, _ := postgresengine.NewRecordStoreFromPGXPool(
//		pool,
//		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		postgresengine.WithTracing(oteladapters.NewTracingCollector(tracer)),
//		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("library-lending")),
//	)
package oteladapters
