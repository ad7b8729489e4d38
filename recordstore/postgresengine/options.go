package postgresengine

import (
	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// Option defines a functional option for configuring RecordStore.
type Option func(*RecordStore) error

// WithBooksTableName sets the table name for book records.
func WithBooksTableName(tableName string) Option {
	return func(rs *RecordStore) error {
		if tableName == "" {
			return recordstore.ErrEmptyTableNameSupplied
		}

		rs.booksTableName = tableName

		return nil
	}
}

// WithBorrowersTableName sets the table name for borrower records.
func WithBorrowersTableName(tableName string) Option {
	return func(rs *RecordStore) error {
		if tableName == "" {
			return recordstore.ErrEmptyTableNameSupplied
		}

		rs.borrowersTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the RecordStore.
//
// Debug level: SQL statements with execution timing
// Info level: record counts, durations, concurrency conflicts
// Warn level: cleanup failures
// Error level: failures that abort the operation.
func WithLogger(logger recordstore.Logger) Option {
	return func(rs *RecordStore) error {
		rs.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, preferred over the plain Logger
// so that log lines carry trace and span ids.
func WithContextualLogger(logger recordstore.ContextualLogger) Option {
	return func(rs *RecordStore) error {
		rs.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the RecordStore.
func WithMetrics(collector recordstore.MetricsCollector) Option {
	return func(rs *RecordStore) error {
		rs.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the RecordStore.
func WithTracing(collector recordstore.TracingCollector) Option {
	return func(rs *RecordStore) error {
		rs.tracingCollector = collector
		return nil
	}
}
