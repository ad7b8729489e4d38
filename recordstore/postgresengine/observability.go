package postgresengine

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

const (
	metricOperationDuration    = "recordstore_operation_duration_seconds"
	metricRecordsRead          = "recordstore_records_total"
	metricDatabaseErrors       = "recordstore_database_errors_total"
	metricConcurrencyConflicts = "recordstore_concurrency_conflicts_total"

	spanNamePrefix       = "recordstore."
	spanAttrOperation    = "operation"
	spanAttrRecordCount  = "record_count"
	spanAttrErrorType    = "error_type"
	spanAttrDurationMS   = "duration_ms"
	labelStatus          = "status"
	labelConflictType    = "conflict_type"
	conflictTypeVersion  = "version"
	statusSuccess        = "success"
	statusError          = "error"
	statusNotFound       = "not_found"
	statusConflict       = "conflict"
	errorTypeConflict    = "concurrency_conflict"
	errorTypeBuildQuery  = "build_query"
	errorTypeQuery       = "query"
	errorTypeScan        = "scan"
	errorTypeDecode      = "decode"
	errorTypeInsert      = "insert"
	errorTypeUpdate      = "update"
	errorTypeTransaction = "transaction"
	errorTypeCanceled    = "canceled"
	errorTypeTimeout     = "timeout"
	errorTypeUnknown     = "unknown"

	operationGetBook        = "get_book"
	operationGetBooks       = "get_books"
	operationFindBooks      = "find_books"
	operationGetBorrower    = "get_borrower"
	operationInsertBook     = "insert_book"
	operationInsertBorrower = "insert_borrower"
	operationUpdateBook     = "update_book"
	operationUpdateLoan     = "update_loan"

	logMsgBuildQueryFailed          = "failed to build sql query"
	logMsgDBQueryFailed             = "database query execution failed"
	logMsgDBExecFailed              = "database statement execution failed"
	logMsgCloseRowsFailed           = "failed to close database rows"
	logMsgScanRowFailed             = "failed to scan database row"
	logMsgDecodeBorrowedBooksFailed = "failed to decode borrowed books column"
	logMsgRowsAffectedFailed        = "failed to get rows affected count"
	logMsgConcurrencyConflict       = "concurrency conflict detected"
	logMsgBookInserted              = "book insert completed"
	logMsgBorrowerInserted          = "borrower insert completed"
	logMsgSchemaEnsured             = "schema ensured"
	logMsgOperationCompleted        = "operation completed"
	logMsgSQLExecuted               = "executed sql for: "
	logMsgOperation                 = "recordstore operation: "
	logAttrError                    = "error"
	logAttrQuery                    = "query"
	logAttrOperation                = "operation"
	logAttrRecordCount              = "record_count"
	logAttrDurationMS               = "duration_ms"
	logAttrBookID                   = "book_id"
	logAttrBorrowerID               = "borrower_id"
	logAttrCreated                  = "created"
	logAttrExpectedVersion          = "expected_version"
	logAttrRowsAffected             = "rows_affected"
	logAttrTable                    = "table"
	logActionSelect                 = "select"
	logActionInsert                 = "insert"
	logActionUpdate                 = "update"
	logActionMigrate                = "migrate"
)

// === Logging ===
// The contextual logger is preferred when configured so that log lines are trace-correlated.

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (rs RecordStore) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	switch {
	case rs.contextualLogger != nil:
		rs.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	case rs.logger != nil:
		rs.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level.
func (rs RecordStore) logOperation(ctx context.Context, action string, args ...any) {
	switch {
	case rs.contextualLogger != nil:
		rs.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	case rs.logger != nil:
		rs.logger.Info(logMsgOperation+action, args...)
	}
}

func (rs RecordStore) logWarn(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	switch {
	case rs.contextualLogger != nil:
		rs.contextualLogger.WarnContext(ctx, message, allArgs...)
	case rs.logger != nil:
		rs.logger.Warn(message, allArgs...)
	}
}

func (rs RecordStore) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	switch {
	case rs.contextualLogger != nil:
		rs.contextualLogger.ErrorContext(ctx, message, allArgs...)
	case rs.logger != nil:
		rs.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// === Operation observer ===
// One observer per store operation records its duration, its outcome and a tracing span.

type operationObserver struct {
	rs        RecordStore
	ctx       context.Context
	operation string
	start     time.Time
	span      recordstore.SpanContext
}

func (rs RecordStore) startObservation(ctx context.Context, operation string) (*operationObserver, context.Context) {
	obs := &operationObserver{
		rs:        rs,
		ctx:       ctx,
		operation: operation,
		start:     time.Now(),
	}

	if rs.tracingCollector != nil {
		spanCtx, span := rs.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
			spanAttrOperation: operation,
		})
		obs.ctx = spanCtx
		obs.span = span
	}

	return obs, obs.ctx
}

func (o *operationObserver) finishSuccess(recordCount int) {
	duration := time.Since(o.start)

	o.recordDuration(duration, statusSuccess)
	o.recordValue(metricRecordsRead, float64(recordCount), statusSuccess)
	o.finishSpan(statusSuccess, map[string]string{
		spanAttrRecordCount: strconv.Itoa(recordCount),
		spanAttrDurationMS:  strconv.FormatFloat(toMilliseconds(duration), 'f', 2, 64),
	})

	o.rs.logOperation(
		o.ctx,
		logMsgOperationCompleted,
		logAttrOperation, o.operation,
		logAttrRecordCount, recordCount,
		logAttrDurationMS, toMilliseconds(duration),
	)
}

func (o *operationObserver) finishNotFound() {
	o.recordDuration(time.Since(o.start), statusNotFound)
	o.finishSpan(statusNotFound, nil)
}

func (o *operationObserver) finishError(err error) {
	errorType := classifyError(err)

	if errorType == errorTypeConflict {
		o.recordDuration(time.Since(o.start), statusConflict)
		o.incrementCounter(metricConcurrencyConflicts, map[string]string{
			spanAttrOperation: o.operation,
			labelConflictType: conflictTypeVersion,
		})
		o.finishSpan(statusConflict, map[string]string{spanAttrErrorType: errorType})

		return
	}

	o.recordDuration(time.Since(o.start), statusError)
	o.incrementCounter(metricDatabaseErrors, map[string]string{
		spanAttrOperation: o.operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
	o.finishSpan(statusError, map[string]string{spanAttrErrorType: errorType})
}

func (o *operationObserver) recordDuration(duration time.Duration, status string) {
	if o.rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: o.operation, labelStatus: status}

	if contextual, ok := o.rs.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(o.ctx, metricOperationDuration, duration, labels)
		return
	}

	o.rs.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

func (o *operationObserver) recordValue(metric string, value float64, status string) {
	if o.rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: o.operation, labelStatus: status}

	if contextual, ok := o.rs.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(o.ctx, metric, value, labels)
		return
	}

	o.rs.metricsCollector.RecordValue(metric, value, labels)
}

func (o *operationObserver) incrementCounter(metric string, labels map[string]string) {
	if o.rs.metricsCollector == nil {
		return
	}

	if contextual, ok := o.rs.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(o.ctx, metric, labels)
		return
	}

	o.rs.metricsCollector.IncrementCounter(metric, labels)
}

func (o *operationObserver) finishSpan(status string, attrs map[string]string) {
	if o.rs.tracingCollector == nil || o.span == nil {
		return
	}

	o.rs.tracingCollector.FinishSpan(o.span, status, attrs)
}

func classifyError(err error) string {
	switch {
	case errors.Is(err, recordstore.ErrConcurrencyConflict):
		return errorTypeConflict
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeTimeout
	case errors.Is(err, recordstore.ErrBuildingQueryFailed):
		return errorTypeBuildQuery
	case errors.Is(err, recordstore.ErrScanningDBRowFailed):
		return errorTypeScan
	case errors.Is(err, recordstore.ErrDecodingRecordFailed):
		return errorTypeDecode
	case errors.Is(err, recordstore.ErrQueryingRecordsFailed):
		return errorTypeQuery
	case errors.Is(err, recordstore.ErrInsertingRecordFailed):
		return errorTypeInsert
	case errors.Is(err, recordstore.ErrUpdatingRecordFailed):
		return errorTypeUpdate
	case errors.Is(err, recordstore.ErrTransactionFailed):
		return errorTypeTransaction
	default:
		return errorTypeUnknown
	}
}
