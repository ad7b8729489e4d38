package recordstore

import (
	"errors"
)

var ErrEmptyTableNameSupplied = errors.New("empty table name supplied")
var ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")
var ErrRecordNotFound = errors.New("record not found")
var ErrEmptyRecordIDSupplied = errors.New("empty record id supplied")

// VersionUint is the optimistic concurrency token of a persisted record.
type VersionUint = uint

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrBuildingQueryFailed = errors.New("building the sql query failed")
var ErrQueryingRecordsFailed = errors.New("querying records failed")
var ErrScanningDBRowFailed = errors.New("scanning db row failed")
var ErrDecodingRecordFailed = errors.New("decoding record column failed")
var ErrInsertingRecordFailed = errors.New("inserting record failed")
var ErrUpdatingRecordFailed = errors.New("updating record failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
var ErrTransactionFailed = errors.New("database transaction failed")
var ErrMigratingSchemaFailed = errors.New("migrating schema failed")
