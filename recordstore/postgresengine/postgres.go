package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/recordstore"
	"github.com/AntonStoeckl/library-lending-go/recordstore/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName     = "books"
	defaultBorrowersTableName = "borrowers"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// RecordStore persists book and borrower records in PostgreSQL.
//
// It works with pgx.Pool, sql.DB (lib/pq) or sqlx.DB. All SQL is built with goqu.
// Updates are conditional on the record's Version; UpdateLoan writes a book and a
// borrower in one transaction so that a loan is never recorded on one side only.
type RecordStore struct {
	db                 adapters.DBAdapter
	booksTableName     string
	borrowersTableName string
	logger             recordstore.Logger
	contextualLogger   recordstore.ContextualLogger
	metricsCollector   recordstore.MetricsCollector
	tracingCollector   recordstore.TracingCollector
}

type bookRow struct {
	id         string
	title      string
	author     string
	category   string
	reserved   bool
	lentTo     sql.NullString
	due        sql.NullTime
	extensions int64
	version    int64
	createdAt  time.Time
}

func (r bookRow) toRecord() recordstore.BookRecord {
	record := recordstore.BookRecord{
		BookID:     r.id,
		Title:      r.title,
		Author:     r.author,
		Category:   r.category,
		Reserved:   r.reserved,
		Extensions: int(r.extensions),
		Version:    recordstore.VersionUint(r.version),
		CreatedAt:  r.createdAt,
	}

	if r.lentTo.Valid {
		record.CurrentBorrower = r.lentTo.String
	}

	if r.due.Valid {
		record.DueAt = r.due.Time.UTC()
	}

	return record
}

type borrowerRow struct {
	id            string
	name          string
	role          string
	booksBorrowed []byte
	version       int64
	createdAt     time.Time
}

func (r borrowerRow) toRecord() (recordstore.BorrowerRecord, error) {
	borrowedBooks := make([]string, 0)

	if len(r.booksBorrowed) > 0 {
		if err := jsoniter.ConfigFastest.Unmarshal(r.booksBorrowed, &borrowedBooks); err != nil {
			return recordstore.BorrowerRecord{}, errors.Join(recordstore.ErrDecodingRecordFailed, err)
		}
	}

	return recordstore.BorrowerRecord{
		BorrowerID:    r.id,
		Name:          r.name,
		Role:          r.role,
		BorrowedBooks: borrowedBooks,
		Version:       recordstore.VersionUint(r.version),
		CreatedAt:     r.createdAt,
	}, nil
}

// NewRecordStoreFromPGXPool creates a new RecordStore using a pgx Pool with optional configuration.
func NewRecordStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (RecordStore, error) {
	if db == nil {
		return RecordStore{}, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewPGXAdapter(db), options...)
}

// NewRecordStoreFromPGXPoolAndReplica creates a RecordStore whose eventually consistent
// reads are served by the replica pool.
func NewRecordStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (RecordStore, error) {
	if db == nil || replica == nil {
		return RecordStore{}, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewRecordStoreFromSQLDB creates a new RecordStore using a sql.DB with optional configuration.
func NewRecordStoreFromSQLDB(db *sql.DB, options ...Option) (RecordStore, error) {
	if db == nil {
		return RecordStore{}, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewSQLAdapter(db), options...)
}

// NewRecordStoreFromSQLX creates a new RecordStore using a sqlx.DB with optional configuration.
func NewRecordStoreFromSQLX(db *sqlx.DB, options ...Option) (RecordStore, error) {
	if db == nil {
		return RecordStore{}, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewSQLXAdapter(db), options...)
}

func newRecordStore(db adapters.DBAdapter, options ...Option) (RecordStore, error) {
	rs := RecordStore{
		db:                 db,
		booksTableName:     defaultBooksTableName,
		borrowersTableName: defaultBorrowersTableName,
	}

	for _, option := range options {
		if err := option(&rs); err != nil {
			return RecordStore{}, err
		}
	}

	return rs, nil
}

// GetBook reads one book. It returns recordstore.ErrRecordNotFound if the id is unknown.
func (rs RecordStore) GetBook(ctx context.Context, bookID string) (recordstore.BookRecord, error) {
	if bookID == "" {
		return recordstore.BookRecord{}, recordstore.ErrEmptyRecordIDSupplied
	}

	obs, ctx := rs.startObservation(ctx, operationGetBook)

	books, err := rs.selectBooks(ctx, rs.db, goqu.C(colID).Eq(bookID))
	if err != nil {
		obs.finishError(err)
		return recordstore.BookRecord{}, err
	}

	if len(books) == 0 {
		obs.finishNotFound()
		return recordstore.BookRecord{}, recordstore.ErrRecordNotFound
	}

	obs.finishSuccess(1)

	return books[0], nil
}

// GetBooks reads all books with the given ids, ordered by title. Unknown ids are skipped.
func (rs RecordStore) GetBooks(ctx context.Context, bookIDs []string) (recordstore.BookRecords, error) {
	if len(bookIDs) == 0 {
		return recordstore.BookRecords{}, nil
	}

	obs, ctx := rs.startObservation(ctx, operationGetBooks)

	books, err := rs.selectBooks(ctx, rs.db, goqu.C(colID).In(bookIDs))
	if err != nil {
		obs.finishError(err)
		return nil, err
	}

	obs.finishSuccess(len(books))

	return books, nil
}

// FindBooks returns the books matching criteria, ordered by title and author.
func (rs RecordStore) FindBooks(ctx context.Context, criteria recordstore.BookCriteria) (recordstore.BookRecords, error) {
	obs, ctx := rs.startObservation(ctx, operationFindBooks)

	books, err := rs.selectBooks(ctx, rs.db, criteriaExpressions(criteria)...)
	if err != nil {
		obs.finishError(err)
		return nil, err
	}

	obs.finishSuccess(len(books))

	return books, nil
}

// GetBorrower reads one borrower. It returns recordstore.ErrRecordNotFound if the id is unknown.
func (rs RecordStore) GetBorrower(ctx context.Context, borrowerID string) (recordstore.BorrowerRecord, error) {
	if borrowerID == "" {
		return recordstore.BorrowerRecord{}, recordstore.ErrEmptyRecordIDSupplied
	}

	obs, ctx := rs.startObservation(ctx, operationGetBorrower)

	borrowers, err := rs.selectBorrowers(ctx, rs.db, goqu.C(colID).Eq(borrowerID))
	if err != nil {
		obs.finishError(err)
		return recordstore.BorrowerRecord{}, err
	}

	if len(borrowers) == 0 {
		obs.finishNotFound()
		return recordstore.BorrowerRecord{}, recordstore.ErrRecordNotFound
	}

	obs.finishSuccess(1)

	return borrowers[0], nil
}

// InsertBookIfAbsent inserts the book unless a book with the same title and author exists.
// It returns the stored record and whether this call created it.
func (rs RecordStore) InsertBookIfAbsent(ctx context.Context, book recordstore.BookRecord) (recordstore.BookRecord, bool, error) {
	if book.BookID == "" {
		return recordstore.BookRecord{}, false, recordstore.ErrEmptyRecordIDSupplied
	}

	obs, ctx := rs.startObservation(ctx, operationInsertBook)

	sqlQuery, err := rs.buildInsertBookQuery(book)
	if err != nil {
		obs.finishError(err)
		return recordstore.BookRecord{}, false, err
	}

	rowsAffected, err := rs.execStatement(ctx, rs.db, sqlQuery, logActionInsert)
	if err != nil {
		obs.finishError(errors.Join(recordstore.ErrInsertingRecordFailed, err))
		return recordstore.BookRecord{}, false, errors.Join(recordstore.ErrInsertingRecordFailed, err)
	}

	// The row that won the unique constraint is read back from the primary.
	stored, err := rs.selectBooks(
		recordstore.WithStrongConsistency(ctx),
		rs.db,
		goqu.C(colTitle).Eq(book.Title),
		goqu.C(colAuthor).Eq(book.Author),
	)
	if err != nil {
		obs.finishError(err)
		return recordstore.BookRecord{}, false, err
	}

	if len(stored) == 0 {
		obs.finishNotFound()
		return recordstore.BookRecord{}, false, recordstore.ErrRecordNotFound
	}

	created := rowsAffected == 1
	obs.finishSuccess(1)
	rs.logOperation(ctx, logMsgBookInserted, logAttrBookID, stored[0].BookID, logAttrCreated, created)

	return stored[0], created, nil
}

// InsertBorrowerIfAbsent inserts the borrower unless one with the same name and role exists.
// It returns the stored record and whether this call created it.
func (rs RecordStore) InsertBorrowerIfAbsent(
	ctx context.Context,
	borrower recordstore.BorrowerRecord,
) (recordstore.BorrowerRecord, bool, error) {

	if borrower.BorrowerID == "" {
		return recordstore.BorrowerRecord{}, false, recordstore.ErrEmptyRecordIDSupplied
	}

	obs, ctx := rs.startObservation(ctx, operationInsertBorrower)

	sqlQuery, err := rs.buildInsertBorrowerQuery(borrower)
	if err != nil {
		obs.finishError(err)
		return recordstore.BorrowerRecord{}, false, err
	}

	rowsAffected, err := rs.execStatement(ctx, rs.db, sqlQuery, logActionInsert)
	if err != nil {
		obs.finishError(errors.Join(recordstore.ErrInsertingRecordFailed, err))
		return recordstore.BorrowerRecord{}, false, errors.Join(recordstore.ErrInsertingRecordFailed, err)
	}

	stored, err := rs.selectBorrowers(
		recordstore.WithStrongConsistency(ctx),
		rs.db,
		goqu.C(colName).Eq(borrower.Name),
		goqu.C(colRole).Eq(borrower.Role),
	)
	if err != nil {
		obs.finishError(err)
		return recordstore.BorrowerRecord{}, false, err
	}

	if len(stored) == 0 {
		obs.finishNotFound()
		return recordstore.BorrowerRecord{}, false, recordstore.ErrRecordNotFound
	}

	created := rowsAffected == 1
	obs.finishSuccess(1)
	rs.logOperation(ctx, logMsgBorrowerInserted, logAttrBorrowerID, stored[0].BorrowerID, logAttrCreated, created)

	return stored[0], created, nil
}

// UpdateBook writes the book if its stored version still equals book.Version.
// Otherwise, it returns recordstore.ErrConcurrencyConflict.
func (rs RecordStore) UpdateBook(ctx context.Context, book recordstore.BookRecord) error {
	obs, ctx := rs.startObservation(ctx, operationUpdateBook)

	if err := rs.updateBook(ctx, rs.db, book); err != nil {
		obs.finishError(err)
		return err
	}

	obs.finishSuccess(1)

	return nil
}

// UpdateLoan writes both sides of a loan in one transaction. Each row update is
// conditional on its version; if either one affects no row, neither is written
// and recordstore.ErrConcurrencyConflict is returned.
func (rs RecordStore) UpdateLoan(
	ctx context.Context,
	book recordstore.BookRecord,
	borrower recordstore.BorrowerRecord,
) error {

	obs, ctx := rs.startObservation(ctx, operationUpdateLoan)

	txErr := rs.db.InTx(ctx, func(tx adapters.DBExecutor) error {
		if err := rs.updateBook(ctx, tx, book); err != nil {
			return err
		}

		return rs.updateBorrower(ctx, tx, borrower)
	})

	if txErr != nil {
		if !errors.Is(txErr, recordstore.ErrConcurrencyConflict) &&
			!errors.Is(txErr, recordstore.ErrUpdatingRecordFailed) &&
			!errors.Is(txErr, recordstore.ErrBuildingQueryFailed) {

			txErr = errors.Join(recordstore.ErrTransactionFailed, txErr)
		}

		obs.finishError(txErr)

		return txErr
	}

	obs.finishSuccess(2)

	return nil
}

func (rs RecordStore) updateBook(ctx context.Context, exec adapters.DBExecutor, book recordstore.BookRecord) error {
	sqlQuery, err := rs.buildUpdateBookQuery(book)
	if err != nil {
		return err
	}

	rowsAffected, err := rs.execStatement(ctx, exec, sqlQuery, logActionUpdate)
	if err != nil {
		return errors.Join(recordstore.ErrUpdatingRecordFailed, err)
	}

	return rs.validateUpdateResult(ctx, rowsAffected, logAttrBookID, book.BookID, book.Version)
}

func (rs RecordStore) updateBorrower(ctx context.Context, exec adapters.DBExecutor, borrower recordstore.BorrowerRecord) error {
	sqlQuery, err := rs.buildUpdateBorrowerQuery(borrower)
	if err != nil {
		return err
	}

	rowsAffected, err := rs.execStatement(ctx, exec, sqlQuery, logActionUpdate)
	if err != nil {
		return errors.Join(recordstore.ErrUpdatingRecordFailed, err)
	}

	return rs.validateUpdateResult(ctx, rowsAffected, logAttrBorrowerID, borrower.BorrowerID, borrower.Version)
}

// validateUpdateResult detects concurrency conflicts of versioned updates.
func (rs RecordStore) validateUpdateResult(
	ctx context.Context,
	rowsAffected rowsAffectedInt64,
	idAttr string,
	id string,
	expectedVersion recordstore.VersionUint,
) error {

	if rowsAffected < 1 {
		rs.logOperation(
			ctx,
			logMsgConcurrencyConflict,
			idAttr, id,
			logAttrExpectedVersion, expectedVersion,
			logAttrRowsAffected, rowsAffected,
		)

		return recordstore.ErrConcurrencyConflict
	}

	return nil
}

func (rs RecordStore) selectBooks(
	ctx context.Context,
	exec adapters.DBExecutor,
	where ...goqu.Expression,
) (recordstore.BookRecords, error) {

	sqlQuery, err := rs.buildSelectBooksQuery(where...)
	if err != nil {
		return nil, err
	}

	rows, err := rs.executeQuery(ctx, exec, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer rs.closeRows(ctx, rows)

	books := make(recordstore.BookRecords, 0)
	row := bookRow{}

	for rows.Next() {
		scanErr := rows.Scan(
			&row.id, &row.title, &row.author, &row.category, &row.reserved,
			&row.lentTo, &row.due, &row.extensions, &row.version, &row.createdAt,
		)
		if scanErr != nil {
			rs.logError(ctx, logMsgScanRowFailed, scanErr)
			return nil, errors.Join(recordstore.ErrScanningDBRowFailed, scanErr)
		}

		books = append(books, row.toRecord())
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		rs.logError(ctx, logMsgDBQueryFailed, rowsErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(recordstore.ErrQueryingRecordsFailed, rowsErr)
	}

	return books, nil
}

func (rs RecordStore) selectBorrowers(
	ctx context.Context,
	exec adapters.DBExecutor,
	where ...goqu.Expression,
) ([]recordstore.BorrowerRecord, error) {

	sqlQuery, err := rs.buildSelectBorrowersQuery(where...)
	if err != nil {
		return nil, err
	}

	rows, err := rs.executeQuery(ctx, exec, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer rs.closeRows(ctx, rows)

	borrowers := make([]recordstore.BorrowerRecord, 0)

	for rows.Next() {
		row := borrowerRow{}

		scanErr := rows.Scan(&row.id, &row.name, &row.role, &row.booksBorrowed, &row.version, &row.createdAt)
		if scanErr != nil {
			rs.logError(ctx, logMsgScanRowFailed, scanErr)
			return nil, errors.Join(recordstore.ErrScanningDBRowFailed, scanErr)
		}

		record, decodeErr := row.toRecord()
		if decodeErr != nil {
			rs.logError(ctx, logMsgDecodeBorrowedBooksFailed, decodeErr, logAttrBorrowerID, row.id)
			return nil, decodeErr
		}

		borrowers = append(borrowers, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		rs.logError(ctx, logMsgDBQueryFailed, rowsErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(recordstore.ErrQueryingRecordsFailed, rowsErr)
	}

	return borrowers, nil
}

// executeQuery executes the SQL query and logs it with its duration.
func (rs RecordStore) executeQuery(ctx context.Context, exec adapters.DBExecutor, sqlQuery sqlQueryString) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := exec.Query(ctx, sqlQuery)
	rs.logQueryWithDuration(ctx, sqlQuery, logActionSelect, time.Since(start))

	if queryErr != nil {
		rs.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(recordstore.ErrQueryingRecordsFailed, queryErr)
	}

	return rows, nil
}

// execStatement executes an insert or update and returns the number of affected rows.
func (rs RecordStore) execStatement(
	ctx context.Context,
	exec adapters.DBExecutor,
	sqlQuery sqlQueryString,
	action string,
) (rowsAffectedInt64, error) {

	start := time.Now()
	result, execErr := exec.Exec(ctx, sqlQuery)
	rs.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if execErr != nil {
		rs.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		rs.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, errors.Join(recordstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// closeRows closes database rows and logs any errors.
func (rs RecordStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		rs.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}
