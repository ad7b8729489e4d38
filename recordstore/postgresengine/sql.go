package postgresengine

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

const (
	dialectPostgres      = "postgres"
	colID                = "id"
	colTitle             = "title"
	colAuthor            = "author"
	colCategory          = "category"
	colReserved          = "reserved"
	colLentTo            = "lent_to"
	colDue               = "due"
	colExtensions        = "extensions"
	colName              = "name"
	colRole              = "role"
	colBooksBorrowed     = "books_borrowed"
	colVersion           = "version"
	colCreatedAt         = "created_at"
	castTimestamp        = "?::timestamp with time zone"
	castJsonb            = "?::jsonb"
	exprVersionIncrement = "version + 1"
	initialVersion       = 1
)

func (rs RecordStore) buildSelectBooksQuery(where ...goqu.Expression) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(rs.booksTableName).
		Select(colID, colTitle, colAuthor, colCategory, colReserved, colLentTo, colDue, colExtensions, colVersion, colCreatedAt).
		Order(goqu.I(colTitle).Asc(), goqu.I(colAuthor).Asc())

	if len(where) > 0 {
		selectStmt = selectStmt.Where(goqu.And(where...))
	}

	return rs.toSQL(selectStmt)
}

func (rs RecordStore) buildSelectBorrowersQuery(where ...goqu.Expression) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(rs.borrowersTableName).
		Select(colID, colName, colRole, colBooksBorrowed, colVersion, colCreatedAt)

	if len(where) > 0 {
		selectStmt = selectStmt.Where(goqu.And(where...))
	}

	return rs.toSQL(selectStmt)
}

// buildInsertBookQuery relies on the unique (title, author) constraint: a duplicate affects no row.
func (rs RecordStore) buildInsertBookQuery(book recordstore.BookRecord) (sqlQueryString, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(rs.booksTableName).
		Rows(goqu.Record{
			colID:         book.BookID,
			colTitle:      book.Title,
			colAuthor:     book.Author,
			colCategory:   book.Category,
			colReserved:   false,
			colLentTo:     nil,
			colDue:        nil,
			colExtensions: 0,
			colVersion:    initialVersion,
		}).
		OnConflict(goqu.DoNothing())

	return rs.toSQL(insertStmt)
}

// buildInsertBorrowerQuery relies on the unique (name, role) constraint: a duplicate affects no row.
func (rs RecordStore) buildInsertBorrowerQuery(borrower recordstore.BorrowerRecord) (sqlQueryString, error) {
	borrowedBooksJSON, err := encodeBorrowedBooks(borrower.BorrowedBooks)
	if err != nil {
		return "", err
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(rs.borrowersTableName).
		Rows(goqu.Record{
			colID:            borrower.BorrowerID,
			colName:          borrower.Name,
			colRole:          borrower.Role,
			colBooksBorrowed: goqu.L(castJsonb, borrowedBooksJSON),
			colVersion:       initialVersion,
		}).
		OnConflict(goqu.DoNothing())

	return rs.toSQL(insertStmt)
}

// buildUpdateBookQuery writes the lending state, conditional on the version that was read.
// Title, author and category never change after insert.
func (rs RecordStore) buildUpdateBookQuery(book recordstore.BookRecord) (sqlQueryString, error) {
	var lentTo, due any

	if book.CurrentBorrower != "" {
		lentTo = book.CurrentBorrower
	}

	if book.HasDueDate() {
		due = goqu.L(castTimestamp, book.DueAt.UTC())
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(rs.booksTableName).
		Set(goqu.Record{
			colReserved:   book.Reserved,
			colLentTo:     lentTo,
			colDue:        due,
			colExtensions: book.Extensions,
			colVersion:    goqu.L(exprVersionIncrement),
		}).
		Where(
			goqu.C(colID).Eq(book.BookID),
			goqu.C(colVersion).Eq(book.Version),
		)

	return rs.toSQL(updateStmt)
}

func (rs RecordStore) buildUpdateBorrowerQuery(borrower recordstore.BorrowerRecord) (sqlQueryString, error) {
	borrowedBooksJSON, err := encodeBorrowedBooks(borrower.BorrowedBooks)
	if err != nil {
		return "", err
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(rs.borrowersTableName).
		Set(goqu.Record{
			colBooksBorrowed: goqu.L(castJsonb, borrowedBooksJSON),
			colVersion:       goqu.L(exprVersionIncrement),
		}).
		Where(
			goqu.C(colID).Eq(borrower.BorrowerID),
			goqu.C(colVersion).Eq(borrower.Version),
		)

	return rs.toSQL(updateStmt)
}

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func (rs RecordStore) toSQL(stmt sqlBuilder) (sqlQueryString, error) {
	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		if rs.logger != nil {
			rs.logger.Error(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		}

		return "", errors.Join(recordstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func criteriaExpressions(criteria recordstore.BookCriteria) []goqu.Expression {
	expressions := make([]goqu.Expression, 0, 2)

	if criteria.HasTitle() {
		expressions = append(expressions, goqu.C(colTitle).Eq(criteria.Title()))
	}

	if criteria.HasAuthor() {
		expressions = append(expressions, goqu.C(colAuthor).Eq(criteria.Author()))
	}

	return expressions
}

func encodeBorrowedBooks(bookIDs []string) (string, error) {
	if bookIDs == nil {
		bookIDs = []string{}
	}

	encoded, err := jsoniter.ConfigFastest.Marshal(bookIDs)
	if err != nil {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, err)
	}

	return string(encoded), nil
}
