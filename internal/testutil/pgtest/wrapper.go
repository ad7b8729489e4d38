// Package pgtest opens a PostgreSQL-backed RecordStore for integration tests.
//
// Tests are skipped unless LENDING_TEST_POSTGRES_DSN is set. ADAPTER_TYPE selects
// the database library: pgxpool (default), sqldb or sqlx. Every wrapper gets its own
// pair of tables which are dropped again when the test finishes.
package pgtest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/recordstore/postgresengine"
)

const (
	EnvDSN         = "LENDING_TEST_POSTGRES_DSN"
	EnvAdapterType = "ADAPTER_TYPE"

	typePGXPool = "pgxpool"
	typeSQLDB   = "sqldb"
	typeSQLX    = "sqlx"
)

// Wrapper hides which database library backs the store.
type Wrapper struct {
	Store              postgresengine.RecordStore
	BooksTableName     string
	BorrowersTableName string
	exec               func(ctx context.Context, statement string) error
	closeFn            func()
}

// Exec runs a raw statement, used by tests to arrange rows the store would never write.
func (w *Wrapper) Exec(t testing.TB, statement string) {
	t.Helper()
	require.NoError(t, w.exec(context.Background(), statement))
}

// CreateWrapper opens the configured database, creates fresh tables and registers cleanup.
func CreateWrapper(t testing.TB, options ...postgresengine.Option) *Wrapper {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set, skipping postgres integration test", EnvDSN)
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	w := &Wrapper{
		BooksTableName:     "books_" + suffix,
		BorrowersTableName: "borrowers_" + suffix,
	}

	options = append(
		[]postgresengine.Option{
			postgresengine.WithBooksTableName(w.BooksTableName),
			postgresengine.WithBorrowersTableName(w.BorrowersTableName),
		},
		options...,
	)

	var err error
	adapterType := strings.ToLower(os.Getenv(EnvAdapterType))

	switch adapterType {
	case typePGXPool, "":
		pool, poolErr := pgxpool.New(context.Background(), dsn)
		require.NoError(t, poolErr, "error connecting to DB pool in test setup")

		w.Store, err = postgresengine.NewRecordStoreFromPGXPool(pool, options...)
		w.exec = func(ctx context.Context, statement string) error {
			_, execErr := pool.Exec(ctx, statement)
			return execErr
		}
		w.closeFn = pool.Close

	case typeSQLDB:
		db, openErr := sql.Open("postgres", dsn)
		require.NoError(t, openErr, "error opening DB in test setup")

		w.Store, err = postgresengine.NewRecordStoreFromSQLDB(db, options...)
		w.exec = func(ctx context.Context, statement string) error {
			_, execErr := db.ExecContext(ctx, statement)
			return execErr
		}
		w.closeFn = func() { _ = db.Close() }

	case typeSQLX:
		db, openErr := sqlx.Open("postgres", dsn)
		require.NoError(t, openErr, "error opening DB in test setup")

		w.Store, err = postgresengine.NewRecordStoreFromSQLX(db, options...)
		w.exec = func(ctx context.Context, statement string) error {
			_, execErr := db.ExecContext(ctx, statement)
			return execErr
		}
		w.closeFn = func() { _ = db.Close() }

	default:
		t.Fatalf("unsupported adapter type from env: %s", adapterType)
	}

	require.NoError(t, err, "creating the record store failed")
	require.NoError(t, w.Store.EnsureSchema(context.Background()), "creating the schema failed")

	t.Cleanup(func() {
		for _, table := range []string{w.BooksTableName, w.BorrowersTableName} {
			_ = w.exec(context.Background(), fmt.Sprintf("DROP TABLE IF EXISTS %s", pgx.Identifier{table}.Sanitize()))
		}

		w.closeFn()
	})

	return w
}
