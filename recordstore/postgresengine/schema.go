package postgresengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/library-lending-go/recordstore"
)

// booksDDL keeps the lending columns consistent: a reserved book has a borrower and
// a due date, an available one has neither and no extensions.
const booksDDL = `CREATE TABLE IF NOT EXISTS %[1]s (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	author      TEXT NOT NULL,
	category    TEXT NOT NULL,
	reserved    BOOLEAN NOT NULL DEFAULT FALSE,
	lent_to     TEXT NULL,
	due         TIMESTAMP WITH TIME ZONE NULL,
	extensions  INTEGER NOT NULL DEFAULT 0 CHECK (extensions >= 0),
	version     BIGINT NOT NULL DEFAULT 1,
	created_at  TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	CONSTRAINT %[2]s UNIQUE (title, author),
	CONSTRAINT %[3]s CHECK (
		(reserved AND lent_to IS NOT NULL AND due IS NOT NULL)
		OR (NOT reserved AND lent_to IS NULL AND due IS NULL AND extensions = 0)
	)
)`

const borrowersDDL = `CREATE TABLE IF NOT EXISTS %[1]s (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	role            TEXT NOT NULL,
	books_borrowed  JSONB NOT NULL DEFAULT '[]'::jsonb,
	version         BIGINT NOT NULL DEFAULT 1,
	created_at      TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	CONSTRAINT %[2]s UNIQUE (name, role)
)`

// EnsureSchema creates the books and borrowers tables if they don't exist yet.
func (rs RecordStore) EnsureSchema(ctx context.Context) error {
	for _, ddl := range rs.schemaStatements() {
		if _, err := rs.execStatement(ctx, rs.db, ddl, logActionMigrate); err != nil {
			return errors.Join(recordstore.ErrMigratingSchemaFailed, err)
		}
	}

	rs.logOperation(ctx, logMsgSchemaEnsured, logAttrTable, rs.booksTableName, logAttrTable, rs.borrowersTableName)

	return nil
}

func (rs RecordStore) schemaStatements() []string {
	return []string{
		fmt.Sprintf(
			booksDDL,
			pgx.Identifier{rs.booksTableName}.Sanitize(),
			pgx.Identifier{rs.booksTableName + "_title_author_key"}.Sanitize(),
			pgx.Identifier{rs.booksTableName + "_reservation_check"}.Sanitize(),
		),
		fmt.Sprintf(
			borrowersDDL,
			pgx.Identifier{rs.borrowersTableName}.Sanitize(),
			pgx.Identifier{rs.borrowersTableName + "_name_role_key"}.Sanitize(),
		),
	}
}
