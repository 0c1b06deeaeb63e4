package database_test

import (
	"database/sql"
	"regexp"
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/stretchr/testify/require"
)

// NewSQLiteDBWithMock builds a SQLiteDB on top of sqlmock with every named
// statement prepared, in the same order NewSQLiteDB prepares them.
func NewSQLiteDBWithMock(t *testing.T) (*database.SQLiteDB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err, "opening sqlmock connection")

	queries := database.SQLiteQueries()
	names := make([]string, 0, len(queries))
	for name := range queries {
		names = append(names, name)
	}
	sort.Strings(names)

	db := &database.SQLiteDB{DB: conn, Stmts: make(map[string]*sql.Stmt, len(names))}
	for _, name := range names {
		mock.ExpectPrepare(regexp.QuoteMeta(queries[name]))
		stmt, err := conn.Prepare(queries[name])
		require.NoError(t, err, "preparing %s", name)
		db.Stmts[name] = stmt
	}

	return db, mock
}
