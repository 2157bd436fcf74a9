// Package testutil provides in-memory stores for tests.
package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/UnknownOlympus/staffstore/internal/migrations"
	"github.com/UnknownOlympus/staffstore/internal/repository"
	"github.com/stretchr/testify/require"
)

// NewTestDSN generates a DSN for an in-memory SQLite database for testing purposes.
func NewTestDSN(testName string) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(testName)
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

// NewMemoryDB opens a migrated in-memory SQLite database private to the test.
// It is closed when the test finishes.
func NewMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := repository.OpenSQLite(t.Context(), NewTestDSN(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, migrations.Up(db, migrations.DialectSQLite))

	return db
}
