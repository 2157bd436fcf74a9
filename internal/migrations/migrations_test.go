package migrations_test

import (
	"testing"

	"github.com/UnknownOlympus/staffstore/internal/migrations"
	"github.com/UnknownOlympus/staffstore/internal/repository"
	"github.com/UnknownOlympus/staffstore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpDown_SQLite(t *testing.T) {
	db, err := repository.OpenSQLite(t.Context(), testutil.NewTestDSN(t.Name()))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migrations.Up(db, migrations.DialectSQLite))

	version, err := migrations.Version(db, migrations.DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	_, err = db.ExecContext(t.Context(),
		"INSERT INTO employees (first_name, last_name, email) VALUES ('Willie', 'Cortez', NULL)")
	require.NoError(t, err)

	// applying twice is a no-op
	require.NoError(t, migrations.Up(db, migrations.DialectSQLite))

	require.NoError(t, migrations.Down(db, migrations.DialectSQLite))

	version, err = migrations.Version(db, migrations.DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	_, err = db.ExecContext(t.Context(), "SELECT 1 FROM employees")
	require.Error(t, err)
}

func TestUp_UnsupportedDialect(t *testing.T) {
	db, err := repository.OpenSQLite(t.Context(), testutil.NewTestDSN(t.Name()))
	require.NoError(t, err)
	defer db.Close()

	err = migrations.Up(db, "oracle")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported migration dialect "oracle"`)
}
