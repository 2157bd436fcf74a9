//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/UnknownOlympus/staffstore/internal/migrations"
	"github.com/UnknownOlympus/staffstore/internal/models"
	"github.com/UnknownOlympus/staffstore/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("staffstore"),
		postgres.WithUsername("staffstore"),
		postgres.WithPassword("staffstore"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := repository.NewDatabaseFromURL(dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := stdlib.OpenDBFromPool(pool)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(db, migrations.DialectPostgres))

	return pool
}

func TestPostgresEmployeeRepository_Integration(t *testing.T) {
	pool := startPostgres(t)
	repo := repository.NewPostgresEmployeeRepository(pool, nil)
	ctx := t.Context()

	saved, err := repo.Save(ctx, newWillie())
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	second, err := repo.Save(ctx, models.Employee{FirstName: "Ann", LastName: "Lee"})
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Employee{saved, second}, all)

	byEmail, err := repo.FindByEmail(ctx, "wc@gmail.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.True(t, byEmail.Equal(&saved))

	noEmail, err := repo.FindByEmail(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, noEmail)
	assert.Equal(t, second, *noEmail)

	noFirstName, err := repo.Save(ctx, models.Employee{LastName: "Cortez", Email: "wc@gmail.com"})
	require.NoError(t, err)
	byEmptyName, err := repo.FindByNativeSQLNamedParam(ctx, "", "Cortez")
	require.NoError(t, err)
	assert.Equal(t, noFirstName, byEmptyName)

	_, err = repo.FindByEmail(ctx, "wc@gmail.com")
	require.ErrorIs(t, err, repository.ErrNotUnique)
	require.NoError(t, repo.DeleteByID(ctx, noFirstName.ID))

	byEmail.Email = "cw@gmail.com"
	byEmail.LastName = "James"
	updated, err := repo.Save(ctx, *byEmail)
	require.NoError(t, err)
	assert.Equal(t, "cw@gmail.com", updated.Email)

	reloaded, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, "James", reloaded.LastName)
	assert.Equal(t, "cw@gmail.com", reloaded.Email)

	positional, err := repo.FindByFirstLast(ctx, "Willie", "James")
	require.NoError(t, err)
	named, err := repo.FindByFirstLastNamed(ctx, "Willie", "James")
	require.NoError(t, err)
	native, err := repo.FindByNativeQuery(ctx, "Willie", "James")
	require.NoError(t, err)
	nativeNamed, err := repo.FindByNativeSQLNamedParam(ctx, "Willie", "James")
	require.NoError(t, err)
	assert.Equal(t, positional, named)
	assert.Equal(t, positional, native)
	assert.Equal(t, positional, nativeNamed)

	_, err = repo.FindByFirstLast(ctx, "Willie", "Cortez")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Save(ctx, models.Employee{ID: 999, FirstName: "Ghost"})
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.DeleteByID(ctx, saved.ID))
	gone, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
