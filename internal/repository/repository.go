package repository

import (
	"context"

	"github.com/UnknownOlympus/staffstore/internal/models"
)

// CrudRepository defines the generic operations every stored entity supports.
type CrudRepository[T any, ID comparable] interface {
	// Save inserts a transient entity or updates the row matching its ID,
	// returning the entity as stored.
	Save(ctx context.Context, entity T) (T, error)

	// FindByID returns nil without an error when no row matches.
	FindByID(ctx context.Context, id ID) (*T, error)

	// FindAll returns every entity ordered by ID.
	FindAll(ctx context.Context) ([]T, error)

	// DeleteByID removes the row with the given ID. Deleting a missing row is not an error.
	DeleteByID(ctx context.Context, id ID) error

	ExistsByID(ctx context.Context, id ID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// EmployeeRepository extends the generic repository with employee lookups.
//
// The FindByFirstLast variants share one contract and differ only in how the
// query is expressed: rendered from the table mapping (portable) or written as
// literal SQL for the backing dialect (native), with positional or named binding.
// Each returns ErrNotFound when no row matches and ErrNotUnique when several do.
type EmployeeRepository interface {
	CrudRepository[models.Employee, int64]

	// FindByEmail matches the email exactly. It returns nil without an error when no row matches
	// and ErrNotUnique when several do.
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)

	FindByFirstLast(ctx context.Context, firstName, lastName string) (models.Employee, error)
	FindByFirstLastNamed(ctx context.Context, firstName, lastName string) (models.Employee, error)
	FindByNativeQuery(ctx context.Context, firstName, lastName string) (models.Employee, error)
	FindByNativeSQLNamedParam(ctx context.Context, firstName, lastName string) (models.Employee, error)
}

var (
	_ EmployeeRepository = (*PostgresEmployeeRepository)(nil)
	_ EmployeeRepository = (*SQLiteEmployeeRepository)(nil)
)
