package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/staffstore/internal/metrics"
	"github.com/UnknownOlympus/staffstore/internal/models"
	"github.com/jackc/pgx/v5"
)

const (
	pgInsertEmployeeQuery = `
		INSERT INTO employees (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, first_name, last_name, email;
	`
	pgUpdateEmployeeQuery = `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4
		WHERE id = $1
		RETURNING id, first_name, last_name, email;
	`
	pgFindAllEmployeesQuery = `SELECT id, first_name, last_name, email FROM employees ORDER BY id`
	pgDeleteEmployeeQuery   = `DELETE FROM employees WHERE id = $1`
	pgExistsEmployeeQuery   = `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`
	pgCountEmployeesQuery   = `SELECT COUNT(*) FROM employees`

	pgNativeByNameQuery = `SELECT e.id, e.first_name, e.last_name, e.email FROM employees e ` +
		`WHERE COALESCE(e.first_name, '') = $1 AND COALESCE(e.last_name, '') = $2`
	pgNativeByNameNamedQuery = `SELECT e.id, e.first_name, e.last_name, e.email FROM employees e ` +
		`WHERE COALESCE(e.first_name, '') = @firstName AND COALESCE(e.last_name, '') = @lastName`
)

var (
	pgFindByIDQuery    = employeeTable.selectWhere(postgresDialect, bindPositional, "id")
	pgFindByEmailQuery = employeeTable.selectWhere(postgresDialect, bindPositional, "email")
	pgByNameQuery      = employeeTable.selectWhere(postgresDialect, bindPositional, "firstName", "lastName")
	pgByNameNamedQuery = employeeTable.selectWhere(postgresDialect, bindNamed, "firstName", "lastName")
)

// PostgresEmployeeRepository implements EmployeeRepository on top of pgx.
type PostgresEmployeeRepository struct {
	db      Database
	metrics *metrics.Metrics
}

// NewPostgresEmployeeRepository returns a repository using db. metrics may be nil.
func NewPostgresEmployeeRepository(db Database, metrics *metrics.Metrics) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db, metrics: metrics}
}

func (r *PostgresEmployeeRepository) observe(queryType string, startTime time.Time, err *error) {
	r.metrics.ObserveQuery(queryType, time.Since(startTime).Seconds(), *err)
}

// Save inserts a transient employee or updates the row with the employee's ID.
func (r *PostgresEmployeeRepository) Save(ctx context.Context, employee models.Employee) (_ models.Employee, err error) {
	if employee.Transient() {
		defer r.observe("insert_employee", time.Now(), &err)

		saved, scanErr := scanEmployee(r.db.QueryRow(ctx, pgInsertEmployeeQuery,
			nullable(employee.FirstName), nullable(employee.LastName), nullable(employee.Email)))
		if scanErr != nil {
			return models.Employee{}, fmt.Errorf("failed to save employee: %w", scanErr)
		}

		return saved, nil
	}

	defer r.observe("update_employee", time.Now(), &err)

	saved, err := scanEmployee(r.db.QueryRow(ctx, pgUpdateEmployeeQuery,
		employee.ID, nullable(employee.FirstName), nullable(employee.LastName), nullable(employee.Email)))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, fmt.Errorf("failed to update employee %d: %w", employee.ID, ErrNotFound)
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", err)
	}

	return saved, nil
}

// FindByID retrieves an employee by ID, or nil when there is none.
func (r *PostgresEmployeeRepository) FindByID(ctx context.Context, identifier int64) (_ *models.Employee, err error) {
	defer r.observe("find_employee_by_id", time.Now(), &err)

	employee, err := scanEmployee(r.db.QueryRow(ctx, pgFindByIDQuery, identifier))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil //nolint:nilnil // absence is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return &employee, nil
}

// FindByEmail retrieves the employee with exactly this email, or nil when there is none.
// Several matches return ErrNotUnique. An empty email also matches rows without one.
func (r *PostgresEmployeeRepository) FindByEmail(ctx context.Context, email string) (_ *models.Employee, err error) {
	defer r.observe("find_employee_by_email", time.Now(), &err)

	rows, err := r.db.Query(ctx, pgFindByEmailQuery, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}
	defer rows.Close()

	employee, err := collectOptional(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return employee, nil
}

// FindAll retrieves every employee ordered by ID.
func (r *PostgresEmployeeRepository) FindAll(ctx context.Context) (_ []models.Employee, err error) {
	defer r.observe("find_all_employees", time.Now(), &err)

	rows, err := r.db.Query(ctx, pgFindAllEmployeesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan employees: %w", err)
	}

	return employees, nil
}

// DeleteByID removes the employee with the given ID, if any.
func (r *PostgresEmployeeRepository) DeleteByID(ctx context.Context, identifier int64) (err error) {
	defer r.observe("delete_employee", time.Now(), &err)

	if _, err = r.db.Exec(ctx, pgDeleteEmployeeQuery, identifier); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// ExistsByID reports whether an employee with the given ID is stored.
func (r *PostgresEmployeeRepository) ExistsByID(ctx context.Context, identifier int64) (_ bool, err error) {
	defer r.observe("exists_employee", time.Now(), &err)

	var exists bool
	if err = r.db.QueryRow(ctx, pgExistsEmployeeQuery, identifier).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking the existence of the employee: %w", err)
	}

	return exists, nil
}

// Count returns the number of stored employees.
func (r *PostgresEmployeeRepository) Count(ctx context.Context) (_ int64, err error) {
	defer r.observe("count_employees", time.Now(), &err)

	var count int64
	if err = r.db.QueryRow(ctx, pgCountEmployeesQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return count, nil
}

// FindByFirstLast runs the mapped query with positional parameters.
func (r *PostgresEmployeeRepository) FindByFirstLast(
	ctx context.Context,
	firstName, lastName string,
) (_ models.Employee, err error) {
	defer r.observe("find_employee_by_name", time.Now(), &err)

	return r.findSingle(ctx, pgByNameQuery, firstName, lastName)
}

// FindByFirstLastNamed runs the mapped query with named parameters.
func (r *PostgresEmployeeRepository) FindByFirstLastNamed(
	ctx context.Context,
	firstName, lastName string,
) (_ models.Employee, err error) {
	defer r.observe("find_employee_by_name_named", time.Now(), &err)

	return r.findSingle(ctx, pgByNameNamedQuery, pgx.NamedArgs{"firstName": firstName, "lastName": lastName})
}

// FindByNativeQuery runs literal PostgreSQL with positional parameters.
func (r *PostgresEmployeeRepository) FindByNativeQuery(
	ctx context.Context,
	firstName, lastName string,
) (_ models.Employee, err error) {
	defer r.observe("find_employee_by_name_native", time.Now(), &err)

	return r.findSingle(ctx, pgNativeByNameQuery, firstName, lastName)
}

// FindByNativeSQLNamedParam runs literal PostgreSQL with named parameters.
func (r *PostgresEmployeeRepository) FindByNativeSQLNamedParam(
	ctx context.Context,
	firstName, lastName string,
) (_ models.Employee, err error) {
	defer r.observe("find_employee_by_name_native_named", time.Now(), &err)

	return r.findSingle(ctx, pgNativeByNameNamedQuery, pgx.NamedArgs{"firstName": firstName, "lastName": lastName})
}

func (r *PostgresEmployeeRepository) findSingle(ctx context.Context, query string, args ...any) (models.Employee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to find employee by name: %w", err)
	}
	defer rows.Close()

	employee, err := collectSingle(rows)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to find employee by name: %w", err)
	}

	return employee, nil
}
