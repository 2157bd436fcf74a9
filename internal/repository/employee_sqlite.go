package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/staffstore/internal/metrics"
	"github.com/UnknownOlympus/staffstore/internal/models"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const (
	sqliteInsertEmployeeQuery = `INSERT INTO employees (first_name, last_name, email) VALUES (?1, ?2, ?3) ` +
		`RETURNING id, first_name, last_name, email`
	sqliteUpdateEmployeeQuery = `UPDATE employees SET first_name = ?2, last_name = ?3, email = ?4 WHERE id = ?1 ` +
		`RETURNING id, first_name, last_name, email`

	sqliteFindAllEmployeesQuery = `SELECT id, first_name, last_name, email FROM employees ORDER BY id`
	sqliteDeleteEmployeeQuery   = `DELETE FROM employees WHERE id = ?1`
	sqliteExistsEmployeeQuery   = `SELECT EXISTS(SELECT 1 FROM employees WHERE id = ?1)`
	sqliteCountEmployeesQuery   = `SELECT COUNT(*) FROM employees`

	sqliteNativeByNameQuery = `SELECT e.id, e.first_name, e.last_name, e.email FROM employees e ` +
		`WHERE COALESCE(e.first_name, '') = ?1 AND COALESCE(e.last_name, '') = ?2`
	sqliteNativeByNameNamedQuery = `SELECT e.id, e.first_name, e.last_name, e.email FROM employees e ` +
		`WHERE COALESCE(e.first_name, '') = :firstName AND COALESCE(e.last_name, '') = :lastName`
)

var (
	sqliteFindByIDQuery    = employeeTable.selectWhere(sqliteDialect, bindPositional, "id")
	sqliteFindByEmailQuery = employeeTable.selectWhere(sqliteDialect, bindPositional, "email")
	sqliteByNameQuery      = employeeTable.selectWhere(sqliteDialect, bindPositional, "firstName", "lastName")
	sqliteByNameNamedQuery = employeeTable.selectWhere(sqliteDialect, bindNamed, "firstName", "lastName")
)

// SQLDatabase is the subset of *sql.DB (and *sql.Tx) the SQLite repository needs.
type SQLDatabase interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// OpenSQLite opens a SQLite database. In-memory DSNs such as
// "file:staffstore?mode=memory&cache=shared" live as long as the returned handle.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// sqlite serialises writers; a single connection also keeps in-memory databases alive.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return db, nil
}

// SQLiteEmployeeRepository implements EmployeeRepository on top of database/sql and modernc.org/sqlite.
type SQLiteEmployeeRepository struct {
	db      SQLDatabase
	metrics *metrics.Metrics
}

// NewSQLiteEmployeeRepository returns a repository using db. metrics may be nil.
func NewSQLiteEmployeeRepository(db SQLDatabase, metrics *metrics.Metrics) *SQLiteEmployeeRepository {
	return &SQLiteEmployeeRepository{db: db, metrics: metrics}
}

func (r *SQLiteEmployeeRepository) observe(queryType string, startTime time.Time, err *error) {
	r.metrics.ObserveQuery(queryType, time.Since(startTime).Seconds(), *err)
}

// Save inserts a transient employee or updates the row with the employee's ID.
func (r *SQLiteEmployeeRepository) Save(ctx context.Context, employee models.Employee) (_ models.Employee, err error) {
	if employee.Transient() {
		defer r.observe("insert_employee", time.Now(), &err)

		saved, scanErr := scanEmployee(r.db.QueryRowContext(ctx, sqliteInsertEmployeeQuery,
			nullable(employee.FirstName), nullable(employee.LastName), nullable(employee.Email)))
		if scanErr != nil {
			return models.Employee{}, fmt.Errorf("failed to save employee: %w", scanErr)
		}

		return saved, nil
	}

	defer r.observe("update_employee", time.Now(), &err)

	saved, err := scanEmployee(r.db.QueryRowContext(ctx, sqliteUpdateEmployeeQuery,
		employee.ID, nullable(employee.FirstName), nullable(employee.LastName), nullable(employee.Email)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Employee{}, fmt.Errorf("failed to update employee %d: %w", employee.ID, ErrNotFound)
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", err)
	}

	return saved, nil
}

// FindByID retrieves an employee by ID, or nil when there is none.
func (r *SQLiteEmployeeRepository) FindByID(ctx context.Context, identifier int64) (_ *models.Employee, err error) {
	defer r.observe("find_employee_by_id", time.Now(), &err)

	employee, err := scanEmployee(r.db.QueryRowContext(ctx, sqliteFindByIDQuery, identifier))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // absence is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return &employee, nil
}

// FindByEmail retrieves the employee with exactly this email, or nil when there is none.
// Several matches return ErrNotUnique. An empty email also matches rows without one.
func (r *SQLiteEmployeeRepository) FindByEmail(ctx context.Context, email string) (_ *models.Employee, err error) {
	defer r.observe("find_employee_by_email", time.Now(), &err)

	rows, err := r.db.QueryContext(ctx, sqliteFindByEmailQuery, email)
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
func (r *SQLiteEmployeeRepository) FindAll(ctx context.Context) (_ []models.Employee, err error) {
	defer r.observe("find_all_employees", time.Now(), &err)

	rows, err := r.db.QueryContext(ctx, sqliteFindAllEmployeesQuery)
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
func (r *SQLiteEmployeeRepository) DeleteByID(ctx context.Context, identifier int64) (err error) {
	defer r.observe("delete_employee", time.Now(), &err)

	if _, err = r.db.ExecContext(ctx, sqliteDeleteEmployeeQuery, identifier); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// ExistsByID reports whether an employee with the given ID is stored.
func (r *SQLiteEmployeeRepository) ExistsByID(ctx context.Context, identifier int64) (_ bool, err error) {
	defer r.observe("exists_employee", time.Now(), &err)

	var exists bool
	if err = r.db.QueryRowContext(ctx, sqliteExistsEmployeeQuery, identifier).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking the existence of the employee: %w", err)
	}

	return exists, nil
}

// Count returns the number of stored employees.
func (r *SQLiteEmployeeRepository) Count(ctx context.Context) (_ int64, err error) {
	defer r.observe("count_employees", time.Now(), &err)

	var count int64
	if err = r.db.QueryRowContext(ctx, sqliteCountEmployeesQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return count, nil
}

// FindByFirstLast runs the mapped query with positional parameters.
func (r *SQLiteEmployeeRepository) FindByFirstLast(
	ctx context.Context,
	firstName, lastName string,
) (_ models.Employee, err error) {
	defer r.observe("find_employee_by_name", time.Now(), &err)

	return r.findSingle(ctx, sqliteByNameQuery, firstName, lastName)
}

// FindByFirstLastNamed runs the mapped query with named parameters.
func (r *SQLiteEmployeeRepository) FindByFirstLastNamed(
	ctx context.Context,
	firstName, lastName string,
) (_ models.Employee, err error) {
	defer r.observe("find_employee_by_name_named", time.Now(), &err)

	return r.findSingle(ctx, sqliteByNameNamedQuery,
		sql.Named("firstName", firstName), sql.Named("lastName", lastName))
}

// FindByNativeQuery runs literal SQLite with positional parameters.
func (r *SQLiteEmployeeRepository) FindByNativeQuery(
	ctx context.Context,
	firstName, lastName string,
) (_ models.Employee, err error) {
	defer r.observe("find_employee_by_name_native", time.Now(), &err)

	return r.findSingle(ctx, sqliteNativeByNameQuery, firstName, lastName)
}

// FindByNativeSQLNamedParam runs literal SQLite with named parameters.
func (r *SQLiteEmployeeRepository) FindByNativeSQLNamedParam(
	ctx context.Context,
	firstName, lastName string,
) (_ models.Employee, err error) {
	defer r.observe("find_employee_by_name_native_named", time.Now(), &err)

	return r.findSingle(ctx, sqliteNativeByNameNamedQuery,
		sql.Named("firstName", firstName), sql.Named("lastName", lastName))
}

func (r *SQLiteEmployeeRepository) findSingle(ctx context.Context, query string, args ...any) (models.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
