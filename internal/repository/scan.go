package repository

import (
	"github.com/UnknownOlympus/staffstore/internal/models"
	"github.com/jackc/pgx/v5/pgtype"
)

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// rowIterator is satisfied by pgx.Rows and *sql.Rows.
type rowIterator interface {
	rowScanner
	Next() bool
	Err() error
}

// nullable stores empty attributes as NULL. Lookups compare nullable columns
// through COALESCE, so "" finds them again.
func nullable(value string) pgtype.Text {
	return pgtype.Text{String: value, Valid: value != ""}
}

// scanEmployee reads id, first_name, last_name, email in that order.
func scanEmployee(row rowScanner) (models.Employee, error) {
	var (
		employee                   models.Employee
		firstName, lastName, email pgtype.Text
	)

	if err := row.Scan(&employee.ID, &firstName, &lastName, &email); err != nil {
		return models.Employee{}, err
	}

	employee.FirstName = firstName.String
	employee.LastName = lastName.String
	employee.Email = email.String

	return employee, nil
}

func collectEmployees(rows rowIterator) ([]models.Employee, error) {
	employees := make([]models.Employee, 0)

	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// collectOptional reads at most one employee. It returns nil when there are no
// rows and ErrNotUnique when there are several.
func collectOptional(rows rowIterator) (*models.Employee, error) {
	var result *models.Employee

	for rows.Next() {
		if result != nil {
			return nil, ErrNotUnique
		}

		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = &employee
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// collectSingle reads exactly one employee, failing with ErrNotFound or ErrNotUnique otherwise.
func collectSingle(rows rowIterator) (models.Employee, error) {
	employee, err := collectOptional(rows)
	if err != nil {
		return models.Employee{}, err
	}
	if employee == nil {
		return models.Employee{}, ErrNotFound
	}

	return *employee, nil
}
