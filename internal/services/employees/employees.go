package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/staffstore/internal/lib/logger/sl"
	"github.com/UnknownOlympus/staffstore/internal/models"
	"github.com/UnknownOlympus/staffstore/internal/repository"
)

// Directory is the application-facing entry point to the employee store.
type Directory struct {
	log  *slog.Logger
	repo repository.EmployeeRepository
}

func NewDirectory(log *slog.Logger, repo repository.EmployeeRepository) *Directory {
	return &Directory{log: log, repo: repo}
}

func (d *Directory) initLogger(opn string) *slog.Logger {
	return d.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// Register persists a new employee and returns it with its assigned ID.
func (d *Directory) Register(ctx context.Context, firstName, lastName, email string) (models.Employee, error) {
	const opn = "Directory.Register"
	log := d.initLogger(opn)

	saved, err := d.repo.Save(ctx, models.Employee{FirstName: firstName, LastName: lastName, Email: email})
	if err != nil {
		log.ErrorContext(ctx, "Failed to register employee", sl.Err(err))
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}

	log.InfoContext(ctx, "Employee registered", sl.Employee(saved))

	return saved, nil
}

// Get returns the employee with the given ID or repository.ErrNotFound.
func (d *Directory) Get(ctx context.Context, identifier int64) (models.Employee, error) {
	const opn = "Directory.Get"

	employee, err := d.repo.FindByID(ctx, identifier)
	if err != nil {
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}
	if employee == nil {
		d.initLogger(opn).DebugContext(ctx, "Employee not found", "id", identifier)
		return models.Employee{}, fmt.Errorf("%s: employee %d: %w", opn, identifier, repository.ErrNotFound)
	}

	return *employee, nil
}

// ByEmail returns the employee with exactly this email. It fails with repository.ErrNotFound
// when there is none and repository.ErrNotUnique when the email is shared.
func (d *Directory) ByEmail(ctx context.Context, email string) (models.Employee, error) {
	const opn = "Directory.ByEmail"

	employee, err := d.repo.FindByEmail(ctx, email)
	if err != nil {
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}
	if employee == nil {
		return models.Employee{}, fmt.Errorf("%s: email %q: %w", opn, email, repository.ErrNotFound)
	}

	return *employee, nil
}

// Lookup finds the single employee with the given first and last name.
func (d *Directory) Lookup(ctx context.Context, firstName, lastName string) (models.Employee, error) {
	const opn = "Directory.Lookup"

	employee, err := d.repo.FindByFirstLastNamed(ctx, firstName, lastName)
	if err != nil {
		if errors.Is(err, repository.ErrNotUnique) {
			d.initLogger(opn).WarnContext(ctx, "Ambiguous employee name",
				"first_name", firstName, "last_name", lastName)
		}
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}

	return employee, nil
}

// List returns every employee ordered by ID.
func (d *Directory) List(ctx context.Context) ([]models.Employee, error) {
	const opn = "Directory.List"

	employees, err := d.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return employees, nil
}

// Update loads the employee, applies mutate to it and saves the result.
// The identity cannot be changed by mutate.
func (d *Directory) Update(
	ctx context.Context,
	identifier int64,
	mutate func(employee *models.Employee),
) (models.Employee, error) {
	const opn = "Directory.Update"
	log := d.initLogger(opn)

	employee, err := d.Get(ctx, identifier)
	if err != nil {
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}

	mutate(&employee)
	employee.ID = identifier

	updated, err := d.repo.Save(ctx, employee)
	if err != nil {
		log.ErrorContext(ctx, "Failed to update employee", "id", identifier, sl.Err(err))
		return models.Employee{}, fmt.Errorf("%s: %w", opn, err)
	}

	log.InfoContext(ctx, "Employee updated", sl.Employee(updated))

	return updated, nil
}

// Remove deletes the employee. Removing an unknown ID returns repository.ErrNotFound.
func (d *Directory) Remove(ctx context.Context, identifier int64) error {
	const opn = "Directory.Remove"
	log := d.initLogger(opn)

	exists, err := d.repo.ExistsByID(ctx, identifier)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}
	if !exists {
		return fmt.Errorf("%s: employee %d: %w", opn, identifier, repository.ErrNotFound)
	}

	if err = d.repo.DeleteByID(ctx, identifier); err != nil {
		log.ErrorContext(ctx, "Failed to remove employee", "id", identifier, sl.Err(err))
		return fmt.Errorf("%s: %w", opn, err)
	}

	log.InfoContext(ctx, "Employee removed", "id", identifier)

	return nil
}
