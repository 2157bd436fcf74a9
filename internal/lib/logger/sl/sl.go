package sl

import (
	"log/slog"

	"github.com/UnknownOlympus/staffstore/internal/models"
)

// Err creates a slog.Attr with the given error.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Employee groups the identifying fields of an employee under the "employee" key.
func Employee(employee models.Employee) slog.Attr {
	return slog.Group("employee",
		slog.Int64("id", employee.ID),
		slog.String("first_name", employee.FirstName),
		slog.String("last_name", employee.LastName),
	)
}
