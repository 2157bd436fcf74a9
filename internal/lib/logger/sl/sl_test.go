package sl_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/staffstore/internal/lib/logger/sl"
	"github.com/UnknownOlympus/staffstore/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer // buffer for log capturing
	// Create slog.Logger, which writes in logBuf
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{}))

	errAttr := sl.Err(assert.AnError)
	testLogger.Warn("expected result:", errAttr)

	loggedOutput := logBuf.String()

	assert.Contains(t, loggedOutput, assert.AnError.Error())
}

func TestEmployee(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{}))

	testLogger.Info("saved", sl.Employee(models.Employee{ID: 7, FirstName: "Willie", LastName: "Cortez"}))

	loggedOutput := logBuf.String()

	assert.Contains(t, loggedOutput, "employee.id=7")
	assert.Contains(t, loggedOutput, "employee.first_name=Willie")
	assert.Contains(t, loggedOutput, "employee.last_name=Cortez")
	assert.NotContains(t, loggedOutput, "email")
}
