package models

import "github.com/cespare/xxhash/v2"

// employeeTypeHash is shared by every Employee regardless of its field values.
var employeeTypeHash = xxhash.Sum64String("models.Employee")

// Employee represents a row of the employees table.
// A zero ID means the employee has not been persisted yet.
type Employee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Transient reports whether the employee has no identity assigned by the store.
func (e *Employee) Transient() bool {
	return e == nil || e.ID == 0
}

// Equal compares employees by persisted identity only. Two employees are equal
// when both have been saved and carry the same ID; attribute values are ignored.
// A transient employee is not equal to anything, including itself.
func (e *Employee) Equal(other *Employee) bool {
	if e.Transient() || other.Transient() {
		return false
	}

	return e.ID == other.ID
}

// Hash returns a value that is constant for the Employee type, so it stays
// consistent with Equal while fields (including ID assignment) change.
func (Employee) Hash() uint64 {
	return employeeTypeHash
}
