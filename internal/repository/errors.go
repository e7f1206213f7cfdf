// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrDuplicateKey indicates that an insert collided with an
// existing unique key and should be reported to the user naming the
// conflicting field, while ErrAdvisorUnknown and ErrVehicleUnknown
// signal that a referenced record does not exist and the statement was
// never sent to the store.
package repository

import (
	"errors"
	"strings"
)

// ErrDuplicateKey is returned when an insert violates a unique
// constraint (username, advisor name, order number, part number, VIN).
// The row that was already there is left untouched.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNotFound is returned when a lookup by natural key matches no row.
var ErrNotFound = errors.New("not found")

// ErrAdvisorUnknown is returned before touching the store when a
// vehicle or work order names an advisor that does not exist.
var ErrAdvisorUnknown = errors.New("advisor does not exist")

// ErrVehicleUnknown is returned before touching the store when a work
// order references a VIN with no vehicle record.
var ErrVehicleUnknown = errors.New("vehicle does not exist")

// isUniqueViolation reports whether err is sqlite's unique/primary-key
// constraint failure.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
