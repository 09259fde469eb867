// Package repository implements the persistence layer over MySQL.
// Point lookups surface sql.ErrNoRows unchanged; domain-specific
// failures map to the auth taxonomy (auth.ErrDuplicateEmail,
// auth.ErrInvalidRefreshToken) or the sentinels below.
package repository

import (
	"errors"
	"strings"
)

// ErrConflict is returned when a delete cannot proceed because of
// dependent rows, such as removing a supplier that still has orders.
// Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// isDuplicateKey detects MySQL error 1062 (duplicate entry for a
// unique index) without binding to the driver's error type.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
