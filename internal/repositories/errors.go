package repositories

import "errors"

// ErrNotFound is returned when a lookup or mutation targets a record that
// does not exist. Implementations wrap it so callers can use errors.Is.
var ErrNotFound = errors.New("record not found")
