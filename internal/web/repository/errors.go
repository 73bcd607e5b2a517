// Package repository holds the gorm-backed account and review stores.
package repository

import "errors"

// ErrNotFound is returned when no record matches the lookup.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("duplicate record")

// ErrForbidden is returned when the caller attempts an operation
// on a record they do not own.
var ErrForbidden = errors.New("forbidden")
