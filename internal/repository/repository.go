// Package repository provides data access over PostgreSQL.
// Interfaces use the domain models directly; no map[string]any payloads.
package repository

import "errors"

// ErrNotFound is returned when a referenced row does not exist.
// Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")
