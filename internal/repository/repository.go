// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g. postgres).
package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned when an update was computed from a stale aggregate.
	ErrVersionConflict = errors.New("version conflict")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
