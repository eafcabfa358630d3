package store

import "errors"

var (
	// ErrValidation is returned for an empty task name or an unknown status.
	ErrValidation = errors.New("invalid task")
	// ErrNotFound is returned when an index is outside the collection.
	ErrNotFound = errors.New("task not found")
	// ErrNoOp is returned by Update when neither the name nor the status changes.
	ErrNoOp = errors.New("no changes made")
)
