package db

import "errors"

// Domain-level database error sentinels.
var (
	// ErrNotFound is returned when no classification exists for a UUID or
	// the stored entry has expired. Callers cannot distinguish the two.
	ErrNotFound = errors.New("classification not found")
)
