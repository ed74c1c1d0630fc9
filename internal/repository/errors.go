package repository

import "errors"

var (
	// ErrNotFound indicates no row matched the lookup.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateDay indicates the owner already has an entry for that day.
	ErrDuplicateDay = errors.New("an entry already exists for this day")
)
