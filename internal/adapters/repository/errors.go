package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound          = errors.New("market not found")
	ErrAlreadyLoaded     = errors.New("catalog already loaded")
	ErrInvalidDateFilter = errors.New("invalid date filter")
	ErrInvalidSortKey    = errors.New("invalid sort key")
)
