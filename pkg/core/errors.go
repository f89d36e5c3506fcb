package core

import "errors"

// Common errors.
var (
	ErrEmptyID          = errors.New("note ID cannot be empty")
	ErrReadOnly         = errors.New("storage is in read-only mode")
	ErrWatchUnsupported = errors.New("storage does not support watching")
)
