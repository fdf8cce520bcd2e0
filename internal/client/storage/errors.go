package storage

import "errors"

// Common client storage errors
var (
	// ErrCommandNotFound indicates that a queued command was not found
	ErrCommandNotFound = errors.New("command not found")

	// ErrMarkersNotFound indicates that no seen markers were saved yet
	ErrMarkersNotFound = errors.New("seen markers not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
