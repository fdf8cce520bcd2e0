package useralerts

import "errors"

var (
	// ErrMalformedReplay indicates that the catch-up replay could not be decoded.
	// The engine is still moved to the caught-up state.
	ErrMalformedReplay = errors.New("malformed user alerts replay")

	// ErrNilNode indicates that a reconciliation call received no node.
	ErrNilNode = errors.New("node is nil")
)
