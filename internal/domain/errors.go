package domain

import "errors"

// Sentinel errors used across layers. Core game rules reject illegal
// operations with plain booleans; errors are reserved for collaborator I/O.
var (
	ErrUnknownIngredient = errors.New("unknown ingredient")
	ErrCorruptProgress   = errors.New("corrupt progress data")
)
