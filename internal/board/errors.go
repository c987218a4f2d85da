package board

import "errors"

var (
	ErrInvalidSize         = errors.New("grid size out of supported range")
	ErrInvalidPosition     = errors.New("position out of bounds")
	ErrInvalidValue        = errors.New("value outside 1..size")
	ErrNotLatin            = errors.New("grid violates Latin-square constraints")
	ErrBadPartition        = errors.New("cages do not partition the grid exactly")
	ErrDisconnectedCage    = errors.New("cage cells are not 4-connected")
	ErrAmbiguousConstraint = errors.New("operation is ambiguous for cage size")
	ErrInexactQuotient     = errors.New("division has no exact integer quotient")
	ErrTargetMismatch      = errors.New("cage values do not produce target")
)
