package core

import "errors"

// Error kinds raised by the simulation model. Callers match them with
// errors.Is; the model wraps them with call-site context.
var (
	// ErrType is returned when a geometry value is not a usable vector.
	ErrType = errors.New("value is not a vector")

	// ErrInvalidArgument is returned when a query receives a missing or
	// malformed argument.
	ErrInvalidArgument = errors.New("invalid argument")
)
