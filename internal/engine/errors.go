package engine

import "errors"

// Domain errors for simulator lookups and stepping.
var (
	// ErrInvalidObjectID indicates an object id known to neither the rigid
	// nor the articulated registry.
	ErrInvalidObjectID = errors.New("engine: object id is not valid")

	// ErrUnknownLink indicates a link id outside an articulated object's
	// link range.
	ErrUnknownLink = errors.New("engine: unknown link id")

	// ErrBadTimestep indicates a non-positive world timestep.
	ErrBadTimestep = errors.New("engine: timestep must be positive")
)
