package ising

import "errors"

// Sentinel errors for the two failure classes of the core. All failures are
// synchronous and local: a failed construction, flip, or lookup leaves prior
// state exactly as it was. Call sites wrap these with fmt.Errorf("...: %w")
// so errors.Is works across the package boundary.
var (
	// ErrInvalidArgument reports a malformed input such as a zero-extent
	// lattice shape, an initial spin that is neither +1 nor -1, or
	// inconsistent parameter-sequence lengths.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange reports an index, dimension, neighbour number, or
	// distance key beyond its valid bounds.
	ErrOutOfRange = errors.New("out of range")
)
