package ising

import "fmt"

// Configuration holds exactly one spin per lattice site. It is mutated in
// place by single-site flips and must only ever have one mutator at a time;
// Evolve takes it as input and hands it back as output to keep that ownership
// transfer explicit.
type Configuration struct {
	spins []Spin
}

// NewConfiguration creates a configuration of the given size with every spin
// set to initial, which must be +1 or -1.
func NewConfiguration(size int, initial Spin) (*Configuration, error) {
	if size <= 0 {
		return nil, fmt.Errorf("configuration size %d: %w", size, ErrInvalidArgument)
	}
	if !initial.Valid() {
		return nil, fmt.Errorf("initial spin %d, must be +1 or -1: %w", initial, ErrInvalidArgument)
	}
	spins := make([]Spin, size)
	for i := range spins {
		spins[i] = initial
	}
	return &Configuration{spins: spins}, nil
}

// Size returns the number of sites.
func (c *Configuration) Size() int {
	return len(c.spins)
}

// At returns the spin at the given site.
func (c *Configuration) At(site Site) (Spin, error) {
	if site < 0 || int(site) >= len(c.spins) {
		return 0, fmt.Errorf("site %d in configuration of size %d: %w", site, len(c.spins), ErrOutOfRange)
	}
	return c.spins[site], nil
}

// Set assigns the spin at the given site, which must be +1 or -1.
func (c *Configuration) Set(site Site, s Spin) error {
	if site < 0 || int(site) >= len(c.spins) {
		return fmt.Errorf("site %d in configuration of size %d: %w", site, len(c.spins), ErrOutOfRange)
	}
	if !s.Valid() {
		return fmt.Errorf("spin %d, must be +1 or -1: %w", s, ErrInvalidArgument)
	}
	c.spins[site] = s
	return nil
}

// Flip negates the spin at the given site.
func (c *Configuration) Flip(site Site) error {
	if site < 0 || int(site) >= len(c.spins) {
		return fmt.Errorf("site %d in configuration of size %d: %w", site, len(c.spins), ErrOutOfRange)
	}
	c.flip(site)
	return nil
}

// flip is the unchecked fast path used by the sweep loop, where the site
// comes straight from the RNG and is in range by construction.
func (c *Configuration) flip(site Site) {
	c.spins[site] = -c.spins[site]
}

// Spins returns the underlying spin slice for linear iteration (magnetisation
// sums, bulk writes). Callers must not hold it across an Evolve call.
func (c *Configuration) Spins() []Spin {
	return c.spins
}
