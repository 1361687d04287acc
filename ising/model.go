package ising

// The energy counts each undirected bond exactly once: if <x,y> is a pair of
// nearest neighbours, the link x->y contributes but y->x does not. A factor
// absorbed into J converts to the both-directions convention.

// Parameters are the dimensionless physical parameters of one ensemble.
type Parameters struct {
	// JT is the coupling J / (k_B T).
	JT float64
	// HT is the external field h / (k_B T).
	HT float64
}

// SumOfNeighbours returns the sum of the spins on all 2*NDim neighbours of
// site. site must be in range for both cfg and lat.
func SumOfNeighbours(cfg *Configuration, site Site, lat *Lattice) int {
	sum := 0
	for _, n := range lat.neighbourSpan(site) {
		sum += int(cfg.spins[n])
	}
	return sum
}

// Hamiltonian evaluates the full energy of a configuration,
//
//	H = -J/kT * sum_i s_i * (sum of neighbours of i) / 2  -  h/kT * sum_i s_i
//
// The division by two corrects for each bond being seen from both endpoints.
func Hamiltonian(cfg *Configuration, params Parameters, lat *Lattice) float64 {
	coupling := 0
	magn := 0
	for i := 0; i < lat.Size(); i++ {
		coupling += int(cfg.spins[i]) * SumOfNeighbours(cfg, Site(i), lat)
		magn += int(cfg.spins[i])
	}
	return -params.JT*float64(coupling)/2.0 - params.HT*float64(magn)
}

// DeltaE returns the exact energy change if the spin at site were flipped,
// in closed form without recomputing the full Hamiltonian. It equals
// Hamiltonian(after flip) - Hamiltonian(before flip) for all configurations.
func DeltaE(cfg *Configuration, site Site, params Parameters, lat *Lattice) float64 {
	return 2.0 * float64(cfg.spins[site]) *
		(params.JT*float64(SumOfNeighbours(cfg, site, lat)) + params.HT)
}

// Magnetisation returns the mean spin value of a configuration.
func Magnetisation(cfg *Configuration) float64 {
	sum := 0
	for _, s := range cfg.spins {
		sum += int(s)
	}
	return float64(sum) / float64(len(cfg.spins))
}
