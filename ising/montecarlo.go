package ising

import "math"

// Measurement is a side-effecting callback invoked once after every completed
// sweep with the current configuration and energy. This is the injection
// point for external collaborators such as snapshot writers; the engine does
// not inspect anything a Measurement does.
type Measurement func(cfg *Configuration, energy float64)

// Correlator accumulates, per squared distance in the lattice's distance map,
// the running history of mean(s_i * s_j) over all pairs at that distance.
type Correlator struct {
	// SqDistances is the ascending list of squared distances being sampled,
	// fixed at construction.
	SqDistances []int
	// History has one series per entry of SqDistances, appended per sweep.
	History [][]float64
}

// Observables accumulates per-sweep measurements during a production phase.
// Create one fresh per parameter point and read it out at the end; it only
// ever grows.
type Observables struct {
	Energy        []float64
	Magnetisation []float64
	Corr          Correlator
}

// NewObservables creates an empty accumulator sized for lat's distance map.
func NewObservables(lat *Lattice) *Observables {
	sqd := lat.SqDistances()
	return &Observables{
		Corr: Correlator{
			SqDistances: sqd,
			History:     make([][]float64, len(sqd)),
		},
	}
}

// measure appends one sample of every observable.
func (o *Observables) measure(lat *Lattice, cfg *Configuration, energy float64) {
	o.Energy = append(o.Energy, energy)
	o.Magnetisation = append(o.Magnetisation, Magnetisation(cfg))

	for di, sqd := range o.Corr.SqDistances {
		pairs := lat.distMap[sqd]
		sum := 0
		for _, p := range pairs {
			sum += int(cfg.spins[p[0]]) * int(cfg.spins[p[1]])
		}
		o.Corr.History[di] = append(o.Corr.History[di], float64(sum)/float64(len(pairs)))
	}
}

// Evolve advances cfg through nSweeps Metropolis-Hastings sweeps, each one
// consisting of lat.Size() single-spin-flip proposals.
//
// energy must be the total energy of cfg under params; the engine trusts it
// and only applies incremental deltas. obs may be nil to skip measurement.
// Each entry of extra is called after every sweep, in order.
//
// Evolve returns the evolved configuration, its energy, and the acceptance
// rate over all proposals. All chain state is threaded through arguments and
// results, so consecutive calls continue one unbroken Markov chain.
func Evolve(cfg *Configuration, energy float64, params Parameters, lat *Lattice,
	rng *RNG, nSweeps int, obs *Observables, extra []Measurement) (*Configuration, float64, float64) {

	accepted := 0

	for sweep := 0; sweep < nSweeps; sweep++ {
		for step := 0; step < lat.Size(); step++ {
			site := rng.Site()
			delta := DeltaE(cfg, site, params, lat)

			// Metropolis-Hastings accept-reject. The delta <= 0 short-circuit
			// skips the exponential and the second draw without changing any
			// acceptance outcome.
			if delta <= 0 || math.Exp(-delta) > rng.Real() {
				cfg.flip(site)
				energy += delta
				accepted++
			}
		}

		if obs != nil {
			obs.measure(lat, cfg, energy)
		}
		for _, meas := range extra {
			meas(cfg, energy)
		}
	}

	accRate := 0.0
	if nSweeps > 0 {
		accRate = float64(accepted) / float64(nSweeps) / float64(lat.Size())
	}
	return cfg, energy, accRate
}
