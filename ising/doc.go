// Package ising provides the core engine for Markov-Chain Monte-Carlo
// simulation of the N-dimensional Ising model on hyperrectangular lattices
// with periodic boundary conditions.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - lattice.go: Lattice topology, the precomputed neighbour list, and the
//     squared-distance pair map used for correlator measurement
//   - model.go: the Hamiltonian, the closed-form single-flip energy delta,
//     and magnetisation
//   - montecarlo.go: the Metropolis-Hastings sweep loop and observable sampling
//
// # Architecture
//
// All state is threaded explicitly: Evolve takes a Configuration, its energy,
// and an RNG, and returns the evolved Configuration, the updated energy, and
// the realized acceptance rate. The engine itself holds no state between
// calls, which is what lets a thermalization phase followed by a production
// phase compose into one unbroken Markov chain.
//
// Runner orchestrates multi-parameter-point runs (initial thermalization,
// then per point: thermalize, produce, measure); file output lives in the
// ising/output sub-package and is injected through Measurement callbacks so
// the engine never touches the filesystem.
package ising
