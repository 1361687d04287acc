package ising

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomTestConfiguration(t *testing.T, size int, seed int64) *Configuration {
	t.Helper()
	rng, err := NewRNG(size, seed)
	require.NoError(t, err)
	cfg, err := RandomConfiguration(size, rng)
	require.NoError(t, err)
	return cfg
}

func TestSumOfNeighbours(t *testing.T) {
	lat, err := NewLattice([]int{5}, nil)
	require.NoError(t, err)
	cfg, err := NewConfiguration(5, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, SumOfNeighbours(cfg, 0, lat))

	require.NoError(t, cfg.Set(1, -1))
	assert.Equal(t, 0, SumOfNeighbours(cfg, 0, lat)) // neighbours 1 and 4
	assert.Equal(t, 2, SumOfNeighbours(cfg, 3, lat)) // neighbours 2 and 4
}

// DeltaE must equal the difference of the full Hamiltonian across a flip for
// every site of every configuration. This is the primary correctness property
// of the energy model.
func TestDeltaE_MatchesHamiltonianDifference(t *testing.T) {
	shapes := [][]int{{6}, {4, 4}, {3, 3, 3}}
	params := []Parameters{
		{JT: 0.5, HT: 0.0},
		{JT: 0.3, HT: 0.2},
		{JT: -0.7, HT: 1.3},
	}

	for _, shape := range shapes {
		lat, err := NewLattice(shape, nil)
		require.NoError(t, err)
		cfg := randomTestConfiguration(t, lat.Size(), 987)

		for _, p := range params {
			before := Hamiltonian(cfg, p, lat)
			for site := 0; site < lat.Size(); site++ {
				delta := DeltaE(cfg, Site(site), p, lat)

				require.NoError(t, cfg.Flip(Site(site)))
				after := Hamiltonian(cfg, p, lat)
				require.NoError(t, cfg.Flip(Site(site)))

				assert.InDelta(t, after-before, delta, 1e-10,
					"shape %v, site %d, params %+v", shape, site, p)
			}
		}
	}
}

// With J == 0 the coupling term vanishes and the energy is just the field
// term, -h/kT * magnetisation * size.
func TestHamiltonian_ZeroCoupling(t *testing.T) {
	lat, err := NewLattice([]int{4, 4}, nil)
	require.NoError(t, err)
	cfg := randomTestConfiguration(t, lat.Size(), 11)

	p := Parameters{JT: 0.0, HT: 0.75}
	want := -p.HT * Magnetisation(cfg) * float64(lat.Size())
	assert.InDelta(t, want, Hamiltonian(cfg, p, lat), 1e-10)
}

// For the fully aligned configuration every bond contributes -J and every
// site contributes -h: H = -(ndim*J + h) * size.
func TestHamiltonian_Aligned(t *testing.T) {
	shapes := [][]int{{8}, {4, 4}, {2, 3, 4}}
	p := Parameters{JT: 0.4, HT: 0.1}

	for _, shape := range shapes {
		lat, err := NewLattice(shape, nil)
		require.NoError(t, err)
		cfg, err := NewConfiguration(lat.Size(), 1)
		require.NoError(t, err)

		want := -(float64(lat.NDim())*p.JT + p.HT) * float64(lat.Size())
		assert.InDelta(t, want, Hamiltonian(cfg, p, lat), 1e-10, "shape %v", shape)
	}
}

// 3x3 checkerboard: every bond along a row or column joins opposite spins
// except where the odd extent forces the wrap to align. Works out to
// H = 6*J/kT + h/kT for any parameters.
func TestHamiltonian_Checkerboard3x3(t *testing.T) {
	lat, err := NewLattice([]int{3, 3}, nil)
	require.NoError(t, err)
	cfg, err := NewConfiguration(9, 1)
	require.NoError(t, err)

	pattern := []Spin{-1, 1, -1, 1, -1, 1, -1, 1, -1}
	for i, s := range pattern {
		require.NoError(t, cfg.Set(Site(i), s))
	}

	for _, p := range []Parameters{{JT: 1, HT: 0}, {JT: 0.31, HT: -2.5}, {JT: -4, HT: 7}} {
		want := 6*p.JT + p.HT
		assert.InDelta(t, want, Hamiltonian(cfg, p, lat), 1e-10, "params %+v", p)
	}
}

func TestMagnetisation(t *testing.T) {
	cfg, err := NewConfiguration(4, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, Magnetisation(cfg))

	require.NoError(t, cfg.Flip(0))
	assert.Equal(t, 0.5, Magnetisation(cfg))

	require.NoError(t, cfg.Flip(1))
	require.NoError(t, cfg.Flip(2))
	require.NoError(t, cfg.Flip(3))
	assert.Equal(t, -1.0, Magnetisation(cfg))
}
