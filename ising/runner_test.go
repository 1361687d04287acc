package ising

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, shape []int, start StartMode) (*Runner, *Lattice) {
	t.Helper()
	lat, err := NewLattice(shape, nil)
	require.NoError(t, err)
	rng, err := NewRNG(lat.Size(), 42)
	require.NoError(t, err)
	runner, err := NewRunner(lat, rng, start)
	require.NoError(t, err)
	return runner, lat
}

func TestParseStartMode(t *testing.T) {
	mode, err := ParseStartMode("hot")
	require.NoError(t, err)
	assert.Equal(t, StartHot, mode)

	mode, err = ParseStartMode("cold")
	require.NoError(t, err)
	assert.Equal(t, StartCold, mode)

	_, err = ParseStartMode("lukewarm")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewRunner_StartModes(t *testing.T) {
	runner, _ := newTestRunner(t, []int{8, 8}, StartCold)
	assert.Equal(t, 1.0, Magnetisation(runner.Configuration()))

	runner, _ = newTestRunner(t, []int{8, 8}, StartHot)
	assert.Less(t, Magnetisation(runner.Configuration()), 1.0)

	lat, err := NewLattice([]int{4}, nil)
	require.NoError(t, err)
	rng, err := NewRNG(lat.Size(), 1)
	require.NoError(t, err)
	_, err = NewRunner(lat, rng, StartMode("tepid"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRunner_RunPoint(t *testing.T) {
	runner, lat := newTestRunner(t, []int{6, 6}, StartHot)

	point := PointConfig{Params: Parameters{JT: 0.3, HT: 0.0}, NTherm: 10, NProd: 25}
	res := runner.RunPoint(point, nil)

	assert.Equal(t, point.Params, res.Params)
	assert.Len(t, res.Observables.Energy, 25)
	assert.Len(t, res.Observables.Magnetisation, 25)
	assert.GreaterOrEqual(t, res.ProdAcceptance, 0.0)
	assert.LessOrEqual(t, res.ProdAcceptance, 1.0)

	// chain state after the point is consistent with the full Hamiltonian
	assert.InDelta(t, Hamiltonian(runner.Configuration(), point.Params, lat),
		res.Observables.Energy[len(res.Observables.Energy)-1], 1e-8)
}

func TestRunner_RunAllPoints(t *testing.T) {
	runner, _ := newTestRunner(t, []int{5, 5}, StartCold)

	points := []PointConfig{
		{Params: Parameters{JT: 0.2}, NTherm: 5, NProd: 10},
		{Params: Parameters{JT: 0.4}, NTherm: 5, NProd: 15},
		{Params: Parameters{JT: 0.6, HT: 0.1}, NTherm: 5, NProd: 20},
	}

	calls := make([]int, len(points))
	results, err := runner.Run(points, 3, func(ensemble int, params Parameters) []Measurement {
		return []Measurement{func(*Configuration, float64) { calls[ensemble]++ }}
	})
	require.NoError(t, err)

	require.Len(t, results, len(points))
	for i, res := range results {
		assert.Equal(t, points[i].Params, res.Params)
		assert.Len(t, res.Observables.Energy, points[i].NProd)
		// the snapshot callback fires once per production sweep
		assert.Equal(t, points[i].NProd, calls[i])
	}
}

func TestRunner_RunNoPoints(t *testing.T) {
	runner, _ := newTestRunner(t, []int{4}, StartCold)

	_, err := runner.Run(nil, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// Identical seeds and schedules must reproduce the run exactly.
func TestRunner_Deterministic(t *testing.T) {
	run := func() []float64 {
		lat, err := NewLattice([]int{5, 5}, nil)
		require.NoError(t, err)
		rng, err := NewRNG(lat.Size(), 7)
		require.NoError(t, err)
		runner, err := NewRunner(lat, rng, StartHot)
		require.NoError(t, err)

		results, err := runner.Run([]PointConfig{
			{Params: Parameters{JT: 0.35}, NTherm: 5, NProd: 20},
		}, 5, nil)
		require.NoError(t, err)
		return results[0].Observables.Energy
	}

	assert.Equal(t, run(), run())
}
