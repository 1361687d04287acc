package ising

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarise_Empty(t *testing.T) {
	lat, err := NewLattice([]int{4}, nil)
	require.NoError(t, err)

	assert.Equal(t, Summary{}, NewObservables(lat).Summarise())
}

func TestSummarise_KnownValues(t *testing.T) {
	obs := &Observables{
		Energy:        []float64{-10, -12, -14},
		Magnetisation: []float64{1, 1, 1},
	}

	s := obs.Summarise()
	assert.InDelta(t, -12.0, s.MeanEnergy, 1e-12)
	assert.InDelta(t, 1.0, s.MeanMagn, 1e-12)
	assert.Equal(t, 3, s.Samples)
	// constant magnetisation: <m^4> = <m^2>^2, Binder cumulant 1 - 1/3
	assert.InDelta(t, 2.0/3.0, s.BinderCumulant, 1e-12)
	// errors are positive for a non-constant series
	assert.Greater(t, s.ErrEnergy, 0.0)
	assert.InDelta(t, 0.0, s.ErrMagn, 1e-12)
}

func TestSummarise_SingleSample(t *testing.T) {
	obs := &Observables{
		Energy:        []float64{-3.5},
		Magnetisation: []float64{0.5},
	}

	s := obs.Summarise()
	assert.Equal(t, -3.5, s.MeanEnergy)
	assert.Equal(t, 0.5, s.MeanMagn)
	assert.Equal(t, 0.0, s.ErrEnergy)
	assert.Equal(t, 1, s.Samples)
}
