package ising

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary condenses an observable history into the headline numbers reported
// at the end of a parameter point.
type Summary struct {
	MeanEnergy     float64
	ErrEnergy      float64 // standard error of the mean
	MeanMagn       float64
	ErrMagn        float64
	BinderCumulant float64 // 1 - <m^4> / (3 <m^2>^2)
	Samples        int
}

// Summarise computes summary statistics over the accumulated history. An
// empty accumulator yields a zero Summary.
func (o *Observables) Summarise() Summary {
	n := len(o.Energy)
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		MeanEnergy: stat.Mean(o.Energy, nil),
		MeanMagn:   stat.Mean(o.Magnetisation, nil),
		Samples:    n,
	}
	if n > 1 {
		s.ErrEnergy = stat.StdDev(o.Energy, nil) / math.Sqrt(float64(n))
		s.ErrMagn = stat.StdDev(o.Magnetisation, nil) / math.Sqrt(float64(n))
	}

	m2 := stat.MomentAbout(2, o.Magnetisation, 0, nil)
	m4 := stat.MomentAbout(4, o.Magnetisation, 0, nil)
	if m2 > 0 {
		s.BinderCumulant = 1 - m4/(3*m2*m2)
	}
	return s
}
