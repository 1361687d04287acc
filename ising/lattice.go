package ising

import (
	"fmt"
	"math"
	"sort"
)

// DistanceMetric selects how per-dimension minimum-image separations are
// combined into the squared distance that keys the correlator pair map.
type DistanceMetric int

const (
	// Euclidean is the sum of squared per-dimension separations.
	Euclidean DistanceMetric = iota
	// Manhattan is the square of the summed per-dimension separations.
	Manhattan
)

// CorrelatorConfig requests construction of the squared-distance pair map.
//
// MaxDistance restricts the map to pairs whose true (unsquared) minimum-image
// distance is strictly less than the bound; pair enumeration is quadratic in
// lattice size, so this is the only way to bound the one-time cost on large
// lattices. MaxDistance <= 0 means no bound (all pairs enter the map).
type CorrelatorConfig struct {
	MaxDistance float64
	Metric      DistanceMetric
}

// Lattice is an N-dimensional hyperrectangular lattice with full periodic
// boundary conditions. It is immutable after construction and may be shared
// read-only across any number of configurations and RNGs.
type Lattice struct {
	shape []int
	size  int

	// neighbours holds 2*ndim entries per site: for each dimension in order,
	// the successor then the predecessor. Precomputed once so the hot
	// Monte-Carlo loop gets O(1) neighbour lookups.
	neighbours []Site

	// distMap maps squared minimum-image distance to all unordered site pairs
	// at that separation. Empty unless a CorrelatorConfig was given.
	distMap     map[int][][2]Site
	sqDistances []int
}

// NewLattice constructs a lattice from a shape, one positive extent per
// dimension. corr is optional: nil skips the distance map entirely and the
// lattice then supports no correlator measurement.
func NewLattice(shape []int, corr *CorrelatorConfig) (*Lattice, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("lattice shape is empty: %w", ErrInvalidArgument)
	}
	for d, extent := range shape {
		if extent <= 0 {
			return nil, fmt.Errorf("lattice extent %d in dimension %d: %w", extent, d, ErrInvalidArgument)
		}
	}

	lat := &Lattice{
		shape: append([]int(nil), shape...),
		size:  latticeSize(shape),
	}
	lat.neighbours = makeNeighbourList(lat.shape)
	if corr != nil {
		lat.distMap = buildDistMap(lat.shape, corr.MaxDistance, corr.Metric)
		lat.sqDistances = sortedKeys(lat.distMap)
	}
	return lat, nil
}

// Size returns the total number of sites, the product of the shape.
func (l *Lattice) Size() int {
	return l.size
}

// NDim returns the number of dimensions.
func (l *Lattice) NDim() int {
	return len(l.shape)
}

// Shape returns a copy of the lattice shape.
func (l *Lattice) Shape() []int {
	return append([]int(nil), l.shape...)
}

// Extent returns the lattice extent in the given dimension.
func (l *Lattice) Extent(dim int) (int, error) {
	if dim < 0 || dim >= len(l.shape) {
		return 0, fmt.Errorf("dimension %d of %d-dimensional lattice: %w", dim, len(l.shape), ErrOutOfRange)
	}
	return l.shape[dim], nil
}

// Neighbour returns the site index of neighbour number neigh of site. The
// 2*NDim neighbours are ordered (successor, predecessor) per dimension in
// dimension order.
func (l *Lattice) Neighbour(site Site, neigh int) (Site, error) {
	if site < 0 || int(site) >= l.size {
		return 0, fmt.Errorf("site %d on lattice of size %d: %w", site, l.size, ErrOutOfRange)
	}
	if neigh < 0 || neigh >= 2*len(l.shape) {
		return 0, fmt.Errorf("neighbour number %d with %d neighbours per site: %w", neigh, 2*len(l.shape), ErrOutOfRange)
	}
	return l.neighbours[2*len(l.shape)*int(site)+neigh], nil
}

// Neighbours returns the contiguous slice of all 2*NDim neighbours of site.
// The slice aliases the lattice's internal table and must not be modified.
func (l *Lattice) Neighbours(site Site) ([]Site, error) {
	if site < 0 || int(site) >= l.size {
		return nil, fmt.Errorf("site %d on lattice of size %d: %w", site, l.size, ErrOutOfRange)
	}
	return l.neighbourSpan(site), nil
}

// neighbourSpan is the unchecked fast path for the model's inner loop; the
// caller guarantees site is in range.
func (l *Lattice) neighbourSpan(site Site) []Site {
	n := 2 * len(l.shape)
	base := n * int(site)
	return l.neighbours[base : base+n]
}

// SqDistances returns the ascending sequence of all squared distances present
// in the distance map. It is empty when the lattice was built without a
// CorrelatorConfig.
func (l *Lattice) SqDistances() []int {
	return l.sqDistances
}

// PairsWithSqDistance returns all unordered site pairs at the given squared
// minimum-image distance.
func (l *Lattice) PairsWithSqDistance(sqDistance int) ([][2]Site, error) {
	pairs, ok := l.distMap[sqDistance]
	if !ok {
		return nil, fmt.Errorf("squared distance %d not in distance map: %w", sqDistance, ErrOutOfRange)
	}
	return pairs, nil
}

func latticeSize(shape []int) int {
	size := 1
	for _, extent := range shape {
		size *= extent
	}
	return size
}

// makeNeighbourList walks every site once in row-major order, odometer style,
// and records the periodic successor and predecessor in each dimension at
// slots 2*ndim*site + 2*dim and 2*ndim*site + 2*dim + 1.
func makeNeighbourList(shape []int) []Site {
	ndim := len(shape)
	size := latticeSize(shape)

	neighbours := make([]Site, 2*ndim*size)
	idx := make(multiIndex, ndim)

	for site := 0; site < size; site++ {
		for d := 0; d < ndim; d++ {
			neighbours[2*ndim*site+2*d] = flatIndex(idx.incrementedAt(d, shape), shape)
			neighbours[2*ndim*site+2*d+1] = flatIndex(idx.decrementedAt(d, shape), shape)
		}
		idx.increment(shape)
	}

	return neighbours
}

// minDist1D returns the minimum-image separation of two coordinates in one
// periodic dimension of the given extent.
func minDist1D(x0, x1, extent int) int {
	forward := ((x1 - x0) % extent + extent) % extent
	backward := extent - forward
	if backward < forward {
		return backward
	}
	return forward
}

// sqMinDist combines the per-dimension minimum-image separations of two
// sites into a squared distance under the chosen metric.
func sqMinDist(site0, site1 multiIndex, shape []int, metric DistanceMetric) int {
	switch metric {
	case Manhattan:
		sum := 0
		for d := range shape {
			sum += minDist1D(site0[d], site1[d], shape[d])
		}
		return sum * sum
	default:
		sq := 0
		for d := range shape {
			sep := minDist1D(site0[d], site1[d], shape[d])
			sq += sep * sep
		}
		return sq
	}
}

// buildDistMap enumerates every unordered site pair (i <= j, the trivial
// i == j pair included) and buckets it by squared minimum-image distance.
// maxDist > 0 keeps only pairs with true distance strictly below the bound.
// This is the O(size^2 * ndim) dominant one-time cost on large lattices.
func buildDistMap(shape []int, maxDist float64, metric DistanceMetric) map[int][][2]Site {
	ndim := len(shape)
	size := latticeSize(shape)

	distMap := make(map[int][][2]Site)
	site0 := make(multiIndex, ndim)

	for i := 0; i < size; i++ {
		site1 := make(multiIndex, ndim)
		copy(site1, site0)
		for j := i; j < size; j++ {
			sq := sqMinDist(site0, site1, shape, metric)
			if maxDist <= 0 || math.Sqrt(float64(sq)) < maxDist {
				distMap[sq] = append(distMap[sq], [2]Site{Site(i), Site(j)})
			}
			site1.increment(shape)
		}
		site0.increment(shape)
	}

	return distMap
}

func sortedKeys(m map[int][][2]Site) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
