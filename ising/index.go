package ising

// Site identifies one lattice site in flattened row-major order (last
// dimension fastest). Valid values are in [0, lattice size). Site is a
// distinct named type so a site index cannot be mixed up with a dimension
// count or a spin without an explicit conversion.
type Site int

// Spin is a single Ising spin. Valid values are exactly +1 and -1; sums over
// many spins are accumulated in plain int instead.
type Spin int8

// Valid reports whether s is one of the two legal spin values.
func (s Spin) Valid() bool {
	return s == 1 || s == -1
}

// multiIndex is the per-dimension coordinate form of a Site, one entry per
// lattice dimension, each coordinate < shape[dim].
type multiIndex []int

// flatIndex converts a multi-index to the flat row-major site index:
// flat = ((idx[0]*shape[1]+idx[1])*shape[2]+idx[2])...
func flatIndex(idx multiIndex, shape []int) Site {
	total := idx[0]
	for d := 1; d < len(shape); d++ {
		total = total*shape[d] + idx[d]
	}
	return Site(total)
}

// increment advances idx to the next multi-index in row-major order,
// odometer style: bump the last coordinate, on overflow reset it to zero and
// carry into the preceding one. After the last site the whole index wraps
// back to all zeros.
func (idx multiIndex) increment(shape []int) {
	for d := len(idx) - 1; d >= 0; d-- {
		idx[d]++
		if idx[d] < shape[d] {
			return
		}
		idx[d] = 0
	}
}

// incrementedAt returns a copy of idx with the coordinate at dim increased by
// one, wrapping shape[dim]-1 back to 0 (periodic boundary).
func (idx multiIndex) incrementedAt(dim int, shape []int) multiIndex {
	out := make(multiIndex, len(idx))
	copy(out, idx)
	if idx[dim] == shape[dim]-1 {
		out[dim] = 0
	} else {
		out[dim] = idx[dim] + 1
	}
	return out
}

// decrementedAt returns a copy of idx with the coordinate at dim decreased by
// one, wrapping 0 back to shape[dim]-1 (periodic boundary).
func (idx multiIndex) decrementedAt(dim int, shape []int) multiIndex {
	out := make(multiIndex, len(idx))
	copy(out, idx)
	if idx[dim] == 0 {
		out[dim] = shape[dim] - 1
	} else {
		out[dim] = idx[dim] - 1
	}
	return out
}
