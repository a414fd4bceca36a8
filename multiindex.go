package dtransform

import (
	"sort"
	"strconv"
	"strings"
)

// MultiIndex is an ordered tuple of non-negative derivative orders, one per
// variable of a spectrum.
type MultiIndex []int

// Degree is the sum of the components (the total derivative order).
func (k MultiIndex) Degree() int {
	d := 0
	for _, c := range k {
		d += c
	}
	return d
}

func (k MultiIndex) Equal(o MultiIndex) bool {
	if len(k) != len(o) {
		return false
	}
	for i := range k {
		if k[i] != o[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether every component is zero.
func (k MultiIndex) IsZero() bool {
	for _, c := range k {
		if c != 0 {
			return false
		}
	}
	return true
}

// LessEqual reports component-wise k <= o.
func (k MultiIndex) LessEqual(o MultiIndex) bool {
	for i := range k {
		if k[i] > o[i] {
			return false
		}
	}
	return true
}

// Sub returns the component-wise difference k - o.
func (k MultiIndex) Sub(o MultiIndex) MultiIndex {
	out := make(MultiIndex, len(k))
	for i := range k {
		out[i] = k[i] - o[i]
	}
	return out
}

// Key is the canonical map-key form, e.g. "1,0,2".
func (k MultiIndex) Key() string {
	parts := make([]string, len(k))
	for i, c := range k {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

func (k MultiIndex) String() string {
	parts := make([]string, len(k))
	for i, c := range k {
		parts[i] = strconv.Itoa(c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// compareIndices orders by ascending degree, ties broken lexicographically.
// This is the total order the division recurrence depends on: for i+j = k
// with i non-zero, j always sorts strictly before k.
func compareIndices(a, b MultiIndex) int {
	da, db := a.Degree(), b.Degree()
	if da != db {
		if da < db {
			return -1
		}
		return 1
	}
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Grid enumerates every multi-index over nvars variables with components in
// [0, order]. Enumeration is pure and deterministic.
type Grid struct {
	Vars  int
	Order int
}

// Indices returns all (order+1)^vars multi-indices in degree-ascending,
// then lexicographic, order.
func (g Grid) Indices() []MultiIndex {
	if g.Vars == 0 {
		return []MultiIndex{{}}
	}
	total := 1
	for i := 0; i < g.Vars; i++ {
		total *= g.Order + 1
	}
	out := make([]MultiIndex, 0, total)
	cur := make(MultiIndex, g.Vars)
	for {
		idx := make(MultiIndex, g.Vars)
		copy(idx, cur)
		out = append(out, idx)
		// Odometer increment.
		p := g.Vars - 1
		for p >= 0 {
			cur[p]++
			if cur[p] <= g.Order {
				break
			}
			cur[p] = 0
			p--
		}
		if p < 0 {
			break
		}
	}
	sort.Slice(out, func(i, j int) bool { return compareIndices(out[i], out[j]) < 0 })
	return out
}

// Within reports whether every component of k lies in [0, order].
func (g Grid) Within(k MultiIndex) bool {
	if len(k) != g.Vars {
		return false
	}
	for _, c := range k {
		if c < 0 || c > g.Order {
			return false
		}
	}
	return true
}
