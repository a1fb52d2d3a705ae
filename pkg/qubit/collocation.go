package qubit

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is the collocation tolerance used when none is given.
const DefaultTolerance = 1e-6

// Collocated reports whether p and q lie within tol of each other on both
// axes, measuring x across the wrap.
func Collocated(p, q Point, tol float64) bool {
	dx := math.Abs(WrapX(p.X) - WrapX(q.X))
	if dx > Width/2 {
		dx = Width - dx
	}
	return scalar.EqualWithinAbs(dx, 0, tol) && scalar.EqualWithinAbs(p.Y, q.Y, tol)
}

type indexEntry struct {
	id  int
	pos Point
}

// CollocationIndex groups qubits whose positions coincide within a
// tolerance. It is a derived view; Rebuild it after every registry change.
type CollocationIndex struct {
	tolerance float64
	entries   []indexEntry
}

// NewCollocationIndex creates an empty index with the given default
// tolerance.
func NewCollocationIndex(tolerance float64) *CollocationIndex {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &CollocationIndex{tolerance: tolerance}
}

// Tolerance returns the default tolerance.
func (ci *CollocationIndex) Tolerance() float64 {
	return ci.tolerance
}

// Rebuild replaces the indexed positions. qubits must be in insertion order.
func (ci *CollocationIndex) Rebuild(qubits []Qubit) {
	ci.entries = ci.entries[:0]
	for _, q := range qubits {
		ci.entries = append(ci.entries, indexEntry{q.ID, q.Position})
	}
}

// GroupsAt returns the ids of every qubit within tol of p, in insertion
// order. A non-positive tol falls back to the index default.
func (ci *CollocationIndex) GroupsAt(p Point, tol float64) []int {
	if tol <= 0 {
		tol = ci.tolerance
	}
	var ids []int
	for _, e := range ci.entries {
		if Collocated(e.pos, p, tol) {
			ids = append(ids, e.id)
		}
	}
	return ids
}

// Groups returns every set of two or more collocated qubits. Each group is
// seeded by its lowest id and holds the later qubits near the seed.
func (ci *CollocationIndex) Groups() [][]int {
	taken := make([]bool, len(ci.entries))
	var groups [][]int
	for i, seed := range ci.entries {
		if taken[i] {
			continue
		}
		group := []int{seed.id}
		for j := i + 1; j < len(ci.entries); j++ {
			if !taken[j] && Collocated(seed.pos, ci.entries[j].pos, ci.tolerance) {
				taken[j] = true
				group = append(group, ci.entries[j].id)
			}
		}
		if len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}

// CombinedLabel formats ids the way the hover label shows them.
func CombinedLabel(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("Qubit %d", id)
	}
	return strings.Join(parts, ", ")
}
