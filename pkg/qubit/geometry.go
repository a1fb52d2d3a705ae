// Package qubit implements the gate transformation and animation engine for
// the single-qubit circuit diagram, and the registry that owns qubit state.
//
// The package never draws. It produces positions and sample paths that a
// rendering collaborator (SVG/PNG writers, the terminal editor, a browser)
// consumes.
package qubit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Diagram extent. x wraps modulo Width; y is bounded by Height at rest.
const (
	Width  = 16.0
	Height = 8.0

	// PivotY is the y of every rotation pivot.
	PivotY = 4.0

	// NumSteps is the number of intervals in a generated path; a path
	// carries NumSteps+1 samples.
	NumSteps = 20
)

// Point represents a 2D coordinate on the diagram.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// DefaultStart is where a new qubit is placed unless configured otherwise.
var DefaultStart = Point{X: 2, Y: 8}

// pivotXs is the canonical center list. Encounter order breaks ties.
var pivotXs = [...]float64{2, 6, 10, 14}

// RestYs are the anchor values y takes at rest.
var RestYs = [...]float64{0, 4, 8}

// WrapX normalizes x into [0, Width).
func WrapX(x float64) float64 {
	x = math.Mod(x, Width)
	if x < 0 {
		x += Width
	}
	// -tiny + 16 rounds to 16 in float64
	if x >= Width {
		x = 0
	}
	return x
}

// Normalize returns p with its x wrapped into [0, Width).
func (p Point) Normalize() Point {
	return Point{X: WrapX(p.X), Y: p.Y}
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func pointOf(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// AxisFamily selects the pivot set used by a rotation.
type AxisFamily int

const (
	AxisX AxisFamily = iota
	AxisY
)

func (a AxisFamily) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return "unknown"
}

// Pivots returns the rotation centers of the family. Both families share
// the four centers on the middle line.
func (a AxisFamily) Pivots() []Point {
	out := make([]Point, len(pivotXs))
	for i, x := range pivotXs {
		out[i] = Point{X: x, Y: PivotY}
	}
	return out
}

// Pivot returns the center of the family whose x is closest to p.X.
func (a AxisFamily) Pivot(p Point) Point {
	pivots := a.Pivots()
	best := pivots[0]
	bestDist := math.Abs(p.X - best.X)
	for _, c := range pivots[1:] {
		if d := math.Abs(p.X - c.X); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
