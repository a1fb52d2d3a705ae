package qubit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// PhaseScale is the phase angle, in degrees, that moves a qubit one grid
// unit along x. One T gate is one unit.
const PhaseScale = 22.5

// RotationSteps returns the NumSteps+1 samples of a circular arc around the
// family pivot closest to p, sweeping angle degrees. Sample x is wrapped;
// sample y is not. A qubit sitting on its pivot yields a constant path.
func RotationSteps(p Point, family AxisFamily, angle float64) []Point {
	center := family.Pivot(p)
	offset := r2.Sub(p.vec(), center.vec())
	radius := r2.Norm(offset)
	start := math.Atan2(offset.Y, offset.X)
	sweep := angle * math.Pi / 180

	steps := make([]Point, 0, NumSteps+1)
	for i := 0; i <= NumSteps; i++ {
		t := float64(i) / NumSteps
		a := start + sweep*t
		v := r2.Add(center.vec(), r2.Scale(radius, r2.Vec{X: math.Cos(a), Y: math.Sin(a)}))
		steps = append(steps, pointOf(v).Normalize())
	}
	return steps
}

// PhaseSteps returns the NumSteps+1 samples of a straight x translation by
// angle/PhaseScale grid units, wrapping around the diagram. y is constant.
func PhaseSteps(p Point, angle float64) []Point {
	dx := angle / PhaseScale
	steps := make([]Point, 0, NumSteps+1)
	for i := 0; i <= NumSteps; i++ {
		t := float64(i) / NumSteps
		steps = append(steps, Point{X: WrapX(p.X + dx*t), Y: p.Y})
	}
	return steps
}
