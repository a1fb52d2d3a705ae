package qubit

import "fmt"

// Transform is the result of applying one gate: the resting position and
// the ordered samples leading to it.
type Transform struct {
	Final Point
	Steps []Point
}

// Apply computes the transform of gate g on a qubit at p. It fails with
// ErrUnknownGate for values outside the closed gate set.
func Apply(p Point, g Gate) (Transform, error) {
	if !g.Valid() {
		return Transform{}, fmt.Errorf("%w: %d", ErrUnknownGate, int(g))
	}
	p = p.Normalize()

	var steps []Point
	switch g.Kind() {
	case KindRotation:
		steps = RotationSteps(p, g.Family(), g.Angle())
	case KindPhase:
		steps = PhaseSteps(p, g.Angle())
	case KindComposite:
		steps = hadamardSteps(p)
	}

	return Transform{Final: steps[len(steps)-1], Steps: steps}, nil
}

// hadamardSteps is an x-family half turn followed by a y-family quarter
// turn started from where the half turn ends.
func hadamardSteps(p Point) []Point {
	xs := RotationSteps(p, AxisX, 180)
	ys := RotationSteps(xs[len(xs)-1], AxisY, 90)
	return append(xs, ys...)
}

// Replay applies gates in order from start and returns the final position.
func Replay(start Point, gates []Gate) (Point, error) {
	pos := start.Normalize()
	for i, g := range gates {
		tr, err := Apply(pos, g)
		if err != nil {
			return pos, fmt.Errorf("gate %d: %w", i, err)
		}
		pos = tr.Final
	}
	return pos, nil
}
