package qcfile

import (
	"math"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// SplitAtWrap cuts a path wherever consecutive samples jump across the
// x wraparound, so no renderer draws a line back across the diagram.
func SplitAtWrap(path []qubit.Point) [][]qubit.Point {
	if len(path) == 0 {
		return nil
	}
	var runs [][]qubit.Point
	start := 0
	for i := 1; i < len(path); i++ {
		if math.Abs(path[i].X-path[i-1].X) > qubit.Width/2 {
			runs = append(runs, path[start:i])
			start = i
		}
	}
	return append(runs, path[start:])
}

// SmoothPath turns a run of samples into cubic Bézier segments using the
// Catmull-Rom conversion. The result is [P0, C1, C2, P1, C3, C4, P2, ...].
// Runs of two points or fewer are returned unchanged.
func SmoothPath(run []qubit.Point) []qubit.Point {
	if len(run) <= 2 {
		return run
	}

	result := []qubit.Point{run[0]}
	last := len(run) - 1

	for i := 0; i < last; i++ {
		p0 := run[max(0, i-1)]
		p1 := run[i]
		p2 := run[min(last, i+1)]
		p3 := run[min(last, i+2)]

		ctrl1 := qubit.Point{
			X: p1.X + (p2.X-p0.X)/6,
			Y: p1.Y + (p2.Y-p0.Y)/6,
		}
		ctrl2 := qubit.Point{
			X: p2.X - (p3.X-p1.X)/6,
			Y: p2.Y - (p3.Y-p1.Y)/6,
		}
		result = append(result, ctrl1, ctrl2, p2)
	}

	return result
}

// cubicAt evaluates one Bézier segment at t in [0,1].
func cubicAt(p0, p1, p2, p3 qubit.Point, t float64) qubit.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return qubit.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
