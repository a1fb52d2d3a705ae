package qcfile

import (
	"math"
	"testing"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

func TestSplitAtWrap(t *testing.T) {
	runs := SplitAtWrap(qubit.PhaseSteps(qubit.Point{X: 14, Y: 8}, 180))
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if len(runs[0]) != 5 || len(runs[1]) != 16 {
		t.Errorf("run lengths %d and %d, expected 5 and 16", len(runs[0]), len(runs[1]))
	}
	if runs[1][0].X != 0 {
		t.Errorf("second run starts at x=%v, expected 0", runs[1][0].X)
	}

	if runs := SplitAtWrap(qubit.PhaseSteps(qubit.Point{X: 2, Y: 8}, 90)); len(runs) != 1 {
		t.Errorf("path without wrap split into %d runs", len(runs))
	}
	if SplitAtWrap(nil) != nil {
		t.Error("empty path should give no runs")
	}
}

func TestSmoothPath(t *testing.T) {
	run := []qubit.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	spline := SmoothPath(run)

	if len(spline) != 7 {
		t.Fatalf("expected 7 points, got %d", len(spline))
	}
	for i, p := range run {
		if spline[3*i] != p {
			t.Errorf("spline[%d] = %v, expected waypoint %v", 3*i, spline[3*i], p)
		}
	}

	// First control point uses the clamped neighbor.
	want := qubit.Point{X: 1.0 / 6, Y: 1.0 / 6}
	if math.Abs(spline[1].X-want.X) > 1e-12 || math.Abs(spline[1].Y-want.Y) > 1e-12 {
		t.Errorf("ctrl1 = %v, expected %v", spline[1], want)
	}

	short := []qubit.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	if got := SmoothPath(short); len(got) != 2 {
		t.Errorf("two-point run should pass through, got %d points", len(got))
	}
}

func TestCubicAt(t *testing.T) {
	p0 := qubit.Point{X: 0, Y: 0}
	p1 := qubit.Point{X: 1, Y: 2}
	p2 := qubit.Point{X: 3, Y: 2}
	p3 := qubit.Point{X: 4, Y: 0}

	if got := cubicAt(p0, p1, p2, p3, 0); got != p0 {
		t.Errorf("t=0 gave %v", got)
	}
	if got := cubicAt(p0, p1, p2, p3, 1); got != p3 {
		t.Errorf("t=1 gave %v", got)
	}
	mid := cubicAt(p0, p1, p2, p3, 0.5)
	if math.Abs(mid.X-2) > 1e-12 || math.Abs(mid.Y-1.5) > 1e-12 {
		t.Errorf("t=0.5 gave %v, expected (2, 1.5)", mid)
	}
}
