package qubit

import (
	"math"
	"testing"
)

// FuzzApply checks the path invariants for arbitrary starting points.
func FuzzApply(f *testing.F) {
	f.Add(2.0, 8.0, 0)
	f.Add(15.99, 0.0, 6)
	f.Add(-3.5, 4.0, 3)
	f.Add(6.0, 4.0, 1)
	f.Add(1e5, 7.5, 5)

	f.Fuzz(func(t *testing.T, x, y float64, gi int) {
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			t.Skip()
		}
		if math.Abs(x) > 1e9 || y < 0 || y > Height {
			t.Skip()
		}
		n := len(Gates)
		g := Gates[((gi%n)+n)%n]

		tr, err := Apply(Point{x, y}, g)
		if err != nil {
			t.Fatalf("Apply(%v, %v) failed: %v", x, g, err)
		}

		want := NumSteps + 1
		if g == Hadamard {
			want *= 2
		}
		if len(tr.Steps) != want {
			t.Fatalf("%s: got %d samples, want %d", g, len(tr.Steps), want)
		}
		if tr.Final != tr.Steps[len(tr.Steps)-1] {
			t.Errorf("%s: final %v is not the last sample", g, tr.Final)
		}

		for i, s := range tr.Steps {
			if s.X < 0 || s.X >= Width {
				t.Errorf("%s: step %d x=%v outside [0, %v)", g, i, s.X, Width)
			}
			if g.Kind() == KindPhase && s.Y != y {
				t.Errorf("%s: step %d changed y to %v", g, i, s.Y)
			}
		}
	})
}
