package qcfile

import (
	"math"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y float64 // Center
	W, H float64 // Full width and height
}

// RectOverlap returns the overlap area between two rectangles, 0 if they
// are apart.
func RectOverlap(a, b Rect) float64 {
	overlapX := (a.W/2 + b.W/2) - math.Abs(a.X-b.X)
	overlapY := (a.H/2 + b.H/2) - math.Abs(a.Y-b.Y)

	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}

// LabelPlacer places labels around anchors, avoiding what was placed before.
type LabelPlacer struct {
	obstacles []Rect
}

// NewLabelPlacer creates a LabelPlacer with initial obstacles.
func NewLabelPlacer(obstacles []Rect) *LabelPlacer {
	obs := make([]Rect, len(obstacles))
	copy(obs, obstacles)
	return &LabelPlacer{obstacles: obs}
}

// PlaceLabel returns the center of a labelW x labelH box near anchor. The
// first candidate without overlap wins; otherwise the least overlapping one.
// The chosen box becomes an obstacle for later labels.
func (lp *LabelPlacer) PlaceLabel(anchor qubit.Point, labelW, labelH, gap float64) qubit.Point {
	dx := labelW/2 + gap
	dy := labelH/2 + gap
	candidates := []qubit.Point{
		{X: anchor.X + dx, Y: anchor.Y - dy}, // top-right
		{X: anchor.X, Y: anchor.Y - dy},      // above
		{X: anchor.X + dx, Y: anchor.Y},      // right
		{X: anchor.X - dx, Y: anchor.Y - dy}, // top-left
		{X: anchor.X, Y: anchor.Y + dy},      // below
		{X: anchor.X - dx, Y: anchor.Y},      // left
		{X: anchor.X + dx, Y: anchor.Y + dy}, // bottom-right
		{X: anchor.X - dx, Y: anchor.Y + dy}, // bottom-left
	}

	best := candidates[0]
	bestOverlap := math.MaxFloat64

	for _, pos := range candidates {
		r := Rect{pos.X, pos.Y, labelW, labelH}
		total := 0.0
		for _, obs := range lp.obstacles {
			total += RectOverlap(r, obs)
		}
		if total == 0 {
			lp.obstacles = append(lp.obstacles, r)
			return pos
		}
		if total < bestOverlap {
			bestOverlap = total
			best = pos
		}
	}

	lp.obstacles = append(lp.obstacles, Rect{best.X, best.Y, labelW, labelH})
	return best
}
