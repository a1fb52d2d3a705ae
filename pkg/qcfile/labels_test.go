package qcfile

import (
	"math"
	"testing"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

func TestRectOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected float64
	}{
		{"horizontally separated", Rect{0, 0, 10, 10}, Rect{20, 0, 10, 10}, 0},
		{"vertically separated", Rect{0, 0, 10, 10}, Rect{0, 20, 10, 10}, 0},
		{"touching", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, 0},
		{"same rect", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, 100},
		{"partial", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := RectOverlap(tc.a, tc.b)
			if math.Abs(result-tc.expected) > 0.01 {
				t.Errorf("expected overlap %.2f, got %.2f", tc.expected, result)
			}
		})
	}
}

func TestLabelPlacer(t *testing.T) {
	marker := Rect{X: 100, Y: 100, W: 10, H: 10}
	placer := NewLabelPlacer([]Rect{marker})

	first := placer.PlaceLabel(qubit.Point{X: 100, Y: 100}, 60, 12, 5)
	firstRect := Rect{first.X, first.Y, 60, 12}
	if overlap := RectOverlap(firstRect, marker); overlap > 0 {
		t.Errorf("label at (%.1f, %.1f) overlaps the marker", first.X, first.Y)
	}

	// A second label at the same anchor must avoid the first one.
	second := placer.PlaceLabel(qubit.Point{X: 100, Y: 100}, 60, 12, 5)
	if second == first {
		t.Fatalf("second label placed on top of the first at (%.1f, %.1f)", first.X, first.Y)
	}
	secondRect := Rect{second.X, second.Y, 60, 12}
	if overlap := RectOverlap(secondRect, firstRect); overlap > 0 {
		t.Errorf("labels overlap by %.2f", overlap)
	}
}

func TestLabelPlacerCrowded(t *testing.T) {
	// Everything around the anchor is taken; the placer still answers.
	placer := NewLabelPlacer([]Rect{{X: 0, Y: 0, W: 1000, H: 1000}})
	pos := placer.PlaceLabel(qubit.Point{}, 20, 10, 2)
	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
		t.Fatal("no position returned")
	}
}
