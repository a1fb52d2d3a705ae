package qubit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagram(t *testing.T) {
	g := Diagram()

	assert.Equal(t, Width, g.Width)
	assert.Equal(t, Height, g.Height)
	assert.Len(t, g.Verticals, 4)
	assert.Len(t, g.Horizontals, 3)
	assert.Len(t, g.PhaseLabels, 4)
	assert.Len(t, g.Guides, 8)

	for i, v := range g.Verticals {
		assert.Equal(t, v.From.X, v.To.X)
		assert.Equal(t, 0.0, v.From.Y)
		assert.Equal(t, Height, v.To.Y)
		assert.Equal(t, AxisX.Pivots()[i].X, v.From.X)
	}

	texts := make([]string, 0, len(g.PhaseLabels))
	for _, l := range g.PhaseLabels {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"+", "+i", "-", "- i"}, texts)

	for _, gd := range g.Guides {
		assert.Equal(t, gd.Pivot, gd.Family.Pivot(gd.Pivot), gd.ID)
	}

	// callers may not alias the shared tables
	g.Verticals[0].From.X = 99
	assert.Equal(t, 2.0, Diagram().Verticals[0].From.X)
}
