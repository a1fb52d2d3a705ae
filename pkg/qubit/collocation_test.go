package qubit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollocated(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		tol  float64
		want bool
	}{
		{"identical", Point{10, 8}, Point{10, 8}, 1e-6, true},
		{"rotation noise", Point{2.0000000000000004, 0}, Point{2, 1e-15}, 1e-6, true},
		{"across the wrap", Point{15.9999999, 4}, Point{0, 4}, 1e-6, true},
		{"apart in x", Point{10, 8}, Point{10.01, 8}, 1e-6, false},
		{"apart in y", Point{10, 8}, Point{10, 7.9}, 1e-6, false},
		{"wide tolerance", Point{10, 8}, Point{10.4, 7.7}, 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collocated(tt.p, tt.q, tt.tol))
		})
	}
}

func TestCollocationIndexGroupsAt(t *testing.T) {
	ci := NewCollocationIndex(0)
	assert.Equal(t, DefaultTolerance, ci.Tolerance())

	ci.Rebuild([]Qubit{
		{ID: 1, Position: Point{10, 8}},
		{ID: 2, Position: Point{2, 0}},
		{ID: 3, Position: Point{10.0000000001, 8}},
		{ID: 4, Position: Point{10.2, 8}},
	})

	assert.Equal(t, []int{1, 3}, ci.GroupsAt(Point{10, 8}, 1e-6))
	assert.Equal(t, []int{1, 3, 4}, ci.GroupsAt(Point{10, 8}, 0.25))
	assert.Equal(t, []int{1, 3}, ci.GroupsAt(Point{10, 8}, 0), "zero falls back to default")
	assert.Empty(t, ci.GroupsAt(Point{6, 4}, 1e-6))
}

func TestCollocationIndexGroups(t *testing.T) {
	ci := NewCollocationIndex(1e-6)
	ci.Rebuild([]Qubit{
		{ID: 1, Position: Point{2, 8}},
		{ID: 2, Position: Point{6, 8}},
		{ID: 3, Position: Point{2, 8}},
		{ID: 4, Position: Point{6, 8}},
		{ID: 5, Position: Point{14, 0}},
		{ID: 6, Position: Point{2, 8}},
	})

	assert.Equal(t, [][]int{{1, 3, 6}, {2, 4}}, ci.Groups())

	ci.Rebuild(nil)
	assert.Empty(t, ci.Groups())
}

func TestCombinedLabel(t *testing.T) {
	assert.Equal(t, "Qubit 1, Qubit 3", CombinedLabel([]int{1, 3}))
	assert.Equal(t, "Qubit 7", CombinedLabel([]int{7}))
	assert.Equal(t, "", CombinedLabel(nil))
}
