package qubit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleAt(t *testing.T) {
	path := PhaseSteps(Point{2, 8}, 90)

	tests := []struct {
		t     float64
		index int
	}{
		{-0.5, 0},
		{0, 0},
		{0.04, 0},
		{0.05, 1},
		{0.5, 10},
		{0.99, 20},
		{1, 20},
		{3, 20},
	}
	for _, tt := range tests {
		got, ok := SampleAt(path, tt.t)
		assert.True(t, ok)
		assert.Equal(t, path[tt.index], got, "t=%v", tt.t)
	}

	_, ok := SampleAt(nil, 0.5)
	assert.False(t, ok)
}

func TestPlaybackFrame(t *testing.T) {
	tr, err := Apply(Point{2, 8}, Hadamard)
	assert.NoError(t, err)

	pb := NewPlayback(tr.Steps, 0)
	assert.Equal(t, DefaultPlaybackDuration, pb.Duration)

	p, done := pb.Frame(0)
	assert.Equal(t, tr.Steps[0], p)
	assert.False(t, done)

	p, done = pb.Frame(500)
	assert.Equal(t, tr.Steps[21], p)
	assert.False(t, done)

	p, done = pb.Frame(1000)
	assert.Equal(t, tr.Final, p)
	assert.True(t, done)

	_, done = NewPlayback(nil, 250).Frame(0)
	assert.True(t, done, "empty path has nothing to play")
}
