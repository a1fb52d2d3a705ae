package qubit

import "math"

// DefaultPlaybackDuration is the nominal playback length in time units.
const DefaultPlaybackDuration = 1000.0

// SampleAt returns the sample shown at progress t in [0, 1]. The path is
// split into equal slots; t outside [0, 1] is clamped. An empty path
// yields false.
func SampleAt(path []Point, t float64) (Point, bool) {
	if len(path) == 0 {
		return Point{}, false
	}
	t = math.Max(0, math.Min(1, t))
	i := int(math.Floor(t * float64(len(path))))
	if i > len(path)-1 {
		i = len(path) - 1
	}
	return path[i], true
}

// Playback maps elapsed time onto a path. It holds no clock; the driver
// feeds it elapsed time.
type Playback struct {
	Path     []Point
	Duration float64
}

// NewPlayback creates a playback over path. A non-positive duration
// selects DefaultPlaybackDuration.
func NewPlayback(path []Point, duration float64) Playback {
	if duration <= 0 {
		duration = DefaultPlaybackDuration
	}
	return Playback{Path: path, Duration: duration}
}

// Frame returns the sample at elapsed time units and whether playback has
// finished.
func (pb Playback) Frame(elapsed float64) (Point, bool) {
	p, ok := SampleAt(pb.Path, elapsed/pb.Duration)
	if !ok {
		return Point{}, true
	}
	return p, elapsed >= pb.Duration
}
