package qcfile

import (
	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// RenderOptions controls SVG and PNG output.
type RenderOptions struct {
	Width        int     // canvas width in pixels
	Height       int     // canvas height in pixels
	Padding      int     // margin around the plot
	FontSize     int     // label font size
	MarkerRadius float64 // qubit marker radius
	Title        string
	ShowPaths    bool    // draw the smoothed animation path of each qubit
	Tolerance    float64 // collocation tolerance for combined labels
}

// DefaultRenderOptions returns the standard diagram layout: a
// 600x300 plot inside a 50px margin.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:        700,
		Height:       400,
		Padding:      50,
		FontSize:     12,
		MarkerRadius: 5,
		Tolerance:    qubit.DefaultTolerance,
	}
}

func (o RenderOptions) withDefaults() RenderOptions {
	d := DefaultRenderOptions()
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.Padding == 0 {
		o.Padding = d.Padding
	}
	if o.FontSize == 0 {
		o.FontSize = d.FontSize
	}
	if o.MarkerRadius == 0 {
		o.MarkerRadius = d.MarkerRadius
	}
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	return o
}

// projection maps diagram coordinates to pixels. Diagram y grows upward.
type projection struct {
	ox, oy float64
	sx, sy float64
}

func newProjection(o RenderOptions) projection {
	pad := float64(o.Padding)
	return projection{
		ox: pad,
		oy: pad,
		sx: (float64(o.Width) - 2*pad) / qubit.Width,
		sy: (float64(o.Height) - 2*pad) / qubit.Height,
	}
}

func (p projection) apply(q qubit.Point) (float64, float64) {
	return p.ox + q.X*p.sx, p.oy + (qubit.Height-q.Y)*p.sy
}

func (p projection) point(q qubit.Point) qubit.Point {
	x, y := p.apply(q)
	return qubit.Point{X: x, Y: y}
}

// placedLabel is a marker label positioned in pixel space.
type placedLabel struct {
	At   qubit.Point
	Text string
}

// scene is everything both renderers draw, already projected.
type scene struct {
	opts   RenderOptions
	proj   projection
	geom   qubit.Geometry
	qubits []qubit.Qubit
	labels []placedLabel
}

func textWidth(text string, size int) float64 {
	return float64(len(text)*size) * 0.6
}

func newScene(qubits []qubit.Qubit, opts RenderOptions) *scene {
	opts = opts.withDefaults()
	s := &scene{
		opts:   opts,
		proj:   newProjection(opts),
		geom:   qubit.Diagram(),
		qubits: qubits,
	}
	s.labels = s.placeLabels()
	return s
}

// placeLabels gives every distinct marker position one label naming all
// qubits sitting there.
func (s *scene) placeLabels() []placedLabel {
	var obstacles []Rect
	size := float64(s.opts.FontSize)
	for _, l := range append(s.geom.PhaseLabels, s.geom.AxisLabels...) {
		p := s.proj.point(l.At)
		obstacles = append(obstacles, Rect{p.X, p.Y, textWidth(l.Text, l.Size), float64(l.Size)})
	}
	r := 2 * s.opts.MarkerRadius
	for _, q := range s.qubits {
		p := s.proj.point(q.Position)
		obstacles = append(obstacles, Rect{p.X, p.Y, r, r})
	}
	placer := NewLabelPlacer(obstacles)

	index := qubit.NewCollocationIndex(s.opts.Tolerance)
	index.Rebuild(s.qubits)

	labeled := make(map[int]bool)
	var out []placedLabel
	for _, q := range s.qubits {
		if labeled[q.ID] {
			continue
		}
		ids := index.GroupsAt(q.Position, 0)
		for _, id := range ids {
			labeled[id] = true
		}
		text := qubit.CombinedLabel(ids)
		anchor := s.proj.point(q.Position)
		at := placer.PlaceLabel(anchor, textWidth(text, s.opts.FontSize), size, s.opts.MarkerRadius)
		out = append(out, placedLabel{At: at, Text: text})
	}
	return out
}

// trail returns the segment from the previous to the current position, or
// nil when there is none or it crosses the wraparound.
func trail(q qubit.Qubit) []qubit.Point {
	if q.PreviousPosition == nil {
		return nil
	}
	runs := SplitAtWrap([]qubit.Point{*q.PreviousPosition, q.Position})
	if len(runs) != 1 {
		return nil
	}
	return runs[0]
}
