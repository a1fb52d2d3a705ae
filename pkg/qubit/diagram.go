package qubit

// Segment is a straight diagram line.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Label is fixed text anchored at a diagram coordinate.
type Label struct {
	At   Point  `json:"at"`
	Text string `json:"text"`
	Size int    `json:"size"`
}

// Guide is a rotation guide segment drawn for an axis family.
type Guide struct {
	Segment
	Family AxisFamily `json:"family"`
	Pivot  Point      `json:"pivot"`
	Color  string     `json:"color"`
	ID     string     `json:"id"`
}

// Geometry is the fixed diagram a renderer draws under the qubit markers.
type Geometry struct {
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Verticals   []Segment `json:"verticals"`
	Horizontals []Segment `json:"horizontals"`
	PhaseLabels []Label   `json:"phase_labels"`
	AxisLabels  []Label   `json:"axis_labels"`
	Guides      []Guide   `json:"guides"`
}

// Diagram returns the diagram geometry. Every call returns fresh slices.
func Diagram() Geometry {
	g := Geometry{Width: Width, Height: Height}

	for _, x := range pivotXs {
		g.Verticals = append(g.Verticals, Segment{Point{x, 0}, Point{x, Height}})
	}
	for _, y := range RestYs {
		g.Horizontals = append(g.Horizontals, Segment{Point{0, y}, Point{Width, y}})
	}

	g.PhaseLabels = []Label{
		{Point{1.75, 4.25}, "+", 12},
		{Point{5.75, 4.25}, "+i", 10},
		{Point{9.75, 4.25}, "-", 12},
		{Point{13.75, 4.25}, "- i", 10},
	}
	g.AxisLabels = []Label{
		{Point{-0.25, 8}, "0", 12},
		{Point{-0.25, 4}, "1/2", 10},
		{Point{-0.25, 0}, "1", 12},
	}

	g.Guides = []Guide{
		{Segment{Point{2, 0}, Point{2, 8}}, AxisX, Point{2, 4}, "red", "pauli-x-1"},
		{Segment{Point{0, 4}, Point{6, 4}}, AxisX, Point{2, 4}, "red", "pauli-x-2"},
		{Segment{Point{6, 4}, Point{14, 4}}, AxisX, Point{10, 4}, "red", "pauli-x-3"},
		{Segment{Point{10, 0}, Point{10, 8}}, AxisX, Point{10, 4}, "red", "pauli-x-4"},
		{Segment{Point{6, 0}, Point{6, 8}}, AxisY, Point{6, 4}, "blue", "pauli-y-1"},
		{Segment{Point{2, 4}, Point{10, 4}}, AxisY, Point{6, 4}, "blue", "pauli-y-2"},
		{Segment{Point{10, 4}, Point{16, 4}}, AxisY, Point{14, 4}, "blue", "pauli-y-3"},
		{Segment{Point{14, 0}, Point{14, 8}}, AxisY, Point{14, 4}, "blue", "pauli-y-4"},
	}

	return g
}
