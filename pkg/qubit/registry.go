package qubit

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
)

// restSlack absorbs rounding in y after chains of rotations.
const restSlack = 1e-6

// ErrUnknownQubit is returned when an id is not in the registry.
var ErrUnknownQubit = errors.New("unknown qubit")

// Qubit is one marker on the diagram.
type Qubit struct {
	ID               int     `json:"id" msgpack:"id"`
	Position         Point   `json:"position" msgpack:"position"`
	PreviousPosition *Point  `json:"previous_position,omitempty" msgpack:"previous_position,omitempty"`
	Color            string  `json:"color" msgpack:"color"`
	Gates            []Gate  `json:"gates" msgpack:"gates"`
	AnimationPath    []Point `json:"animation_path,omitempty" msgpack:"animation_path,omitempty"`
}

func (q Qubit) clone() Qubit {
	out := q
	if q.PreviousPosition != nil {
		prev := *q.PreviousPosition
		out.PreviousPosition = &prev
	}
	out.Gates = append([]Gate{}, q.Gates...)
	out.AnimationPath = append([]Point(nil), q.AnimationPath...)
	return out
}

// RegistryOptions configures a Registry. Zero values select defaults.
type RegistryOptions struct {
	Start     *Point
	Tolerance float64
	Colors    func() string
	Log       *zerolog.Logger
}

// RandomColor returns a fresh display color as #rrggbb.
func RandomColor() string {
	return colorful.FastHappyColor().Hex()
}

// Registry owns every qubit record. It is not safe for concurrent use;
// callers serialize events.
type Registry struct {
	qubits []Qubit
	start  Point
	colors func() string
	index  *CollocationIndex
	log    zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts RegistryOptions) *Registry {
	r := &Registry{
		qubits: make([]Qubit, 0),
		start:  DefaultStart,
		colors: opts.Colors,
		index:  NewCollocationIndex(opts.Tolerance),
		log:    zerolog.Nop(),
	}
	if opts.Start != nil {
		r.start = opts.Start.Normalize()
	}
	if r.colors == nil {
		r.colors = RandomColor
	}
	if opts.Log != nil {
		r.log = opts.Log.With().Str("component", "registry").Logger()
	}
	return r
}

// Start returns the position new qubits are created at.
func (r *Registry) Start() Point {
	return r.start
}

// Len returns the number of qubits.
func (r *Registry) Len() int {
	return len(r.qubits)
}

// Create appends a new qubit at the start position and returns it.
func (r *Registry) Create() Qubit {
	q := Qubit{
		ID:       len(r.qubits) + 1,
		Position: r.start,
		Color:    r.colors(),
		Gates:    []Gate{},
	}
	r.qubits = append(r.qubits, q)
	r.index.Rebuild(r.qubits)

	r.log.Debug().Int("qubit", q.ID).Str("color", q.Color).Msg("qubit created")
	return q.clone()
}

func (r *Registry) find(id int) (int, error) {
	// ids are 1..n in insertion order
	if id < 1 || id > len(r.qubits) {
		return -1, fmt.Errorf("%w: %d", ErrUnknownQubit, id)
	}
	return id - 1, nil
}

// Get returns a copy of the qubit with the given id.
func (r *Registry) Get(id int) (Qubit, error) {
	i, err := r.find(id)
	if err != nil {
		return Qubit{}, err
	}
	return r.qubits[i].clone(), nil
}

// ApplyGate runs g on qubit id and commits the result. On failure nothing
// changes. The animation paths of the other qubits are cleared so a
// renderer never replays a stale path.
func (r *Registry) ApplyGate(id int, g Gate) (Qubit, error) {
	i, err := r.find(id)
	if err != nil {
		r.log.Warn().Int("qubit", id).Str("gate", g.String()).Err(err).Msg("gate rejected")
		return Qubit{}, err
	}

	tr, err := Apply(r.qubits[i].Position, g)
	if err != nil {
		r.log.Warn().Int("qubit", id).Err(err).Msg("gate rejected")
		return Qubit{}, err
	}

	for j := range r.qubits {
		r.qubits[j].AnimationPath = nil
	}

	q := &r.qubits[i]
	prev := q.Position
	q.PreviousPosition = &prev
	q.Position = tr.Final
	q.Gates = append(q.Gates, g)
	q.AnimationPath = tr.Steps
	r.index.Rebuild(r.qubits)

	r.log.Debug().
		Int("qubit", id).
		Str("gate", g.String()).
		Float64("x", q.Position.X).
		Float64("y", q.Position.Y).
		Int("steps", len(tr.Steps)).
		Msg("gate applied")
	return q.clone(), nil
}

// ApplyGateNamed parses a raw gate identifier and applies it.
func (r *Registry) ApplyGateNamed(id int, name string) (Qubit, error) {
	g, err := ParseGate(name)
	if err != nil {
		r.log.Warn().Int("qubit", id).Str("gate", name).Err(err).Msg("gate rejected")
		return Qubit{}, err
	}
	return r.ApplyGate(id, g)
}

// SetColor changes the display color of a qubit.
func (r *Registry) SetColor(id int, color string) error {
	i, err := r.find(id)
	if err != nil {
		return err
	}
	r.qubits[i].Color = color
	r.log.Debug().Int("qubit", id).Str("color", color).Msg("color set")
	return nil
}

// ClearAnimation drops the animation path of a qubit once playback has
// finished. The position is unchanged.
func (r *Registry) ClearAnimation(id int) error {
	i, err := r.find(id)
	if err != nil {
		return err
	}
	r.qubits[i].AnimationPath = nil
	return nil
}

// Snapshot returns copies of every qubit in insertion order.
func (r *Registry) Snapshot() []Qubit {
	out := make([]Qubit, len(r.qubits))
	for i, q := range r.qubits {
		out[i] = q.clone()
	}
	return out
}

// GroupsAt returns the ids collocated with p using the registry tolerance.
func (r *Registry) GroupsAt(p Point) []int {
	return r.index.GroupsAt(p, 0)
}

// Groups returns every collocated group of two or more qubits.
func (r *Registry) Groups() [][]int {
	return r.index.Groups()
}

// Index exposes the collocation index for lookups with a custom tolerance.
func (r *Registry) Index() *CollocationIndex {
	return r.index
}

// Restore replaces the registry content with previously saved qubits.
// Ids must run 1..n in order and every gate must be known.
func (r *Registry) Restore(qubits []Qubit) error {
	restored := make([]Qubit, len(qubits))
	for i, q := range qubits {
		if q.ID != i+1 {
			return fmt.Errorf("qubit %d: expected id %d", q.ID, i+1)
		}
		for j, g := range q.Gates {
			if !g.Valid() {
				return fmt.Errorf("qubit %d: gate %d: %w: %d", q.ID, j, ErrUnknownGate, int(g))
			}
		}
		if q.Position.Y < -restSlack || q.Position.Y > Height+restSlack {
			return fmt.Errorf("qubit %d: y %.3f outside [0, %g]", q.ID, q.Position.Y, Height)
		}
		c := q.clone()
		c.Position = c.Position.Normalize()
		restored[i] = c
	}

	r.qubits = restored
	r.index.Rebuild(r.qubits)
	r.log.Debug().Int("qubits", len(restored)).Msg("registry restored")
	return nil
}
