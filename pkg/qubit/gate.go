package qubit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGate is returned for a gate identifier outside the closed set.
var ErrUnknownGate = errors.New("unknown gate")

// Gate is one of the fixed gates a qubit can receive.
type Gate int

const (
	PauliX Gate = iota
	PauliY
	PauliZ
	SGate
	PGate
	TGate
	Hadamard
)

// Gates lists every gate in palette order.
var Gates = []Gate{PauliX, PauliY, PauliZ, SGate, PGate, TGate, Hadamard}

// Kind says which generator a gate drives.
type Kind int

const (
	KindRotation Kind = iota
	KindPhase
	KindComposite
)

var gateNames = [...]string{
	PauliX:   "Pauli X",
	PauliY:   "Pauli Y",
	PauliZ:   "Pauli Z",
	SGate:    "S Gate",
	PGate:    "P Gate",
	TGate:    "T Gate",
	Hadamard: "Hadamard",
}

var gateSymbols = [...]string{
	PauliX:   "X",
	PauliY:   "Y",
	PauliZ:   "Z",
	SGate:    "S",
	PGate:    "P",
	TGate:    "T",
	Hadamard: "H",
}

// Valid reports whether g is a member of the closed gate set.
func (g Gate) Valid() bool {
	return g >= PauliX && g <= Hadamard
}

// String returns the palette name of the gate.
func (g Gate) String() string {
	if !g.Valid() {
		return fmt.Sprintf("Gate(%d)", int(g))
	}
	return gateNames[g]
}

// Symbol returns the one-letter gate symbol.
func (g Gate) Symbol() string {
	if !g.Valid() {
		return "?"
	}
	return gateSymbols[g]
}

// Kind returns the generator the gate drives.
func (g Gate) Kind() Kind {
	switch g {
	case PauliX, PauliY:
		return KindRotation
	case Hadamard:
		return KindComposite
	}
	return KindPhase
}

// Angle returns the rotation or phase angle in degrees. Hadamard has no
// single angle and reports 0.
func (g Gate) Angle() float64 {
	switch g {
	case PauliX, PauliY, PauliZ:
		return 180
	case SGate:
		return 90
	case PGate:
		return 45
	case TGate:
		return 22.5
	}
	return 0
}

// Family returns the axis family of a rotation gate.
func (g Gate) Family() AxisFamily {
	if g == PauliY {
		return AxisY
	}
	return AxisX
}

// MarshalText encodes the gate by its palette name.
func (g Gate) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGate, int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText decodes any name accepted by ParseGate.
func (g *Gate) UnmarshalText(text []byte) error {
	parsed, err := ParseGate(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGate converts a user-supplied identifier to a Gate. It accepts the
// palette names ("Pauli X", "S Gate"), their compact forms ("PauliX",
// "SGate") and the gate symbols, ignoring case.
func ParseGate(name string) (Gate, error) {
	key := strings.ToLower(strings.Join(strings.Fields(name), ""))
	switch key {
	case "paulix", "x":
		return PauliX, nil
	case "pauliy", "y":
		return PauliY, nil
	case "pauliz", "z":
		return PauliZ, nil
	case "sgate", "s":
		return SGate, nil
	case "pgate", "p":
		return PGate, nil
	case "tgate", "t":
		return TGate, nil
	case "hadamard", "h":
		return Hadamard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGate, name)
}
