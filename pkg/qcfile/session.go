// Package qcfile reads, writes and renders qubit circuit sessions.
package qcfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// FormatVersion is written into every session file.
const FormatVersion = 1

// Session is a saved circuit: the registry content plus the start position
// new qubits were created at.
type Session struct {
	ID     uuid.UUID
	Name   string
	Start  qubit.Point
	Qubits []qubit.Qubit
}

// NewSession creates a session with a fresh id.
func NewSession(name string, start qubit.Point, qubits []qubit.Qubit) *Session {
	return &Session{
		ID:     uuid.New(),
		Name:   name,
		Start:  start,
		Qubits: qubits,
	}
}

// Registry restores the session into a new registry. The session's start
// always replaces opts.Start.
func (s *Session) Registry(opts qubit.RegistryOptions) (*qubit.Registry, error) {
	start := s.Start
	opts.Start = &start
	r := qubit.NewRegistry(opts)
	if err := r.Restore(s.Qubits); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}
	return r, nil
}

// sessionFile is the on-disk shape shared by the JSON and msgpack formats.
type sessionFile struct {
	Version int           `json:"version" msgpack:"version"`
	ID      string        `json:"id" msgpack:"id"`
	Name    string        `json:"name,omitempty" msgpack:"name,omitempty"`
	Start   qubit.Point   `json:"start" msgpack:"start"`
	Qubits  []qubit.Qubit `json:"qubits" msgpack:"qubits"`
}

func toFile(s *Session) sessionFile {
	qubits := s.Qubits
	if qubits == nil {
		qubits = []qubit.Qubit{}
	}
	return sessionFile{
		Version: FormatVersion,
		ID:      s.ID.String(),
		Name:    s.Name,
		Start:   s.Start,
		Qubits:  qubits,
	}
}

func fromFile(f sessionFile) (*Session, error) {
	if f.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported session version %d", f.Version)
	}
	id := uuid.Nil
	if f.ID != "" {
		var err error
		id, err = uuid.Parse(f.ID)
		if err != nil {
			return nil, fmt.Errorf("session id: %w", err)
		}
	}
	return &Session{
		ID:     id,
		Name:   f.Name,
		Start:  f.Start,
		Qubits: f.Qubits,
	}, nil
}

// Load reads a session, choosing the format by extension.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch ext := filepath.Ext(path); ext {
	case ".json":
		return ParseJSON(data)
	case ".qcs":
		return ParseMsgpack(data)
	default:
		return nil, fmt.Errorf("unknown session format: %s", ext)
	}
}

// Save writes a session, choosing the format by extension.
func Save(path string, s *Session) error {
	var data []byte
	var err error

	switch ext := filepath.Ext(path); ext {
	case ".json":
		data, err = ToJSON(s, true)
	case ".qcs":
		data, err = ToMsgpack(s)
	default:
		return fmt.Errorf("unknown session format: %s", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Mismatch reports a qubit whose stored position disagrees with a replay of
// its gate history from the session start.
type Mismatch struct {
	ID       int
	Stored   qubit.Point
	Replayed qubit.Point
}

// ValidateSession checks the session restores cleanly and that every gate
// history replays to the stored position within tol.
func ValidateSession(s *Session, tol float64) ([]Mismatch, error) {
	if _, err := s.Registry(qubit.RegistryOptions{}); err != nil {
		return nil, err
	}

	var out []Mismatch
	for _, q := range s.Qubits {
		got, err := qubit.Replay(s.Start, q.Gates)
		if err != nil {
			return nil, fmt.Errorf("qubit %d: %w", q.ID, err)
		}
		if !qubit.Collocated(got, q.Position, tol) {
			out = append(out, Mismatch{ID: q.ID, Stored: q.Position, Replayed: got})
		}
	}
	return out, nil
}
