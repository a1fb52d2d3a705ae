package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/qubit-toolkit/pkg/config"
	"github.com/ha1tch/qubit-toolkit/pkg/qcfile"
	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

func newTestREPL(n int) (*repl, *bytes.Buffer, *bytes.Buffer) {
	i := 0
	reg := qubit.NewRegistry(qubit.RegistryOptions{Colors: func() string {
		i++
		return fmt.Sprintf("#00000%d", i)
	}})
	for j := 0; j < n; j++ {
		reg.Create()
	}
	var out, errOut bytes.Buffer
	return newREPL(reg, "test", &out, &errOut), &out, &errOut
}

func TestREPLApply(t *testing.T) {
	r, out, errOut := newTestREPL(3)

	assert.False(t, r.exec("apply 1 z"))
	assert.False(t, r.exec("apply 2 S Gate"))
	assert.False(t, r.exec("apply 2 s"))

	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "Qubit 1: Pauli Z -> (10.000, 8.000)")
	assert.Contains(t, out.String(), "Collocated: Qubit 1, Qubit 2")

	out.Reset()
	r.exec("status")
	assert.Contains(t, out.String(), "Qubit 2  (10.000, 8.000)  #000002  [S S]")
	assert.Contains(t, out.String(), "Qubit 3  (2.000, 8.000)  #000003  []")

	out.Reset()
	r.exec("at 10 8")
	assert.Equal(t, "Qubit 1, Qubit 2\n", out.String())
}

func TestREPLErrors(t *testing.T) {
	r, _, errOut := newTestREPL(1)

	tests := []struct {
		line string
		want string
	}{
		{"apply 4 x", "unknown qubit"},
		{"apply 1 cnot", "unknown gate"},
		{"apply one x", "must be an integer"},
		{"apply 1", "usage: apply"},
		{"color 1 purple", "#rrggbb"},
		{"color 2 #ffffff", "unknown qubit"},
		{"at 1", "usage: at"},
		{"history x", "must be an integer"},
		{"teleport", "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			errOut.Reset()
			assert.False(t, r.exec(tt.line))
			assert.Contains(t, errOut.String(), tt.want)
		})
	}

	q, err := r.reg.Get(1)
	require.NoError(t, err)
	assert.Equal(t, qubit.DefaultStart, q.Position)
}

func TestREPLHistory(t *testing.T) {
	r, out, _ := newTestREPL(1)

	r.exec("history 1")
	assert.Contains(t, out.String(), "No history yet")

	r.exec("apply 1 x")
	r.exec("apply 1 t")
	out.Reset()
	r.exec("history 1")
	assert.Contains(t, out.String(), "1: (2.000, 8.000) --Pauli X--> (2.000, 0.000)")
	assert.Contains(t, out.String(), "2: (2.000, 0.000) --T Gate--> (3.000, 0.000)")
}

func TestREPLColorAndAdd(t *testing.T) {
	r, out, _ := newTestREPL(0)

	r.exec("add")
	assert.Contains(t, out.String(), "Created qubit 1 at (2, 8)")

	r.exec("color 1 #FF00AA")
	q, err := r.reg.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "#ff00aa", q.Color)
}

func TestREPLSave(t *testing.T) {
	r, _, errOut := newTestREPL(2)
	r.exec("apply 1 h")

	path := filepath.Join(t.TempDir(), "out.qcs")
	r.exec("save " + path)
	require.Empty(t, errOut.String())

	s, err := qcfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", s.Name)
	assert.Len(t, s.Qubits, 2)
	assert.Equal(t, []qubit.Gate{qubit.Hadamard}, s.Qubits[0].Gates)
}

func TestREPLKeepsSessionStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offset.json")
	require.NoError(t, qcfile.Save(path, qcfile.NewSession("offset", qubit.Point{X: 10, Y: 8}, nil)))
	s, err := qcfile.Load(path)
	require.NoError(t, err)

	c := &config.Config{Start: qubit.DefaultStart, Tolerance: qubit.DefaultTolerance}
	reg, err := s.Registry(c.RegistryOptions())
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	r := newREPL(reg, s.Name, &out, &errOut)
	r.exec("add")
	r.exec("apply 1 x")
	r.exec("history 1")
	r.exec("save " + path)
	require.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "(10.000, 8.000) --Pauli X--> (10.000, 0.000)")

	s, err = qcfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, qubit.Point{X: 10, Y: 8}, s.Start)
	mismatches, err := qcfile.ValidateSession(s, 1e-6)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestREPLRun(t *testing.T) {
	r, out, _ := newTestREPL(1)
	r.run(strings.NewReader("apply 1 p\nquit\napply 1 p\n"))

	q, err := r.reg.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []qubit.Gate{qubit.PGate}, q.Gates, "input after quit is ignored")
	assert.Contains(t, out.String(), "Session: test (1 qubits)")
}
