package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

func TestGenerateQASM(t *testing.T) {
	qubits := []qubit.Qubit{
		{ID: 1, Gates: []qubit.Gate{qubit.Hadamard, qubit.PGate}},
		{ID: 2, Gates: []qubit.Gate{}},
		{ID: 3, Gates: []qubit.Gate{qubit.PauliX, qubit.TGate, qubit.SGate}},
	}

	out, err := GenerateQASM(qubits, "bell-ish")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "// Code generated"))
	assert.Contains(t, out, "// Session: bell-ish\n")
	assert.Contains(t, out, "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n")
	assert.Contains(t, out, "qreg q[3];\n")
	assert.Contains(t, out, "h q[0];\np(pi/4) q[0];\n")
	assert.Contains(t, out, "x q[2];\nt q[2];\ns q[2];\n")
	assert.NotContains(t, out, "// Qubit 2\n")
}

func TestGenerateQASMEveryGate(t *testing.T) {
	for _, g := range qubit.Gates {
		_, ok := qasmOps[g]
		assert.True(t, ok, "no instruction for %s", g)
	}
}

func TestGenerateQASMEmpty(t *testing.T) {
	out, err := GenerateQASM(nil, "")
	require.NoError(t, err)
	assert.NotContains(t, out, "qreg")
	assert.NotContains(t, out, "Session")
}

func TestGenerateQASMUnknownGate(t *testing.T) {
	_, err := GenerateQASM([]qubit.Qubit{{ID: 1, Gates: []qubit.Gate{qubit.Gate(12)}}}, "")
	assert.ErrorIs(t, err, qubit.ErrUnknownGate)
}
