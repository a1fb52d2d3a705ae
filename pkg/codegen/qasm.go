// Package codegen generates circuit code from qubit gate histories.
package codegen

import (
	"fmt"
	"strings"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// qasmOps maps each gate to its OpenQASM instruction.
var qasmOps = map[qubit.Gate]string{
	qubit.PauliX:   "x",
	qubit.PauliY:   "y",
	qubit.PauliZ:   "z",
	qubit.SGate:    "s",
	qubit.PGate:    "p(pi/4)",
	qubit.TGate:    "t",
	qubit.Hadamard: "h",
}

// GenerateQASM writes an OpenQASM 2.0 program with one register holding
// every qubit, applying each qubit's gate history in order. Qubit n maps
// to q[n-1].
func GenerateQASM(qubits []qubit.Qubit, name string) (string, error) {
	var sb strings.Builder

	sb.WriteString("// Code generated from qubit session. DO NOT EDIT.\n")
	if name != "" {
		sb.WriteString(fmt.Sprintf("// Session: %s\n", name))
	}
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")

	if len(qubits) == 0 {
		return sb.String(), nil
	}
	sb.WriteString(fmt.Sprintf("qreg q[%d];\n", len(qubits)))

	for i, q := range qubits {
		if len(q.Gates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n// Qubit %d\n", q.ID))
		for _, g := range q.Gates {
			op, ok := qasmOps[g]
			if !ok {
				return "", fmt.Errorf("qubit %d: %w: %d", q.ID, qubit.ErrUnknownGate, int(g))
			}
			sb.WriteString(fmt.Sprintf("%s q[%d];\n", op, i))
		}
	}

	return sb.String(), nil
}
