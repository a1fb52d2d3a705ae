package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/qubit-toolkit/pkg/qcfile"
	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

const replHelp = `Commands:
  add                  - Create a qubit at the start position
  apply <id> <gate>    - Apply a gate (x, y, z, s, p, t, h or full name)
  color <id> <#hex>    - Change a qubit's color
  status               - Show every qubit
  history <id>         - Show a qubit's gates and positions
  at <x> <y>           - Show which qubits sit at a position
  save <file>          - Save the session (.json or .qcs)
  quit                 - Exit`

// repl runs interactive commands against one registry.
type repl struct {
	reg  *qubit.Registry
	name string
	out  io.Writer
	err  io.Writer
}

func newREPL(reg *qubit.Registry, name string, out, errOut io.Writer) *repl {
	return &repl{reg: reg, name: name, out: out, err: errOut}
}

func (r *repl) run(in io.Reader) {
	fmt.Fprintf(r.out, "Session: %s (%d qubits)\n", r.name, r.reg.Len())
	fmt.Fprintln(r.out, "Commands: add, apply, color, status, history, at, save, help, quit")
	fmt.Fprintln(r.out)
	r.printStatus()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		if quit := r.exec(scanner.Text()); quit {
			return
		}
	}
}

// exec runs one command line and reports whether the session should end.
func (r *repl) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(r.out, replHelp)
	case "add":
		q := r.reg.Create()
		fmt.Fprintf(r.out, "Created qubit %d at (%g, %g)\n", q.ID, q.Position.X, q.Position.Y)
	case "status":
		r.printStatus()
	case "apply":
		if len(fields) < 3 {
			r.errorf("usage: apply <id> <gate>")
			return false
		}
		id, ok := r.parseID(fields[1])
		if !ok {
			return false
		}
		q, err := r.reg.ApplyGateNamed(id, strings.Join(fields[2:], " "))
		if err != nil {
			r.errorf("%v", err)
			return false
		}
		fmt.Fprintf(r.out, "Qubit %d: %s -> %s\n", q.ID, q.Gates[len(q.Gates)-1], formatPoint(q.Position))
		if ids := r.reg.GroupsAt(q.Position); len(ids) > 1 {
			fmt.Fprintf(r.out, "Collocated: %s\n", qubit.CombinedLabel(ids))
		}
	case "color":
		if len(fields) != 3 {
			r.errorf("usage: color <id> <#hex>")
			return false
		}
		id, ok := r.parseID(fields[1])
		if !ok {
			return false
		}
		c, err := colorful.Hex(fields[2])
		if err != nil {
			r.errorf("color must be #rrggbb: %s", fields[2])
			return false
		}
		if err := r.reg.SetColor(id, c.Hex()); err != nil {
			r.errorf("%v", err)
			return false
		}
		fmt.Fprintf(r.out, "Qubit %d color %s\n", id, c.Hex())
	case "history":
		if len(fields) != 2 {
			r.errorf("usage: history <id>")
			return false
		}
		id, ok := r.parseID(fields[1])
		if !ok {
			return false
		}
		r.printHistory(id)
	case "at":
		if len(fields) != 3 {
			r.errorf("usage: at <x> <y>")
			return false
		}
		x, errX := strconv.ParseFloat(fields[1], 64)
		y, errY := strconv.ParseFloat(fields[2], 64)
		if errX != nil || errY != nil {
			r.errorf("x and y must be numbers")
			return false
		}
		ids := r.reg.GroupsAt(qubit.Point{X: x, Y: y})
		if len(ids) == 0 {
			fmt.Fprintln(r.out, "No qubits there")
		} else {
			fmt.Fprintln(r.out, qubit.CombinedLabel(ids))
		}
	case "save":
		if len(fields) != 2 {
			r.errorf("usage: save <file>")
			return false
		}
		s := qcfile.NewSession(r.name, r.reg.Start(), r.reg.Snapshot())
		if err := qcfile.Save(fields[1], s); err != nil {
			r.errorf("%v", err)
			return false
		}
		fmt.Fprintf(r.out, "Written: %s\n", fields[1])
	default:
		r.errorf("unknown command %q (try help)", fields[0])
	}
	return false
}

func (r *repl) errorf(format string, a ...interface{}) {
	fmt.Fprintf(r.err, "Error: "+format+"\n", a...)
}

func (r *repl) parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil {
		r.errorf("qubit id must be an integer: %s", s)
		return 0, false
	}
	return id, true
}

func (r *repl) printStatus() {
	qubits := r.reg.Snapshot()
	if len(qubits) == 0 {
		fmt.Fprintln(r.out, "No qubits (use add)")
		return
	}
	for _, q := range qubits {
		symbols := make([]string, len(q.Gates))
		for i, g := range q.Gates {
			symbols[i] = g.Symbol()
		}
		fmt.Fprintf(r.out, "Qubit %d  %s  %s  [%s]\n", q.ID, formatPoint(q.Position), q.Color, strings.Join(symbols, " "))
	}
	for _, g := range r.reg.Groups() {
		fmt.Fprintf(r.out, "Collocated: %s\n", qubit.CombinedLabel(g))
	}
}

func (r *repl) printHistory(id int) {
	q, err := r.reg.Get(id)
	if err != nil {
		r.errorf("%v", err)
		return
	}
	if len(q.Gates) == 0 {
		fmt.Fprintln(r.out, "No history yet")
		return
	}

	fmt.Fprintln(r.out, "History:")
	p := r.reg.Start()
	for i, g := range q.Gates {
		from := p
		tr, err := qubit.Apply(p, g)
		if err != nil {
			r.errorf("%v", err)
			return
		}
		p = tr.Final
		fmt.Fprintf(r.out, "  %d: %s --%s--> %s\n", i+1, formatPoint(from), g, formatPoint(p))
	}
}

func formatPoint(p qubit.Point) string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}
