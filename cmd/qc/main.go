// Command qc is a CLI tool for working with qubit circuit sessions.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ha1tch/qubit-toolkit/pkg/codegen"
	"github.com/ha1tch/qubit-toolkit/pkg/config"
	"github.com/ha1tch/qubit-toolkit/pkg/logger"
	"github.com/ha1tch/qubit-toolkit/pkg/qcfile"
	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
	"github.com/ha1tch/qubit-toolkit/pkg/server"
)

const usage = `qc - single-qubit gate toolkit

Usage:
  qc <command> [options]

Commands:
  run        Apply gates interactively
  apply      Apply one gate to a qubit in a session file
  render     Render a session to SVG or PNG
  info       Show session information
  validate   Check a session replays to its stored positions
  export     Generate OpenQASM from a session
  convert    Convert between formats (json, qcs)
  serve      Serve a session over HTTP

Examples:
  qc run
  qc run demo.json
  qc apply demo.json 1 hadamard
  qc render demo.json -o demo.svg --paths
  qc export demo.qcs -o demo.qasm
  qc serve demo.json --save

Configuration is read from the environment and .env (QC_* variables).
`

var (
	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log = logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "run":
		cmdRun(args)
	case "apply":
		cmdApply(args)
	case "render":
		cmdRender(args)
	case "info":
		cmdInfo(args)
	case "validate":
		cmdValidate(args)
	case "export":
		cmdExport(args)
	case "convert":
		cmdConvert(args)
	case "serve":
		cmdServe(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func fatalf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

// flagValue returns the value following one of names, or "".
func flagValue(args []string, names ...string) string {
	for i := 0; i < len(args)-1; i++ {
		for _, n := range names {
			if args[i] == n {
				return args[i+1]
			}
		}
	}
	return ""
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}

func loadSession(path string) *qcfile.Session {
	s, err := qcfile.Load(path)
	if err != nil {
		fatalf("Error loading %s: %v", path, err)
	}
	return s
}

func registryOptions() qubit.RegistryOptions {
	opts := cfg.RegistryOptions()
	opts.Log = &log
	return opts
}

func sessionRegistry(path string, s *qcfile.Session) *qubit.Registry {
	reg, err := s.Registry(registryOptions())
	if err != nil {
		fatalf("Error loading %s: %v", path, err)
	}
	return reg
}

func sessionName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func cmdRun(args []string) {
	var reg *qubit.Registry
	name := "session"

	if len(args) > 0 {
		s := loadSession(args[0])
		reg = sessionRegistry(args[0], s)
		if s.Name != "" {
			name = s.Name
		}
	} else {
		reg = qubit.NewRegistry(registryOptions())
		for i := 0; i < cfg.SeedQubits; i++ {
			reg.Create()
		}
	}

	r := newREPL(reg, name, os.Stdout, os.Stderr)
	r.run(os.Stdin)
}

func cmdApply(args []string) {
	if len(args) < 3 {
		fatalf("Usage: qc apply <session> <id> <gate> [-o output]")
	}

	input := args[0]
	id, err := strconv.Atoi(args[1])
	if err != nil {
		fatalf("Error: qubit id must be an integer: %s", args[1])
	}
	output := flagValue(args, "-o", "--output")
	if output == "" {
		output = input
	}

	s := loadSession(input)
	reg := sessionRegistry(input, s)

	q, err := reg.ApplyGateNamed(id, args[2])
	if err != nil {
		fatalf("Error: %v", err)
	}

	s.Qubits = reg.Snapshot()
	if err := qcfile.Save(output, s); err != nil {
		fatalf("Error writing %s: %v", output, err)
	}
	fmt.Printf("Qubit %d: %s -> (%.3f, %.3f)\n", q.ID, q.Gates[len(q.Gates)-1], q.Position.X, q.Position.Y)
	fmt.Printf("Written: %s\n", output)
}

func cmdRender(args []string) {
	if len(args) < 1 {
		fatalf("Usage: qc render <session> -o output.svg|output.png [--paths] [-t title]")
	}

	input := args[0]
	output := flagValue(args, "-o", "--output")
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}

	s := loadSession(input)
	sessionRegistry(input, s)

	opts := qcfile.DefaultRenderOptions()
	opts.ShowPaths = hasFlag(args, "--paths")
	opts.Tolerance = cfg.Tolerance
	opts.Title = flagValue(args, "-t", "--title")
	if opts.Title == "" {
		opts.Title = s.Name
	}

	var err error
	switch ext := filepath.Ext(output); ext {
	case ".svg":
		err = os.WriteFile(output, []byte(qcfile.RenderSVG(s.Qubits, opts)), 0644)
	case ".png":
		var f *os.File
		f, err = os.Create(output)
		if err == nil {
			err = qcfile.RenderPNG(s.Qubits, f, opts)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
	default:
		fatalf("Unknown output format: %s", ext)
	}
	if err != nil {
		fatalf("Error writing %s: %v", output, err)
	}

	fmt.Printf("Written: %s\n", output)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fatalf("Usage: qc info <session>")
	}

	input := args[0]
	s := loadSession(input)
	reg := sessionRegistry(input, s)

	fmt.Printf("ID:      %s\n", s.ID)
	if s.Name != "" {
		fmt.Printf("Name:    %s\n", s.Name)
	}
	fmt.Printf("Start:   (%g, %g)\n", s.Start.X, s.Start.Y)
	fmt.Printf("Qubits:  %d\n", reg.Len())

	gates := 0
	for _, q := range s.Qubits {
		gates += len(q.Gates)
	}
	fmt.Printf("Gates:   %d\n", gates)

	if groups := reg.Groups(); len(groups) > 0 {
		fmt.Println()
		fmt.Println("Collocated:")
		for _, g := range groups {
			fmt.Printf("  %s\n", qubit.CombinedLabel(g))
		}
	}
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fatalf("Usage: qc validate <session>")
	}

	input := args[0]
	s := loadSession(input)

	mismatches, err := qcfile.ValidateSession(s, cfg.Tolerance)
	if err != nil {
		fatalf("Validation failed: %v", err)
	}
	if len(mismatches) > 0 {
		for _, m := range mismatches {
			fmt.Fprintf(os.Stderr, "Qubit %d: stored (%.3f, %.3f), history gives (%.3f, %.3f)\n",
				m.ID, m.Stored.X, m.Stored.Y, m.Replayed.X, m.Replayed.Y)
		}
		fatalf("Validation failed: %d qubit(s) disagree with their history", len(mismatches))
	}

	fmt.Printf("%s: valid session with %d qubits\n", input, len(s.Qubits))
}

func cmdExport(args []string) {
	if len(args) < 1 {
		fatalf("Usage: qc export <session> [-o output.qasm]")
	}

	input := args[0]
	s := loadSession(input)
	sessionRegistry(input, s)

	name := s.Name
	if name == "" {
		name = sessionName(input)
	}
	code, err := codegen.GenerateQASM(s.Qubits, name)
	if err != nil {
		fatalf("Error: %v", err)
	}

	if output := flagValue(args, "-o", "--output"); output != "" {
		if err := os.WriteFile(output, []byte(code), 0644); err != nil {
			fatalf("Error writing %s: %v", output, err)
		}
		fmt.Printf("Written: %s\n", output)
		return
	}
	fmt.Print(code)
}

func cmdConvert(args []string) {
	if len(args) < 1 {
		fatalf("Usage: qc convert <input> [-o output]")
	}

	input := args[0]
	output := flagValue(args, "-o", "--output")
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		switch filepath.Ext(input) {
		case ".json":
			output = base + ".qcs"
		default:
			output = base + ".json"
		}
	}

	s := loadSession(input)
	if err := qcfile.Save(output, s); err != nil {
		fatalf("Error writing %s: %v", output, err)
	}
	fmt.Printf("Written: %s\n", output)
}

func cmdServe(args []string) {
	var reg *qubit.Registry
	var s *qcfile.Session
	var input string

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		input = args[0]
		s = loadSession(input)
		reg = sessionRegistry(input, s)
	} else {
		reg = qubit.NewRegistry(registryOptions())
	}

	addr := flagValue(args, "--addr")
	if addr == "" {
		addr = cfg.Addr
	}

	opts := qcfile.DefaultRenderOptions()
	opts.Tolerance = cfg.Tolerance
	srv := server.New(server.Config{Addr: addr, Log: log, Registry: reg, Render: opts})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			fatalf("Error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}

	if hasFlag(args, "--save") && input != "" {
		s.Qubits = srv.Snapshot()
		if err := qcfile.Save(input, s); err != nil {
			fatalf("Error writing %s: %v", input, err)
		}
		fmt.Printf("Written: %s\n", input)
	}
}
