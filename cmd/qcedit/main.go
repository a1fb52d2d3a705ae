// Command qcedit is a TUI editor for single-qubit gate sessions.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"

	"github.com/ha1tch/qubit-toolkit/pkg/config"
	"github.com/ha1tch/qubit-toolkit/pkg/logger"
	"github.com/ha1tch/qubit-toolkit/pkg/qcfile"
	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// Mode represents editor mode
type Mode int

const (
	ModeCanvas Mode = iota
	ModeDrag        // a gate is being dragged from the palette
	ModeInput       // text prompt at the bottom
	ModeHelp        // help overlay
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo    MessageType = iota // Informative, no flash
	MsgError                      // Errors, flash
	MsgSuccess                    // State changes, flash
)

// inputPurpose says what a committed prompt does.
type inputPurpose int

const (
	inputSave inputPurpose = iota
	inputRender
	inputColor
)

// animation plays one qubit's path on the canvas.
type animation struct {
	id    int
	pb    qubit.Playback
	start time.Time
	// clear is set when the path belongs to the registry and must be
	// cleared once played.
	clear bool
}

// Editor holds all editor state
type Editor struct {
	screen   tcell.Screen
	reg      *qubit.Registry
	session  *qcfile.Session
	filename string
	modified bool
	mode     Mode
	cfg      *config.Config
	log      zerolog.Logger
	now      func() time.Time

	message           string
	messageType       MessageType
	messageFlashStart atomic.Int64 // Unix milliseconds

	selected   int // lane index of the selected qubit
	laneScroll int

	// Palette drag
	dragGate qubit.Gate
	dragX    int
	dragY    int

	// Last mouse position, for hover labels
	hoverX int
	hoverY int

	// Prompt
	input        string
	inputPurpose inputPurpose

	anim      *animation
	animPos   qubit.Point
	animating atomic.Bool

	done chan struct{}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The screen owns stdout, so logs go to a file.
	logPath := filepath.Join(os.TempDir(), "qcedit.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log %s: %v\n", logPath, err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Out: logFile})
	logger.SetGlobalLogger(log)

	opts := cfg.RegistryOptions()
	opts.Log = &log

	var filename string
	var session *qcfile.Session
	var reg *qubit.Registry

	if len(os.Args) > 1 {
		filename = os.Args[1]
		session, err = qcfile.Load(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			session = nil
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", filename, err)
			os.Exit(1)
		}
	}
	if session != nil {
		reg, err = session.Registry(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", filename, err)
			os.Exit(1)
		}
	} else {
		reg = qubit.NewRegistry(opts)
		for i := 0; i < cfg.SeedQubits; i++ {
			reg.Create()
		}
		name := "untitled"
		if filename != "" {
			name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		}
		session = qcfile.NewSession(name, reg.Start(), nil)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	ed := newEditor(screen, reg, session, filename, cfg, log)
	ed.run()

	screen.Fini()
}

func newEditor(screen tcell.Screen, reg *qubit.Registry, session *qcfile.Session, filename string, cfg *config.Config, log zerolog.Logger) *Editor {
	return &Editor{
		screen:   screen,
		reg:      reg,
		session:  session,
		filename: filename,
		cfg:      cfg,
		log:      log.With().Str("component", "editor").Logger(),
		now:      time.Now,
		hoverX:   -1,
		hoverY:   -1,
		done:     make(chan struct{}),
	}
}

func (ed *Editor) run() {
	// Post refresh events while something animates.
	go func() {
		ticker := time.NewTicker(ed.cfg.FrameTick)
		defer ticker.Stop()
		for {
			select {
			case <-ed.done:
				return
			case <-ticker.C:
				if ed.animating.Load() || ed.flashing() {
					ed.screen.PostEvent(tcell.NewEventInterrupt(nil))
				}
			}
		}
	}()
	defer close(ed.done)

	for {
		ed.advance()
		ed.draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			ed.screen.Sync()
		case *tcell.EventKey:
			if ed.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			ed.handleMouse(ev)
		case *tcell.EventInterrupt:
			// Refresh only
		}
	}
}

func (ed *Editor) flashing() bool {
	start := ed.messageFlashStart.Load()
	if start == 0 {
		return false
	}
	elapsed := time.Now().UnixMilli() - start
	return elapsed >= 0 && elapsed < 700
}

func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlQ {
		return true
	}
	if ev.Key() == tcell.KeyCtrlS {
		ed.save()
		return false
	}
	if ev.Key() == tcell.KeyCtrlR {
		ed.startInput(inputRender, ed.defaultRenderPath())
		return false
	}

	switch ed.mode {
	case ModeCanvas:
		return ed.handleCanvasKey(ev)
	case ModeDrag:
		if ev.Key() == tcell.KeyEscape {
			ed.mode = ModeCanvas
		}
	case ModeInput:
		ed.handleInputKey(ev)
	case ModeHelp:
		ed.mode = ModeCanvas
	}
	return false
}

func (ed *Editor) handleCanvasKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyUp:
		ed.selectLane(ed.selected - 1)
		return false
	case tcell.KeyDown:
		ed.selectLane(ed.selected + 1)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	r := ev.Rune()
	switch r {
	case 'q':
		return true
	case '?':
		ed.mode = ModeHelp
	case 'a':
		ed.addQubit()
	case 'c':
		if q, err := ed.reg.Get(ed.selected + 1); err == nil {
			ed.startInput(inputColor, q.Color)
		}
	case ' ':
		ed.replay()
	case 'k':
		ed.selectLane(ed.selected - 1)
	case 'j':
		ed.selectLane(ed.selected + 1)
	default:
		if g, err := qubit.ParseGate(string(r)); err == nil {
			ed.applyGate(ed.selected+1, g)
		}
	}
	return false
}

func (ed *Editor) handleInputKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ed.mode = ModeCanvas
	case tcell.KeyEnter:
		ed.mode = ModeCanvas
		ed.commitInput(strings.TrimSpace(ed.input))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(ed.input) > 0 {
			ed.input = ed.input[:len(ed.input)-1]
		}
	case tcell.KeyRune:
		ed.input += string(ev.Rune())
	}
}

func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()
	ed.hoverX, ed.hoverY = x, y

	switch {
	case btn&tcell.WheelUp != 0:
		ed.scrollLanes(-1)
	case btn&tcell.WheelDown != 0:
		ed.scrollLanes(1)
	case btn&tcell.Button1 != 0:
		if ed.mode == ModeDrag {
			ed.dragX, ed.dragY = x, y
			return
		}
		if ed.mode != ModeCanvas {
			return
		}
		if g, ok := ed.gateAt(x, y); ok {
			ed.mode = ModeDrag
			ed.dragGate = g
			ed.dragX, ed.dragY = x, y
			return
		}
		if i, ok := ed.laneAt(y); ok {
			ed.selected = i
		}
	case btn == tcell.ButtonNone:
		if ed.mode != ModeDrag {
			return
		}
		ed.mode = ModeCanvas
		if i, ok := ed.laneAt(y); ok {
			ed.selected = i
			ed.applyGate(i+1, ed.dragGate)
		} else {
			ed.showMessage("Drop gates on a qubit lane", MsgInfo)
		}
	}
}

func (ed *Editor) selectLane(i int) {
	if n := ed.reg.Len(); i >= 0 && i < n {
		ed.selected = i
	}
	l := ed.layout()
	if ed.selected < ed.laneScroll {
		ed.laneScroll = ed.selected
	}
	if ed.selected >= ed.laneScroll+l.lanes {
		ed.laneScroll = ed.selected - l.lanes + 1
	}
}

func (ed *Editor) scrollLanes(d int) {
	l := ed.layout()
	maxScroll := ed.reg.Len() - l.lanes
	ed.laneScroll += d
	if ed.laneScroll > maxScroll {
		ed.laneScroll = maxScroll
	}
	if ed.laneScroll < 0 {
		ed.laneScroll = 0
	}
}

func (ed *Editor) addQubit() {
	q := ed.reg.Create()
	ed.modified = true
	ed.selectLane(q.ID - 1)
	ed.showMessage(fmt.Sprintf("Added Qubit %d", q.ID), MsgSuccess)
}

func (ed *Editor) applyGate(id int, g qubit.Gate) {
	q, err := ed.reg.ApplyGate(id, g)
	if err != nil {
		ed.showMessage(err.Error(), MsgError)
		return
	}
	ed.modified = true
	ed.startPlayback(q.ID, q.AnimationPath, true)
	ed.showMessage(fmt.Sprintf("Qubit %d: %s", q.ID, g), MsgSuccess)
}

// replay animates the selected qubit's last gate again without touching
// the registry.
func (ed *Editor) replay() {
	q, err := ed.reg.Get(ed.selected + 1)
	if err != nil || q.PreviousPosition == nil || len(q.Gates) == 0 {
		ed.showMessage("Nothing to replay", MsgInfo)
		return
	}
	tr, err := qubit.Apply(*q.PreviousPosition, q.Gates[len(q.Gates)-1])
	if err != nil {
		ed.showMessage(err.Error(), MsgError)
		return
	}
	ed.startPlayback(q.ID, tr.Steps, false)
}

func (ed *Editor) startPlayback(id int, path []qubit.Point, clear bool) {
	if len(path) == 0 {
		return
	}
	// A new gate replaces any animation in flight; the registry has
	// already dropped the older path.
	duration := float64(ed.cfg.Playback.Milliseconds())
	ed.anim = &animation{id: id, pb: qubit.NewPlayback(path, duration), start: ed.now(), clear: clear}
	ed.animPos = path[0]
	ed.animating.Store(true)
}

// advance moves the running animation to the current time and finishes it
// when the path has played out.
func (ed *Editor) advance() {
	if ed.anim == nil {
		return
	}
	elapsed := float64(ed.now().Sub(ed.anim.start).Milliseconds())
	p, done := ed.anim.pb.Frame(elapsed)
	ed.animPos = p
	if !done {
		return
	}

	if ed.anim.clear {
		if err := ed.reg.ClearAnimation(ed.anim.id); err != nil {
			ed.log.Warn().Err(err).Int("qubit", ed.anim.id).Msg("clear animation failed")
		}
	}
	ed.anim = nil
	ed.animating.Store(false)
}

func (ed *Editor) startInput(purpose inputPurpose, initial string) {
	ed.mode = ModeInput
	ed.inputPurpose = purpose
	ed.input = initial
}

func (ed *Editor) commitInput(value string) {
	if value == "" {
		return
	}
	switch ed.inputPurpose {
	case inputSave:
		ed.saveFile(value)
	case inputRender:
		ed.renderFile(value)
	case inputColor:
		c, err := colorful.Hex(value)
		if err != nil {
			ed.showMessage("Color must be #rrggbb", MsgError)
			return
		}
		if err := ed.reg.SetColor(ed.selected+1, c.Hex()); err != nil {
			ed.showMessage(err.Error(), MsgError)
			return
		}
		ed.modified = true
		ed.showMessage(fmt.Sprintf("Qubit %d color %s", ed.selected+1, c.Hex()), MsgSuccess)
	}
}

func (ed *Editor) save() {
	if ed.filename == "" {
		ed.startInput(inputSave, ed.session.Name+".json")
		return
	}
	ed.saveFile(ed.filename)
}

func (ed *Editor) saveFile(path string) {
	ed.session.Qubits = ed.reg.Snapshot()
	if err := qcfile.Save(path, ed.session); err != nil {
		ed.showMessage("Save failed: "+err.Error(), MsgError)
		ed.log.Error().Err(err).Str("path", path).Msg("save failed")
		return
	}
	ed.filename = path
	ed.modified = false
	ed.showMessage("Saved "+filepath.Base(path), MsgSuccess)
	ed.log.Info().Str("path", path).Int("qubits", len(ed.session.Qubits)).Msg("session saved")
}

func (ed *Editor) defaultRenderPath() string {
	base := ed.session.Name
	if ed.filename != "" {
		base = strings.TrimSuffix(ed.filename, filepath.Ext(ed.filename))
	}
	return base + ".svg"
}

func (ed *Editor) renderFile(path string) {
	opts := qcfile.DefaultRenderOptions()
	opts.Title = ed.session.Name
	opts.Tolerance = ed.cfg.Tolerance
	qubits := ed.reg.Snapshot()

	var err error
	switch ext := filepath.Ext(path); ext {
	case ".svg":
		err = os.WriteFile(path, []byte(qcfile.RenderSVG(qubits, opts)), 0644)
	case ".png":
		var f *os.File
		f, err = os.Create(path)
		if err == nil {
			err = qcfile.RenderPNG(qubits, f, opts)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
	default:
		err = fmt.Errorf("unknown output format: %s", ext)
	}
	if err != nil {
		ed.showMessage("Render failed: "+err.Error(), MsgError)
		return
	}
	ed.showMessage("Rendered "+filepath.Base(path), MsgSuccess)
}

func (ed *Editor) showMessage(msg string, msgType MessageType) {
	ed.message = msg
	ed.messageType = msgType
	ed.messageFlashStart.Store(time.Now().UnixMilli())
}
