package main

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleTitle      = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorWhite)
	styleLane       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLaneSel    = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleWire       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleRotation   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePhase      = tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true)
	styleComposite  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleGrid       = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleLabel      = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHover      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDragging   = tcell.StyleDefault.Background(tcell.ColorPurple).Foreground(tcell.ColorWhite)
)

// Screen geometry.
const (
	paletteX   = 9 // first palette chip column
	chipWidth  = 3
	chipStride = 5
	laneGateX  = 9 // first gate chip column in a lane
	maxLanes   = 8
	axisMargin = 5
)

// layout is where each region sits for the current screen size.
type layout struct {
	w, h       int
	paletteY   int
	laneTop    int
	lanes      int // visible lanes
	canvasTop  int
	canvasLeft int
	sx, sy     int // cells per diagram unit
}

func (ed *Editor) layout() layout {
	w, h := ed.screen.Size()
	l := layout{w: w, h: h, paletteY: 1, laneTop: 3, canvasLeft: axisMargin}
	l.lanes = min(ed.reg.Len(), maxLanes)
	l.canvasTop = l.laneTop + l.lanes + 1

	// The help and status bars take the last two rows.
	avail := h - 3 - l.canvasTop
	l.sy = max(1, min(2, avail/qubit.Height))
	l.sx = max(1, min(4, (w-l.canvasLeft-2)/qubit.Width))
	return l
}

// cell maps a diagram point to a screen cell.
func (l layout) cell(p qubit.Point) (int, int) {
	x := l.canvasLeft + int(math.Round(p.X*float64(l.sx)))
	y := l.canvasTop + int(math.Round((qubit.Height-p.Y)*float64(l.sy)))
	return x, y
}

// gateAt returns the palette gate under a screen cell.
func (ed *Editor) gateAt(x, y int) (qubit.Gate, bool) {
	l := ed.layout()
	if y != l.paletteY || x < paletteX {
		return 0, false
	}
	i := (x - paletteX) / chipStride
	if (x-paletteX)%chipStride >= chipWidth || i >= len(qubit.Gates) {
		return 0, false
	}
	return qubit.Gates[i], true
}

// laneAt returns the lane index shown on screen row y.
func (ed *Editor) laneAt(y int) (int, bool) {
	l := ed.layout()
	if y < l.laneTop || y >= l.laneTop+l.lanes {
		return 0, false
	}
	i := ed.laneScroll + y - l.laneTop
	if i >= ed.reg.Len() {
		return 0, false
	}
	return i, true
}

func gateStyle(g qubit.Gate) tcell.Style {
	switch g.Kind() {
	case qubit.KindRotation:
		return styleRotation
	case qubit.KindPhase:
		return stylePhase
	default:
		return styleComposite
	}
}

func qubitStyle(q qubit.Qubit) tcell.Style {
	return styleDefault.Foreground(tcell.GetColor(q.Color))
}

func (ed *Editor) draw() {
	ed.screen.Clear()
	l := ed.layout()
	qubits := ed.reg.Snapshot()

	ed.drawTitle(l)
	ed.drawPalette(l)
	ed.drawLanes(l, qubits)
	ed.drawCanvas(l, qubits)
	ed.drawHover(l)

	switch ed.mode {
	case ModeDrag:
		ed.drawString(ed.dragX-1, ed.dragY, "["+ed.dragGate.Symbol()+"]", styleDragging)
	case ModeInput:
		ed.drawInputBox(l)
	case ModeHelp:
		ed.drawHelp(l)
	}

	ed.drawStatusBar(l)
}

func (ed *Editor) drawTitle(l layout) {
	for x := 0; x < l.w; x++ {
		ed.screen.SetContent(x, 0, ' ', nil, styleStatus)
	}
	title := " qcedit  " + ed.session.Name
	ed.drawString(0, 0, truncate(title, l.w), styleStatus.Bold(true))
}

func (ed *Editor) drawPalette(l layout) {
	ed.drawString(1, l.paletteY, "Gates", styleTitle)
	for i, g := range qubit.Gates {
		x := paletteX + i*chipStride
		ed.drawString(x, l.paletteY, "["+g.Symbol()+"]", gateStyle(g))
	}
}

func (ed *Editor) drawLanes(l layout, qubits []qubit.Qubit) {
	for r := 0; r < l.lanes; r++ {
		i := ed.laneScroll + r
		if i >= len(qubits) {
			break
		}
		q := qubits[i]
		y := l.laneTop + r

		style := styleLane
		if i == ed.selected {
			style = styleLaneSel
		}
		ed.drawString(0, y, fmt.Sprintf(" Q%-3d", q.ID), style)
		ed.screen.SetContent(6, y, '●', nil, qubitStyle(q))

		pos := fmt.Sprintf("(%5.2f, %4.2f)", q.Position.X, q.Position.Y)
		posX := l.w - len(pos) - 2
		for x := 8; x < posX-1; x++ {
			ed.screen.SetContent(x, y, '─', nil, styleWire)
		}
		ed.drawString(posX, y, pos, styleLabel)

		// Show the most recent gates that fit.
		fit := (posX - 1 - laneGateX) / 4
		gates := q.Gates
		if fit > 0 && len(gates) > fit {
			gates = gates[len(gates)-fit:]
			ed.screen.SetContent(8, y, '…', nil, styleLabel)
		}
		for j, g := range gates {
			if j >= fit {
				break
			}
			ed.drawString(laneGateX+j*4, y, "["+g.Symbol()+"]", gateStyle(g))
		}
	}

	if ed.laneScroll > 0 {
		ed.screen.SetContent(l.w-1, l.laneTop, '▲', nil, styleBorder)
	}
	if ed.laneScroll+l.lanes < len(qubits) {
		ed.screen.SetContent(l.w-1, l.laneTop+l.lanes-1, '▼', nil, styleBorder)
	}
}

func (ed *Editor) drawCanvas(l layout, qubits []qubit.Qubit) {
	g := qubit.Diagram()

	for _, seg := range g.Horizontals {
		x1, y := l.cell(seg.From)
		x2, _ := l.cell(seg.To)
		for x := x1; x <= x2; x++ {
			ed.screen.SetContent(x, y, '─', nil, styleGrid)
		}
	}
	for _, seg := range g.Verticals {
		x, y1 := l.cell(seg.To)
		_, y2 := l.cell(seg.From)
		for y := y1; y <= y2; y++ {
			r := '│'
			if c, _, _, _ := ed.screen.GetContent(x, y); c == '─' || c == '┼' {
				r = '┼'
			}
			ed.screen.SetContent(x, y, r, nil, styleGrid)
		}
	}

	// Guides recolor the grid cells they cover.
	for _, gd := range g.Guides {
		style := styleDefault.Foreground(tcell.GetColor(gd.Color)).Dim(true)
		x1, y1 := l.cell(gd.From)
		x2, y2 := l.cell(gd.To)
		for y := min(y1, y2); y <= max(y1, y2); y++ {
			for x := min(x1, x2); x <= max(x1, x2); x++ {
				c, _, _, _ := ed.screen.GetContent(x, y)
				ed.screen.SetContent(x, y, c, nil, style)
			}
		}
	}

	for _, lb := range g.AxisLabels {
		_, y := l.cell(lb.At)
		ed.drawString(l.canvasLeft-1-len(lb.Text), y, lb.Text, styleLabel)
	}
	for _, lb := range g.PhaseLabels {
		x, y := l.cell(lb.At)
		ed.drawString(x, y, lb.Text, styleLabel)
	}

	if ed.anim != nil {
		if q, err := ed.reg.Get(ed.anim.id); err == nil {
			for _, p := range ed.anim.pb.Path {
				x, y := l.cell(p)
				ed.screen.SetContent(x, y, '·', nil, qubitStyle(q))
			}
		}
	}

	for _, m := range ed.markers(l, qubits) {
		r := '●'
		if n := len(m.ids); n > 9 {
			r = '+'
		} else if n > 1 {
			r = rune('0' + n)
		}
		ed.screen.SetContent(m.x, m.y, r, nil, m.style.Bold(true))
	}
}

// marker is one occupied canvas cell.
type marker struct {
	x, y  int
	ids   []int
	style tcell.Style // first qubit's color
}

// markers groups qubits by the canvas cell they are drawn in. The
// animating qubit is drawn at its current sample.
func (ed *Editor) markers(l layout, qubits []qubit.Qubit) []marker {
	var out []marker
	index := make(map[[2]int]int)
	for _, q := range qubits {
		p := q.Position
		if ed.anim != nil && ed.anim.id == q.ID {
			p = ed.animPos
		}
		x, y := l.cell(p)
		key := [2]int{x, y}
		if i, ok := index[key]; ok {
			out[i].ids = append(out[i].ids, q.ID)
			continue
		}
		index[key] = len(out)
		out = append(out, marker{x: x, y: y, ids: []int{q.ID}, style: qubitStyle(q)})
	}
	return out
}

// hoverLabel names the qubits under the mouse, using the registry's
// collocation groups.
func (ed *Editor) hoverLabel() string {
	l := ed.layout()
	for _, m := range ed.markers(l, ed.reg.Snapshot()) {
		if m.x != ed.hoverX || m.y != ed.hoverY {
			continue
		}
		q, err := ed.reg.Get(m.ids[0])
		if err != nil {
			return ""
		}
		if ids := ed.reg.GroupsAt(q.Position); len(ids) > 0 {
			return qubit.CombinedLabel(ids)
		}
		return qubit.CombinedLabel(m.ids)
	}
	return ""
}

func (ed *Editor) drawHover(l layout) {
	if ed.mode != ModeCanvas {
		return
	}
	text := ed.hoverLabel()
	if text == "" {
		return
	}
	text = " " + text + " "
	x := ed.hoverX + 2
	if x+len(text) > l.w {
		x = max(0, ed.hoverX-len(text)-1)
	}
	y := ed.hoverY - 1
	if y < 0 {
		y = ed.hoverY + 1
	}
	ed.drawString(x, y, text, styleHover)
}

func (ed *Editor) drawInputBox(l layout) {
	y := l.h - 3
	prompt := map[inputPurpose]string{
		inputSave:   "Save as: ",
		inputRender: "Render to: ",
		inputColor:  "Color: ",
	}[ed.inputPurpose]

	for x := 0; x < l.w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleInput)
	}
	ed.drawString(1, y, prompt+ed.input+"_", styleInput)
}

var helpLines = []string{
	"Drag a gate from the palette onto a lane",
	"",
	"x y z s p t h   apply gate to selected qubit",
	"Up/Down j/k     select qubit",
	"a               add qubit",
	"c               change color",
	"Space           replay last gate",
	"Ctrl+S          save session",
	"Ctrl+R          render SVG/PNG",
	"q / Esc         quit",
	"",
	"Hover a marker to see every qubit there",
}

func (ed *Editor) drawHelp(l layout) {
	w := 0
	for _, line := range helpLines {
		w = max(w, len(line))
	}
	w += 4
	h := len(helpLines) + 2
	x := max(0, (l.w-w)/2)
	y := max(0, (l.h-h)/2)

	ed.drawBox(x, y, w, h, styleBorder)
	ed.drawString(x+2, y, " Help ", styleTitle)
	for i, line := range helpLines {
		ed.drawString(x+2, y+1+i, line, styleDefault)
	}
}

// flashInverted reports whether the status message is drawn inverted
// elapsed milliseconds after it was shown.
func flashInverted(elapsed int64) bool {
	if elapsed < 0 || elapsed >= 500 {
		return false
	}
	phase := elapsed / 125
	return phase == 1 || phase == 3
}

func (ed *Editor) drawStatusBar(l layout) {
	y := l.h - 1
	for x := 0; x < l.w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	fileInfo := "[New]"
	if ed.filename != "" {
		fileInfo = filepath.Base(ed.filename)
	}
	if ed.modified {
		fileInfo += " *"
	}
	ed.drawString(1, y, fileInfo, styleStatus)

	modeStr := ed.modeString()
	ed.drawString(l.w/2-len(modeStr)/2, y, modeStr, styleStatus)

	if ed.message != "" {
		style := styleMsgInfo
		switch ed.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		if ed.messageType != MsgInfo {
			elapsed := time.Now().UnixMilli() - ed.messageFlashStart.Load()
			if flashInverted(elapsed) {
				style = style.Reverse(true)
			}
		}
		ed.drawString(l.w-len(ed.message)-2, y, ed.message, style)
	}

	y = l.h - 2
	for x := 0; x < l.w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	ed.drawString(1, y, truncate(ed.helpString(), l.w-2), styleHelp)
}

func (ed *Editor) drawBox(x, y, w, h int, style tcell.Style) {
	for i := x; i < x+w; i++ {
		for j := y; j < y+h; j++ {
			ed.screen.SetContent(i, j, ' ', nil, styleDefault)
		}
	}
	for i := x + 1; i < x+w-1; i++ {
		ed.screen.SetContent(i, y, '─', nil, style)
		ed.screen.SetContent(i, y+h-1, '─', nil, style)
	}
	for j := y + 1; j < y+h-1; j++ {
		ed.screen.SetContent(x, j, '│', nil, style)
		ed.screen.SetContent(x+w-1, j, '│', nil, style)
	}
	ed.screen.SetContent(x, y, '┌', nil, style)
	ed.screen.SetContent(x+w-1, y, '┐', nil, style)
	ed.screen.SetContent(x, y+h-1, '└', nil, style)
	ed.screen.SetContent(x+w-1, y+h-1, '┘', nil, style)
}

func (ed *Editor) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		ed.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (ed *Editor) modeString() string {
	switch ed.mode {
	case ModeDrag:
		return "DRAG " + ed.dragGate.String()
	case ModeInput:
		return "INPUT"
	case ModeHelp:
		return "HELP"
	}
	if ed.anim != nil {
		return "PLAYING"
	}
	return "CANVAS"
}

func (ed *Editor) helpString() string {
	switch ed.mode {
	case ModeDrag:
		return "Release on a lane to apply | Esc: cancel"
	case ModeInput:
		return "Enter: confirm | Esc: cancel"
	case ModeHelp:
		return "Any key: close"
	}
	return "xyzspth: gate | ↑↓: select | a: add | c: color | Space: replay | ^S: save | ^R: render | ?: help | q: quit"
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
