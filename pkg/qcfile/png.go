// Native PNG rendering of the diagram.
// Mirrors the SVG renderer output using Go's image packages.

package qcfile

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// supersample is the factor the image is drawn at before downsampling.
const supersample = 4

var (
	colorWhite  = color.RGBA{255, 255, 255, 255}
	colorBlack  = color.RGBA{51, 51, 51, 255}    // #333
	colorGrid   = color.RGBA{204, 204, 204, 255} // #ccc
	colorMarker = color.RGBA{128, 128, 128, 255}
)

// guideColors resolves the named guide colors of the diagram.
var guideColors = map[string]color.RGBA{
	"red":  {229, 115, 115, 255},
	"blue": {100, 149, 237, 255},
}

type renderContext struct {
	img       *image.RGBA
	scale     float64
	lineWidth float64
	face      font.Face
}

func newRenderContext(img *image.RGBA, scale int, fontSize int) (*renderContext, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(fontSize * scale),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	return &renderContext{
		img:       img,
		scale:     float64(scale),
		lineWidth: float64(scale),
		face:      face,
	}, nil
}

// RenderPNG renders the diagram and the qubit markers to PNG.
// Uses 4x supersampling for smoother output.
func RenderPNG(qubits []qubit.Qubit, w io.Writer, opts RenderOptions) error {
	opts = opts.withDefaults()

	large := opts
	large.Width *= supersample
	large.Height *= supersample
	large.Padding *= supersample
	large.MarkerRadius *= supersample
	large.FontSize *= supersample

	img := image.NewRGBA(image.Rect(0, 0, large.Width, large.Height))
	ctx, err := newRenderContext(img, supersample, opts.FontSize)
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}
	renderPNGInternal(ctx, newScene(qubits, large))

	final := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(final, final.Bounds(), img, img.Bounds(), draw.Over, nil)
	return png.Encode(w, final)
}

func renderPNGInternal(ctx *renderContext, s *scene) {
	draw.Draw(ctx.img, ctx.img.Bounds(), image.NewUniform(colorWhite), image.Point{}, draw.Src)

	if s.opts.Title != "" {
		drawTextCentered(ctx, s.opts.Width/2, s.opts.Padding/2, s.opts.Title, colorBlack)
	}

	for _, seg := range append(s.geom.Verticals, s.geom.Horizontals...) {
		x1, y1 := s.proj.apply(seg.From)
		x2, y2 := s.proj.apply(seg.To)
		drawLine(ctx, x1, y1, x2, y2, colorGrid)
	}
	for _, g := range s.geom.Guides {
		x1, y1 := s.proj.apply(g.From)
		x2, y2 := s.proj.apply(g.To)
		drawDashedLine(ctx, x1, y1, x2, y2, guideColors[g.Color])
	}
	for _, l := range append(s.geom.PhaseLabels, s.geom.AxisLabels...) {
		x, y := s.proj.apply(l.At)
		drawTextCentered(ctx, int(x), int(y), l.Text, colorBlack)
	}

	for _, q := range s.qubits {
		c := parseColor(q.Color)
		if t := trail(q); t != nil {
			x1, y1 := s.proj.apply(t[0])
			x2, y2 := s.proj.apply(t[1])
			drawDashedLine(ctx, x1, y1, x2, y2, c)
		}
		if s.opts.ShowPaths {
			for _, run := range SplitAtWrap(q.AnimationPath) {
				drawSmoothPath(ctx, s.proj, SmoothPath(run), c)
			}
		}
	}

	for _, q := range s.qubits {
		x, y := s.proj.apply(q.Position)
		drawDisc(ctx, x, y, s.opts.MarkerRadius, parseColor(q.Color), colorBlack)
	}

	for _, l := range s.labels {
		drawTextCentered(ctx, int(l.At.X), int(l.At.Y), l.Text, colorBlack)
	}
}

// parseColor reads a #rrggbb marker color, falling back to gray.
func parseColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorMarker
	}
	return c
}

// drawDisc draws a filled circle with an outline.
func drawDisc(ctx *renderContext, cx, cy, r float64, fill, stroke color.Color) {
	img := ctx.img
	for dy := -r; dy <= r; dy++ {
		ext := math.Sqrt(math.Max(0, r*r-dy*dy))
		for dx := -ext; dx <= ext; dx++ {
			img.Set(int(cx+dx), int(cy+dy), fill)
		}
	}
	for angle := 0.0; angle < 2*math.Pi; angle += 0.01 {
		nx, ny := math.Cos(angle), math.Sin(angle)
		for t := -ctx.lineWidth / 2; t <= ctx.lineWidth/2; t += 0.5 {
			img.Set(int(cx+nx*(r+t)), int(cy+ny*(r+t)), stroke)
		}
	}
}

// drawLine draws a line between two points with thickness from context.
func drawLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color) {
	img := ctx.img
	halfThick := ctx.lineWidth / 2

	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				img.Set(int(x1+tx), int(y1+ty), c)
			}
		}
		return
	}

	steps := math.Max(math.Abs(dx), math.Abs(dy))
	perpX := -dy / dist
	perpY := dx / dist

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := x1 + dx*t
		cy := y1 + dy*t
		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			img.Set(int(cx+perpX*offset), int(cy+perpY*offset), c)
		}
	}
}

// drawDashedLine draws alternating dashes of 4 and gaps of 3 (scaled).
func drawDashedLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color) {
	dash, gap := 4*ctx.scale, 3*ctx.scale
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	ux, uy := dx/dist, dy/dist
	for d := 0.0; d < dist; d += dash + gap {
		end := math.Min(d+dash, dist)
		drawLine(ctx, x1+ux*d, y1+uy*d, x1+ux*end, y1+uy*end, c)
	}
}

// drawSmoothPath draws SmoothPath output: cubic segments when present,
// otherwise a polyline.
func drawSmoothPath(ctx *renderContext, p projection, pts []qubit.Point, c color.Color) {
	if len(pts) < 2 {
		return
	}
	if len(pts) < 4 || (len(pts)-1)%3 != 0 {
		for i := 1; i < len(pts); i++ {
			x1, y1 := p.apply(pts[i-1])
			x2, y2 := p.apply(pts[i])
			drawLine(ctx, x1, y1, x2, y2, c)
		}
		return
	}

	const steps = 16
	for i := 0; i+3 < len(pts); i += 3 {
		prevX, prevY := p.apply(pts[i])
		for k := 1; k <= steps; k++ {
			pt := cubicAt(pts[i], pts[i+1], pts[i+2], pts[i+3], float64(k)/steps)
			x, y := p.apply(pt)
			drawLine(ctx, prevX, prevY, x, y, c)
			prevX, prevY = x, y
		}
	}
}

// drawTextCentered draws text centered at the given position.
func drawTextCentered(ctx *renderContext, x, y int, text string, c color.Color) {
	width := font.MeasureString(ctx.face, text).Ceil()
	ascent := ctx.face.Metrics().Ascent.Ceil()

	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: ctx.face,
		Dot: fixed.Point26_6{
			X: fixed.I(x - width/2),
			Y: fixed.I(y + int(float64(ascent)*0.35)),
		},
	}
	d.DrawString(text)
}
