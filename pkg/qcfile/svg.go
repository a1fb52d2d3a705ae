package qcfile

import (
	"fmt"
	"html"
	"strings"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// RenderSVG renders the diagram and the qubit markers to SVG.
func RenderSVG(qubits []qubit.Qubit, opts RenderOptions) string {
	s := newScene(qubits, opts)
	o := s.opts

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		o.Width, o.Height, o.Width, o.Height))
	sb.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")
	sb.WriteString(fmt.Sprintf(`<g font-family="Helvetica, Arial, sans-serif" font-size="%d">`+"\n", o.FontSize))

	if o.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" text-anchor="middle" font-size="%d" font-weight="bold">%s</text>`+"\n",
			o.Width/2, o.Padding/2, o.FontSize+4, html.EscapeString(o.Title)))
	}

	sb.WriteString(`<g class="grid" stroke="#cccccc" stroke-width="1">` + "\n")
	for _, seg := range append(s.geom.Verticals, s.geom.Horizontals...) {
		svgLine(&sb, s.proj, seg, "")
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g class="guides" stroke-width="1.5" stroke-dasharray="4 3" opacity="0.6">` + "\n")
	for _, g := range s.geom.Guides {
		svgLine(&sb, s.proj, g.Segment, fmt.Sprintf(` id="%s" stroke="%s"`, g.ID, g.Color))
	}
	sb.WriteString("</g>\n")

	for _, l := range s.geom.PhaseLabels {
		x, y := s.proj.apply(l.At)
		sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="end" font-size="%d">%s</text>`+"\n",
			x, y, l.Size, html.EscapeString(l.Text)))
	}
	for _, l := range s.geom.AxisLabels {
		x, y := s.proj.apply(l.At)
		sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="end" dominant-baseline="middle" font-size="%d">%s</text>`+"\n",
			x, y, l.Size, html.EscapeString(l.Text)))
	}

	for _, q := range s.qubits {
		color := html.EscapeString(q.Color)
		if t := trail(q); t != nil {
			x1, y1 := s.proj.apply(t[0])
			x2, y2 := s.proj.apply(t[1])
			sb.WriteString(fmt.Sprintf(`<line class="trail" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-dasharray="2 2" opacity="0.5"/>`+"\n",
				x1, y1, x2, y2, color))
		}
		if o.ShowPaths && len(q.AnimationPath) > 1 {
			for _, run := range SplitAtWrap(q.AnimationPath) {
				if d := svgPathData(s.proj, SmoothPath(run)); d != "" {
					sb.WriteString(fmt.Sprintf(`<path class="path" d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n", d, color))
				}
			}
		}
	}

	for _, q := range s.qubits {
		x, y := s.proj.apply(q.Position)
		sb.WriteString(fmt.Sprintf(`<circle id="qubit-%d" cx="%.2f" cy="%.2f" r="%.1f" fill="%s" stroke="#333333"/>`+"\n",
			q.ID, x, y, o.MarkerRadius, html.EscapeString(q.Color)))
	}

	for _, l := range s.labels {
		sb.WriteString(fmt.Sprintf(`<text class="label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			l.At.X, l.At.Y, html.EscapeString(l.Text)))
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func svgLine(sb *strings.Builder, p projection, seg qubit.Segment, attrs string) {
	x1, y1 := p.apply(seg.From)
	x2, y2 := p.apply(seg.To)
	sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n", x1, y1, x2, y2, attrs))
}

// svgPathData writes a path from SmoothPath output: a move, then either
// straight lines or cubic segments.
func svgPathData(p projection, pts []qubit.Point) string {
	if len(pts) < 2 {
		return ""
	}
	var sb strings.Builder
	x, y := p.apply(pts[0])
	sb.WriteString(fmt.Sprintf("M %.2f %.2f", x, y))

	if len(pts) < 4 || (len(pts)-1)%3 != 0 {
		for _, pt := range pts[1:] {
			x, y := p.apply(pt)
			sb.WriteString(fmt.Sprintf(" L %.2f %.2f", x, y))
		}
		return sb.String()
	}

	for i := 1; i+2 < len(pts); i += 3 {
		c1x, c1y := p.apply(pts[i])
		c2x, c2y := p.apply(pts[i+1])
		ex, ey := p.apply(pts[i+2])
		sb.WriteString(fmt.Sprintf(" C %.2f %.2f, %.2f %.2f, %.2f %.2f", c1x, c1y, c2x, c2y, ex, ey))
	}
	return sb.String()
}
