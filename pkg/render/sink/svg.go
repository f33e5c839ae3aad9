package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/seqdiag/pkg/scene"
)

// FontFamily is the CSS font stack used for SVG text.
const FontFamily = "DejaVu Sans, Helvetica, Arial, sans-serif"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background scene.Color
	fontFamily string
}

// WithBackground sets the page background colour (default white).
// scene.None leaves the background transparent.
func WithBackground(c scene.Color) SVGOption {
	return func(r *svgRenderer) { r.background = c }
}

// WithFontFamily overrides the CSS font stack. An empty family keeps the default.
func WithFontFamily(family string) SVGOption {
	return func(r *svgRenderer) {
		if family != "" {
			r.fontFamily = family
		}
	}
}

// RenderSVG renders the scene as a standalone SVG document sized in points.
// Output is deterministic: rendering the same scene twice yields identical bytes.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{background: DefaultBackground, fontFamily: FontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	f := sc.Frame
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0fpt" height="%.0fpt">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	if sc.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(sc.Title))
	}
	if r.background != scene.None {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n", f.Width, f.Height, r.background)
	}
	fmt.Fprintf(&buf, `  <g font-family="%s">`+"\n", escapeXML(r.fontFamily))

	for _, e := range sc.Sorted() {
		switch el := e.(type) {
		case scene.Rect:
			renderSVGRect(&buf, f, el)
		case scene.Polyline:
			renderSVGPolyline(&buf, f, el)
		case scene.Arrow:
			renderSVGArrow(&buf, f, el)
		case scene.Text:
			renderSVGText(&buf, f, el)
		}
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderSVGRect(buf *bytes.Buffer, f scene.Frame, r scene.Rect) {
	x, y := f.ToPage(scene.Point{X: r.X, Y: r.Top()})
	w, h := r.W*f.ScaleX(), r.H*f.ScaleY()
	rx := cornerRadius(f, r, w, h, 1)

	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"`, x, y, w, h)
	if rx > 0 {
		fmt.Fprintf(buf, ` rx="%.2f"`, rx)
	}
	buf.WriteString(svgFill(r.Fill, r.Opacity))
	if r.Stroke != nil {
		buf.WriteString(svgStroke(*r.Stroke))
	}
	buf.WriteString("/>\n")
}

func renderSVGPolyline(buf *bytes.Buffer, f scene.Frame, p scene.Polyline) {
	pts := make([]string, len(p.Points))
	for i, pt := range p.Points {
		x, y := f.ToPage(pt)
		pts[i] = fmt.Sprintf("%.2f,%.2f", x, y)
	}
	fmt.Fprintf(buf, `    <polyline points="%s" fill="none"%s/>`+"\n", strings.Join(pts, " "), svgStroke(p.Stroke))
}

func renderSVGArrow(buf *bytes.Buffer, f scene.Frame, a scene.Arrow) {
	s := resolveArrow(f, a, 1)
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n",
		s.from.x, s.from.y, s.tail.x, s.tail.y, svgStroke(a.Stroke))

	head := fmt.Sprintf("%.2f,%.2f %.2f,%.2f %.2f,%.2f", s.left.x, s.left.y, s.tip.x, s.tip.y, s.right.x, s.right.y)
	if s.filled {
		fmt.Fprintf(buf, `    <polygon points="%s" fill="%s"/>`+"\n", head, a.Stroke.Color)
		return
	}
	solid := a.Stroke
	solid.Dash = nil
	fmt.Fprintf(buf, `    <polyline points="%s" fill="none"%s stroke-linejoin="round"/>`+"\n", head, svgStroke(solid))
}

func renderSVGText(buf *bytes.Buffer, f scene.Frame, t scene.Text) {
	if t.Content == "" {
		return
	}
	x, y := f.ToPage(scene.Point{X: t.X, Y: t.Y})
	baseline := y + baselineShift(t.Baseline, t.Size)

	if t.Plate != nil {
		w := estimateTextWidth(t.Content, t.Size)
		pad := t.Size * platePadding
		left := x - anchorShift(t.Anchor, w) - pad
		top := baseline - t.Size*ascentRatio - pad
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f"%s/>`+"\n",
			left, top, w+2*pad, t.Size+2*pad, pad, svgFill(t.Plate.Fill, t.Plate.Opacity))
	}

	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" fill="%s" text-anchor="%s"`,
		x, baseline, t.Size, t.Color, svgAnchor(t.Anchor))
	if t.Bold {
		buf.WriteString(` font-weight="bold"`)
	}
	if t.Italic {
		buf.WriteString(` font-style="italic"`)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(t.Content))
}

func svgFill(c scene.Color, o float64) string {
	if c == scene.None {
		return ` fill="none"`
	}
	if op := opacity(o); op < 1 {
		return fmt.Sprintf(` fill="%s" fill-opacity="%.2f"`, c, op)
	}
	return fmt.Sprintf(` fill="%s"`, c)
}

func svgStroke(s scene.Stroke) string {
	if s.Color == scene.None || s.Width <= 0 {
		return ""
	}
	out := fmt.Sprintf(` stroke="%s" stroke-width="%.2f"`, s.Color, s.Width)
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = fmt.Sprintf("%.2f", d)
		}
		out += fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	return out
}

func svgAnchor(a scene.Anchor) string {
	switch a {
	case scene.AnchorMiddle:
		return "middle"
	case scene.AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
