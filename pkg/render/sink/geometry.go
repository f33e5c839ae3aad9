package sink

import (
	"math"
	"unicode/utf8"

	"github.com/matzehuels/seqdiag/pkg/scene"
)

const (
	headAngle      = math.Pi / 7
	charWidthRatio = 0.55 // average glyph advance relative to font size
	platePadding   = 0.2  // plate padding relative to font size
	ascentRatio    = 0.8
	middleRatio    = 0.35
	descentRatio   = 0.2
)

type pagePoint struct{ x, y float64 }

// arrowShape is an arrow resolved in page space: the shaft ends at tail and
// the head is the polygon left → tip → right.
type arrowShape struct {
	from, tail       pagePoint
	left, tip, right pagePoint
	filled           bool
}

// resolveArrow computes page-space arrow geometry. scale multiplies page
// points (1 for vector output, DPI/72 for raster).
func resolveArrow(f scene.Frame, a scene.Arrow, scale float64) arrowShape {
	fx, fy := f.ToPage(a.From)
	tx, ty := f.ToPage(a.To)
	from := pagePoint{fx * scale, fy * scale}
	tip := pagePoint{tx * scale, ty * scale}

	dx, dy := tip.x-from.x, tip.y-from.y
	length := math.Hypot(dx, dy)
	size := a.HeadSize * scale
	if length == 0 {
		return arrowShape{from: from, tail: tip, left: tip, tip: tip, right: tip, filled: a.Head == scene.HeadFilled}
	}
	size = math.Min(size, length)
	ux, uy := dx/length, dy/length
	angle := math.Atan2(uy, ux)

	left := pagePoint{
		tip.x - size*math.Cos(angle-headAngle),
		tip.y - size*math.Sin(angle-headAngle),
	}
	right := pagePoint{
		tip.x - size*math.Cos(angle+headAngle),
		tip.y - size*math.Sin(angle+headAngle),
	}

	tail := tip
	if a.Head == scene.HeadFilled {
		back := size * math.Cos(headAngle)
		tail = pagePoint{tip.x - ux*back, tip.y - uy*back}
	}
	return arrowShape{from: from, tail: tail, left: left, tip: tip, right: right, filled: a.Head == scene.HeadFilled}
}

// estimateTextWidth approximates the advance width of s in points.
func estimateTextWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * charWidthRatio
}

// baselineShift returns the offset from the anchor y to the text baseline in
// page space (y down) for the given font size.
func baselineShift(b scene.Baseline, size float64) float64 {
	switch b {
	case scene.BaselineTop:
		return size * ascentRatio
	case scene.BaselineMiddle:
		return size * middleRatio
	default:
		return -size * descentRatio
	}
}

// anchorShift returns how far left of the anchor x the text starts.
func anchorShift(a scene.Anchor, width float64) float64 {
	switch a {
	case scene.AnchorMiddle:
		return width / 2
	case scene.AnchorEnd:
		return width
	default:
		return 0
	}
}

// cornerRadius converts a logical corner radius into page units, clamped to
// half the shorter side.
func cornerRadius(f scene.Frame, r scene.Rect, w, h, scale float64) float64 {
	return math.Max(0, math.Min(r.Radius*f.ScaleX()*scale, math.Min(w, h)/2))
}

// opacity normalises an element opacity; zero and out-of-range values mean opaque.
func opacity(o float64) float64 {
	if o <= 0 || o > 1 {
		return 1
	}
	return o
}
