package scene

import (
	"cmp"
	"math"
	"slices"
)

// Color is a hex colour such as "#1E3A5F". The empty Color means "none".
type Color string

// None disables a fill or stroke.
const None Color = ""

// Point is a position in logical coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned bounding box in logical coordinates.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	return Box{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Stroke describes a line style. Width and Dash are in points.
type Stroke struct {
	Color Color     `json:"color"`
	Width float64   `json:"width"`
	Dash  []float64 `json:"dash,omitempty"` // nil means solid
}

// Dashed returns a copy of s using the standard dash pattern scaled to its width.
func (s Stroke) Dashed() Stroke {
	s.Dash = []float64{3.7 * s.Width, 1.6 * s.Width}
	return s
}

// Element is a drawable primitive.
type Element interface {
	// Layer returns the z-order of the element; higher layers are drawn later.
	Layer() int
	// Bounds returns the logical-space extent of the element's geometry.
	// Text reports its anchor point only.
	Bounds() Box
}

// Frame fixes the visible logical extent and the page size in points.
type Frame struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Width      float64 // page width in points
	Height     float64 // page height in points
}

// ScaleX returns points per logical x unit.
func (f Frame) ScaleX() float64 { return f.Width / (f.MaxX - f.MinX) }

// ScaleY returns points per logical y unit.
func (f Frame) ScaleY() float64 { return f.Height / (f.MaxY - f.MinY) }

// ToPage converts a logical point into page coordinates (points, y down).
func (f Frame) ToPage(p Point) (x, y float64) {
	return (p.X - f.MinX) * f.ScaleX(), (f.MaxY - p.Y) * f.ScaleY()
}

// Valid reports whether the frame has a positive extent and page size.
func (f Frame) Valid() bool {
	return f.MaxX > f.MinX && f.MaxY > f.MinY && f.Width > 0 && f.Height > 0
}

// Scene is an ordered display list plus the frame it is viewed through.
type Scene struct {
	Title    string
	Elements []Element
	Frame    Frame
}

// Add appends elements to the scene.
func (s *Scene) Add(els ...Element) {
	s.Elements = append(s.Elements, els...)
}

// Sorted returns the elements in drawing order. The scene is not modified.
func (s *Scene) Sorted() []Element {
	out := slices.Clone(s.Elements)
	slices.SortStableFunc(out, func(a, b Element) int {
		return cmp.Compare(a.Layer(), b.Layer())
	})
	return out
}

// Bounds returns the union of all element bounds. ok is false for an empty scene.
func (s *Scene) Bounds() (b Box, ok bool) {
	for i, e := range s.Elements {
		if i == 0 {
			b = e.Bounds()
			continue
		}
		b = b.Union(e.Bounds())
	}
	return b, len(s.Elements) > 0
}
