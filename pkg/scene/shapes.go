package scene

// Rect is a filled, optionally rounded and stroked rectangle.
// (X, Y) is the bottom-left corner in logical coordinates.
type Rect struct {
	X, Y, W, H float64
	Radius     float64 // corner radius in logical x units
	Fill       Color
	Opacity    float64 // fill opacity; 0 means opaque
	Stroke     *Stroke
	Z          int
}

func (r Rect) Layer() int { return r.Z }

func (r Rect) Bounds() Box {
	return Box{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H}
}

// Top returns the y coordinate of the upper edge.
func (r Rect) Top() float64 { return r.Y + r.H }

// Polyline is an open path of straight segments.
type Polyline struct {
	Points []Point
	Stroke Stroke
	Z      int
}

func (p Polyline) Layer() int { return p.Z }

func (p Polyline) Bounds() Box {
	if len(p.Points) == 0 {
		return Box{}
	}
	b := Box{MinX: p.Points[0].X, MinY: p.Points[0].Y, MaxX: p.Points[0].X, MaxY: p.Points[0].Y}
	for _, pt := range p.Points[1:] {
		b = b.Union(Box{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y})
	}
	return b
}

// HeadStyle selects the arrowhead drawn at an arrow's To end.
type HeadStyle int

const (
	// HeadFilled is a closed, filled triangle (requests).
	HeadFilled HeadStyle = iota
	// HeadOpen is an open chevron (responses).
	HeadOpen
)

func (h HeadStyle) String() string {
	if h == HeadOpen {
		return "open"
	}
	return "filled"
}

// Arrow is a straight line with a head at To.
type Arrow struct {
	From, To Point
	Stroke   Stroke
	Head     HeadStyle
	HeadSize float64 // head length in points
	Z        int
}

func (a Arrow) Layer() int { return a.Z }

func (a Arrow) Bounds() Box {
	return Polyline{Points: []Point{a.From, a.To}}.Bounds()
}

// Anchor is the horizontal alignment of text relative to its position.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Baseline is the vertical alignment of text relative to its position.
type Baseline int

const (
	BaselineTop Baseline = iota
	BaselineMiddle
	BaselineBottom
)

// Plate is a translucent background drawn behind text.
type Plate struct {
	Fill    Color
	Opacity float64
}

// Text is a single line of text. Size is in points.
type Text struct {
	X, Y     float64
	Content  string
	Size     float64
	Bold     bool
	Italic   bool
	Color    Color
	Anchor   Anchor
	Baseline Baseline
	Plate    *Plate
	Z        int
}

func (t Text) Layer() int { return t.Z }

func (t Text) Bounds() Box {
	return Box{MinX: t.X, MinY: t.Y, MaxX: t.X, MaxY: t.Y}
}
