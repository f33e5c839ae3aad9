package sink

import (
	"bytes"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	dpi        float64
	background scene.Color
}

// WithDPI sets the raster resolution (default 150).
func WithDPI(dpi float64) PNGOption {
	return func(r *pngRenderer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// WithPNGBackground sets the page background colour (default white).
// scene.None leaves the background transparent.
func WithPNGBackground(c scene.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// maxPixels bounds the raster size to keep memory use predictable.
const maxPixels = 200_000_000

// RasterSize returns the pixel dimensions of a page measured in points when
// rasterised at dpi. Pages that are empty or exceed the pixel budget are
// rejected.
func RasterSize(widthPt, heightPt, dpi float64) (int, int, error) {
	fw, fh := math.Ceil(widthPt*dpi/72), math.Ceil(heightPt*dpi/72)
	if !(fw > 0 && fh > 0) || fw*fh > maxPixels {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "png: invalid image size %gx%g at %g dpi", fw, fh, dpi)
	}
	return int(fw), int(fh), nil
}

// RenderPNG rasterises the scene. The image measures the frame's page size
// times DPI/72 pixels.
func RenderPNG(sc *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{dpi: DefaultDPI, background: DefaultBackground}
	for _, opt := range opts {
		opt(&r)
	}

	f := sc.Frame
	scale := r.dpi / 72
	w, h, err := RasterSize(f.Width, f.Height, r.dpi)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(w, h)
	if r.background != scene.None {
		if err := setColor(dc, r.background, 1); err != nil {
			return nil, err
		}
		dc.Clear()
	}

	p := pngPainter{dc: dc, frame: f, scale: scale, dpi: r.dpi, faces: map[faceKey]font.Face{}}
	defer p.close()

	for _, e := range sc.Sorted() {
		var err error
		switch el := e.(type) {
		case scene.Rect:
			err = p.rect(el)
		case scene.Polyline:
			err = p.polyline(el)
		case scene.Arrow:
			err = p.arrow(el)
		case scene.Text:
			err = p.text(el)
		}
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type faceKey struct {
	bold, italic bool
	size         float64
}

type pngPainter struct {
	dc    *gg.Context
	frame scene.Frame
	scale float64
	dpi   float64
	faces map[faceKey]font.Face
}

func (p *pngPainter) close() {
	for _, f := range p.faces {
		f.Close()
	}
}

func (p *pngPainter) toPixel(pt scene.Point) (float64, float64) {
	x, y := p.frame.ToPage(pt)
	return x * p.scale, y * p.scale
}

func (p *pngPainter) rect(r scene.Rect) error {
	x, y := p.toPixel(scene.Point{X: r.X, Y: r.Top()})
	w := r.W * p.frame.ScaleX() * p.scale
	h := r.H * p.frame.ScaleY() * p.scale
	p.dc.DrawRoundedRectangle(x, y, w, h, cornerRadius(p.frame, r, w, h, p.scale))

	if r.Fill != scene.None {
		if err := setColor(p.dc, r.Fill, opacity(r.Opacity)); err != nil {
			return err
		}
		p.dc.FillPreserve()
	}
	if r.Stroke != nil {
		if err := p.applyStroke(*r.Stroke); err != nil {
			return err
		}
		p.dc.Stroke()
	}
	p.dc.ClearPath()
	return nil
}

func (p *pngPainter) polyline(pl scene.Polyline) error {
	if len(pl.Points) < 2 {
		return nil
	}
	for i, pt := range pl.Points {
		x, y := p.toPixel(pt)
		if i == 0 {
			p.dc.MoveTo(x, y)
		} else {
			p.dc.LineTo(x, y)
		}
	}
	if err := p.applyStroke(pl.Stroke); err != nil {
		return err
	}
	p.dc.Stroke()
	return nil
}

func (p *pngPainter) arrow(a scene.Arrow) error {
	s := resolveArrow(p.frame, a, p.scale)
	p.dc.MoveTo(s.from.x, s.from.y)
	p.dc.LineTo(s.tail.x, s.tail.y)
	if err := p.applyStroke(a.Stroke); err != nil {
		return err
	}
	p.dc.Stroke()

	p.dc.MoveTo(s.left.x, s.left.y)
	p.dc.LineTo(s.tip.x, s.tip.y)
	p.dc.LineTo(s.right.x, s.right.y)
	if s.filled {
		p.dc.ClosePath()
		if err := setColor(p.dc, a.Stroke.Color, 1); err != nil {
			return err
		}
		p.dc.Fill()
		return nil
	}
	solid := a.Stroke
	solid.Dash = nil
	if err := p.applyStroke(solid); err != nil {
		return err
	}
	p.dc.Stroke()
	return nil
}

func (p *pngPainter) text(t scene.Text) error {
	if t.Content == "" {
		return nil
	}
	face, err := p.face(t.Bold, t.Italic, t.Size)
	if err != nil {
		return err
	}
	p.dc.SetFontFace(face)

	size := t.Size * p.scale
	x, y := p.toPixel(scene.Point{X: t.X, Y: t.Y})
	w, _ := p.dc.MeasureString(t.Content)
	left := x - anchorShift(t.Anchor, w)
	baseline := y + baselineShift(t.Baseline, size)

	if t.Plate != nil {
		pad := size * platePadding
		p.dc.DrawRoundedRectangle(left-pad, baseline-size*ascentRatio-pad, w+2*pad, size+2*pad, pad)
		if err := setColor(p.dc, t.Plate.Fill, opacity(t.Plate.Opacity)); err != nil {
			return err
		}
		p.dc.Fill()
	}

	if err := setColor(p.dc, t.Color, 1); err != nil {
		return err
	}
	p.dc.DrawString(t.Content, left, baseline)
	return nil
}

func (p *pngPainter) applyStroke(s scene.Stroke) error {
	if s.Color == scene.None || s.Width <= 0 {
		p.dc.SetRGBA(0, 0, 0, 0)
		return nil
	}
	if err := setColor(p.dc, s.Color, 1); err != nil {
		return err
	}
	p.dc.SetLineWidth(s.Width * p.scale)
	dash := make([]float64, len(s.Dash))
	for i, d := range s.Dash {
		dash[i] = d * p.scale
	}
	p.dc.SetDash(dash...)
	return nil
}

func (p *pngPainter) face(bold, italic bool, size float64) (font.Face, error) {
	key := faceKey{bold: bold, italic: italic, size: size}
	if f, ok := p.faces[key]; ok {
		return f, nil
	}
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(fonts.pick(bold, italic), &opentype.FaceOptions{
		Size:    size,
		DPI:     p.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create font face")
	}
	p.faces[key] = f
	return f, nil
}

func setColor(dc *gg.Context, c scene.Color, alpha float64) error {
	col, err := ParseColor(c)
	if err != nil {
		return err
	}
	dc.SetRGBA(col.R, col.G, col.B, alpha)
	return nil
}

// goFonts holds the parsed Go font family. Parsed fonts are immutable and
// shared; faces derived from them are not.
type goFonts struct {
	regular, bold, italic, boldItalic *opentype.Font
}

func (g *goFonts) pick(bold, italic bool) *opentype.Font {
	switch {
	case bold && italic:
		return g.boldItalic
	case bold:
		return g.bold
	case italic:
		return g.italic
	default:
		return g.regular
	}
}

var loadFonts = sync.OnceValues(func() (*goFonts, error) {
	var g goFonts
	for _, src := range []struct {
		dst **opentype.Font
		ttf []byte
	}{
		{&g.regular, goregular.TTF},
		{&g.bold, gobold.TTF},
		{&g.italic, goitalic.TTF},
		{&g.boldItalic, gobolditalic.TTF},
	} {
		f, err := opentype.Parse(src.ttf)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded font")
		}
		*src.dst = f
	}
	return &g, nil
})
