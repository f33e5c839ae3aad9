package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

func testScene() *scene.Scene {
	sc := &scene.Scene{
		Title: "Test <diagram>",
		Frame: scene.Frame{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100, Width: 144, Height: 144},
	}
	sc.Add(
		scene.Rect{X: 10, Y: 10, W: 20, H: 10, Radius: 1, Fill: "#C7F9CC", Opacity: 0.5,
			Stroke: &scene.Stroke{Color: "#374151", Width: 1}, Z: 20},
		scene.Polyline{Points: []scene.Point{{X: 30, Y: 90}, {X: 30, Y: 10}},
			Stroke: scene.Stroke{Color: "#94A3B8", Width: 1.5}.Dashed(), Z: 10},
		scene.Arrow{From: scene.Point{X: 30, Y: 50}, To: scene.Point{X: 70, Y: 50},
			Stroke: scene.Stroke{Color: "#1E3A5F", Width: 2}, Head: scene.HeadFilled, HeadSize: 9, Z: 80},
		scene.Arrow{From: scene.Point{X: 70, Y: 40}, To: scene.Point{X: 30, Y: 40},
			Stroke: scene.Stroke{Color: "#1E3A5F", Width: 2}.Dashed(), Head: scene.HeadOpen, HeadSize: 9, Z: 80},
		scene.Text{X: 50, Y: 51, Content: "1. Hello & bye", Size: 8, Color: "#1F2937",
			Anchor: scene.AnchorMiddle, Baseline: scene.BaselineBottom,
			Plate: &scene.Plate{Fill: "#FFFFFF", Opacity: 0.9}, Z: 90},
		scene.Text{X: 12, Y: 19, Content: "LOOP", Size: 8, Bold: true, Italic: true, Color: "#FFFFFF", Z: 40},
		scene.Text{X: 12, Y: 30, Content: "", Size: 8, Color: "#FFFFFF", Z: 40},
	)
	return sc
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 144.00 144.00" width="144pt" height="144pt">`,
		"<title>Test &lt;diagram&gt;</title>",
		`fill-opacity="0.50"`,
		`stroke-dasharray="5.55 2.40"`,
		"<polygon ",
		`text-anchor="middle"`,
		`font-weight="bold"`,
		`font-style="italic"`,
		"1. Hello &amp; bye",
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}

	if n := strings.Count(svg, "<text "); n != 2 {
		t.Errorf("SVG has %d <text> elements, want 2 (empty text skipped)", n)
	}

	// Lifeline (layer 10) must be written before the block (layer 20).
	if strings.Index(svg, "<polyline points=\"43.20") > strings.Index(svg, `rx="1.44"`) {
		t.Error("elements not written in layer order")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testScene())
	b := RenderSVG(testScene())
	if !bytes.Equal(a, b) {
		t.Error("RenderSVG output differs between runs")
	}
}

func TestRenderSVGTransparent(t *testing.T) {
	svg := string(RenderSVG(testScene(), WithBackground(scene.None), WithFontFamily("Inter")))
	if strings.Contains(svg, `<rect x="0" y="0"`) {
		t.Error("background rect drawn with transparent background")
	}
	if !strings.Contains(svg, `font-family="Inter"`) {
		t.Error("font family override not applied")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testScene(), WithDPI(72))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 144 || b.Dy() != 144 {
		t.Errorf("size = %dx%d, want 144x144", b.Dx(), b.Dy())
	}

	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 0xFF || g>>8 != 0xFF || b>>8 != 0xFF {
		t.Errorf("background pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}

func TestRenderPNGScalesWithDPI(t *testing.T) {
	data, err := RenderPNG(testScene(), WithDPI(144))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 288 || cfg.Height != 288 {
		t.Errorf("size = %dx%d, want 288x288", cfg.Width, cfg.Height)
	}
}

func TestRenderPNGInvalidColor(t *testing.T) {
	sc := testScene()
	sc.Add(scene.Rect{X: 1, Y: 1, W: 1, H: 1, Fill: "not-a-colour"})

	_, err := RenderPNG(sc, WithDPI(72))
	if !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("err = %v, want INVALID_COLOR", err)
	}
}

func TestRasterSize(t *testing.T) {
	tests := []struct {
		name       string
		w, h, dpi  float64
		wantW      int
		wantH      int
		wantReject bool
	}{
		{"native", 144, 72, 72, 144, 72, false},
		{"scaled", 144, 72, 150, 300, 150, false},
		{"rounds up", 10, 10, 100, 14, 14, false},
		{"hub page at 300", 28 * 72, 50 * 72, 300, 8400, 15000, false},
		{"hub page at 400", 28 * 72, 50 * 72, 400, 0, 0, true},
		{"empty page", 0, 72, 150, 0, 0, true},
		{"zero dpi", 144, 72, 0, 0, 0, true},
		{"nan", math.NaN(), 72, 150, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := RasterSize(tt.w, tt.h, tt.dpi)
			if tt.wantReject {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("err = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RasterSize: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRenderPNGRejectsOversizedPage(t *testing.T) {
	sc := testScene()
	sc.Frame.Width, sc.Frame.Height = 28*72, 50*72

	_, err := RenderPNG(sc, WithDPI(400))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testScene())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ID != SceneID(testScene()) {
		t.Errorf("ID = %q, want %q", out.ID, SceneID(testScene()))
	}
	if len(out.Elements) != 7 {
		t.Fatalf("len(Elements) = %d, want 7", len(out.Elements))
	}
	if out.Elements[0].Kind != "polyline" {
		t.Errorf("first element = %q, want polyline (lowest layer)", out.Elements[0].Kind)
	}

	again, _ := RenderJSON(testScene())
	if !bytes.Equal(data, again) {
		t.Error("RenderJSON output differs between runs")
	}
}

func TestSceneIDStable(t *testing.T) {
	a := SceneID(&scene.Scene{Title: "x"})
	b := SceneID(&scene.Scene{Title: "x"})
	c := SceneID(&scene.Scene{Title: "y"})
	if a != b {
		t.Errorf("SceneID not stable: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different titles share a SceneID")
	}
}

func TestRenderPDFWithoutConverter(t *testing.T) {
	old := rsvgConvert
	rsvgConvert = "seqdiag-missing-rsvg-convert"
	defer func() { rsvgConvert = old }()

	_, err := RenderPDF(context.Background(), testScene())
	if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("err = %v, want UNSUPPORTED_FORMAT", err)
	}
}

func TestRenderRequiresFrame(t *testing.T) {
	sc := testScene()
	sc.Frame = scene.Frame{}

	_, err := Render(context.Background(), sc, FormatSVG, DefaultOptions())
	if !errors.Is(err, errors.ErrCodeNotFinalized) {
		t.Errorf("err = %v, want NOT_FINALIZED", err)
	}
}

func TestRenderDispatch(t *testing.T) {
	ctx := context.Background()
	svg, err := Render(ctx, testScene(), FormatSVG, DefaultOptions())
	if err != nil || !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("Render(svg) = %q..., %v", svg[:min(len(svg), 10)], err)
	}
	js, err := Render(ctx, testScene(), FormatJSON, DefaultOptions())
	if err != nil || !bytes.HasPrefix(js, []byte("{")) {
		t.Errorf("Render(json) err = %v", err)
	}
	if _, err := Render(ctx, testScene(), Format("gif"), DefaultOptions()); !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("Render(gif) err = %v, want UNSUPPORTED_FORMAT", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out/diagram.svg", FormatSVG, false},
		{"diagram.PNG", FormatPNG, false},
		{"a.b/diagram.pdf", FormatPDF, false},
		{"scene.json", FormatJSON, false},
		{"diagram.gif", "", true},
		{"diagram", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
				t.Errorf("FormatFromPath(%q) code = %v, want UNSUPPORTED_FORMAT", tt.path, errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveArrow(t *testing.T) {
	f := scene.Frame{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100, Width: 100, Height: 100}

	t.Run("filled shortens shaft", func(t *testing.T) {
		s := resolveArrow(f, scene.Arrow{
			From: scene.Point{X: 10, Y: 50}, To: scene.Point{X: 90, Y: 50},
			Head: scene.HeadFilled, HeadSize: 10,
		}, 1)
		if s.tip != (pagePoint{90, 50}) {
			t.Errorf("tip = %v, want {90 50}", s.tip)
		}
		if s.tail.x >= 90 || math.Abs(s.tail.y-50) > 1e-9 {
			t.Errorf("tail = %v, want left of tip on the shaft", s.tail)
		}
		if s.left.x >= 90 || s.right.x >= 90 || s.left.y == s.right.y {
			t.Errorf("head barbs = %v %v, want behind the tip on both sides", s.left, s.right)
		}
	})

	t.Run("open keeps shaft", func(t *testing.T) {
		s := resolveArrow(f, scene.Arrow{
			From: scene.Point{X: 90, Y: 50}, To: scene.Point{X: 10, Y: 50},
			Head: scene.HeadOpen, HeadSize: 10,
		}, 1)
		if s.tail != s.tip {
			t.Errorf("tail = %v, want tip %v", s.tail, s.tip)
		}
		if s.filled {
			t.Error("open head reported as filled")
		}
	})

	t.Run("zero length", func(t *testing.T) {
		s := resolveArrow(f, scene.Arrow{From: scene.Point{X: 5, Y: 5}, To: scene.Point{X: 5, Y: 5}, HeadSize: 10}, 1)
		if s.tip != s.tail {
			t.Errorf("zero-length arrow tail = %v, tip = %v", s.tail, s.tip)
		}
	})
}

func TestRenderAppliesPageOptions(t *testing.T) {
	ctx := context.Background()
	opts := Options{DPI: 72, Background: "#F8FAFC", FontFamily: "Inter"}

	svg, err := Render(ctx, testScene(), FormatSVG, opts)
	if err != nil {
		t.Fatalf("Render(svg): %v", err)
	}
	if !bytes.Contains(svg, []byte(`fill="#F8FAFC"`)) {
		t.Error("background option not applied to svg")
	}
	if !bytes.Contains(svg, []byte(`font-family="Inter"`)) {
		t.Error("font family option not applied to svg")
	}

	data, err := Render(ctx, testScene(), FormatPNG, opts)
	if err != nil {
		t.Fatalf("Render(png): %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 0xF8 || g>>8 != 0xFA || b>>8 != 0xFC {
		t.Errorf("background pixel = (%d,%d,%d), want #F8FAFC", r>>8, g>>8, b>>8)
	}
}

func TestRenderTransparentBackground(t *testing.T) {
	ctx := context.Background()
	opts := Options{DPI: 72, Background: Transparent}

	svg, err := Render(ctx, testScene(), FormatSVG, opts)
	if err != nil {
		t.Fatalf("Render(svg): %v", err)
	}
	if bytes.Contains(svg, []byte(`<rect x="0" y="0"`)) {
		t.Error("background rect drawn with transparent background")
	}

	data, err := Render(ctx, testScene(), FormatPNG, opts)
	if err != nil {
		t.Fatalf("Render(png): %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0 {
		t.Errorf("background alpha = %d, want 0", a)
	}

	def, err := Render(ctx, testScene(), FormatSVG, Options{})
	if err != nil {
		t.Fatalf("Render(svg): %v", err)
	}
	if !bytes.Contains(def, []byte(`fill="#FFFFFF"`)) {
		t.Error("empty background should keep white")
	}
}
