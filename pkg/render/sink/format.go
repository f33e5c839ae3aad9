package sink

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// Format is an output format name, equal to its file extension.
type Format string

// Supported output formats.
const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// DefaultDPI is the raster resolution used when none is configured.
const DefaultDPI = 150.0

// DefaultBackground is the page fill used when none is configured.
const DefaultBackground scene.Color = "#FFFFFF"

// Transparent as a background leaves the page unfilled.
const Transparent scene.Color = "none"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[Format]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !ValidFormats[f] {
		return "", errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q (must be one of: svg, png, pdf, json)", s)
	}
	return f, nil
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeUnsupportedFormat, "cannot infer format from %q: no extension", path)
	}
	return ParseFormat(ext)
}

// Options holds settings shared by all sinks.
type Options struct {
	DPI        float64     // raster resolution; PNG only
	Background scene.Color // page fill; empty keeps [DefaultBackground]
	FontFamily string      // font stack for SVG and PDF; empty keeps [FontFamily]
}

func (o Options) background() scene.Color {
	switch o.Background {
	case scene.None:
		return DefaultBackground
	case Transparent:
		return scene.None
	}
	return o.Background
}

func (o Options) svgOptions() []SVGOption {
	return []SVGOption{WithBackground(o.background()), WithFontFamily(o.FontFamily)}
}

// DefaultOptions returns the default sink options.
func DefaultOptions() Options {
	return Options{DPI: DefaultDPI}
}

// Render dispatches to the renderer for format. The scene must carry a
// valid frame, i.e. come from a finalized diagram.
func Render(ctx context.Context, sc *scene.Scene, format Format, opts Options) ([]byte, error) {
	if !sc.Frame.Valid() {
		return nil, errors.New(errors.ErrCodeNotFinalized, "render %s: scene has no frame", format)
	}
	switch format {
	case FormatSVG:
		return RenderSVG(sc, opts.svgOptions()...), nil
	case FormatPNG:
		return RenderPNG(sc, WithDPI(opts.DPI), WithPNGBackground(opts.background()))
	case FormatPDF:
		return RenderPDF(ctx, sc, opts.svgOptions()...)
	case FormatJSON:
		return RenderJSON(sc)
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q", format)
	}
}
