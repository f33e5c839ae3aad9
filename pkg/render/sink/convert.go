package sink

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// rsvgConvert is the converter binary; tests may point it elsewhere.
var rsvgConvert = "rsvg-convert"

// RenderPDF renders the scene as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, sc *scene.Scene, opts ...SVGOption) ([]byte, error) {
	return ToPDF(ctx, RenderSVG(sc, opts...))
}

// ToPDF converts any SVG document to PDF using rsvg-convert.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convertSVG(ctx, svg, "pdf")
}

// ToPNG converts any SVG document to PNG using rsvg-convert. A scale of 2.0
// doubles the resolution.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return convertSVG(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// convertSVG shells out to rsvg-convert for format conversion.
func convertSVG(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(rsvgConvert); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedFormat, err,
			"%s export requires librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, rsvgConvert, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
