package diagram

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// ExportOption configures [Diagram.Export] and [Diagram.Render].
type ExportOption func(*sink.Options)

// WithDPI sets the raster resolution in dots per inch.
func WithDPI(dpi float64) ExportOption {
	return func(o *sink.Options) {
		if dpi > 0 {
			o.DPI = dpi
		}
	}
}

// WithBackground sets the page fill. [sink.Transparent] leaves the page
// unfilled.
func WithBackground(c scene.Color) ExportOption {
	return func(o *sink.Options) { o.Background = c }
}

// WithFontFamily overrides the font stack of SVG and PDF output.
func WithFontFamily(family string) ExportOption {
	return func(o *sink.Options) { o.FontFamily = family }
}

func exportOptions(opts []ExportOption) sink.Options {
	o := sink.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Render serialises the finalized diagram in the given format.
func (d *Diagram) Render(ctx context.Context, format sink.Format, opts ...ExportOption) ([]byte, error) {
	if d.phase != phaseFinalized {
		return nil, errors.New(errors.ErrCodeNotFinalized, "render %s: diagram not finalized", format)
	}
	return sink.Render(ctx, &d.scene, format, exportOptions(opts))
}

// Export writes the finalized diagram to path, choosing the format from the
// file extension (.svg, .png, .pdf, .json).
func (d *Diagram) Export(path string, opts ...ExportOption) error {
	return d.ExportContext(context.Background(), path, opts...)
}

// ExportContext is [Diagram.Export] with a context bounding external
// converters.
func (d *Diagram) ExportContext(ctx context.Context, path string, opts ...ExportOption) error {
	format, err := sink.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := d.Render(ctx, format, opts...)
	if err != nil {
		return err
	}
	if err := WriteFile(path, data); err != nil {
		return err
	}
	d.logger.Debug("export", "path", path, "bytes", len(data))
	return nil
}

// WriteFile writes data to path, creating parent directories. Failures are
// reported as IO_WRITE.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeIOWrite, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIOWrite, err, "write %s", path)
	}
	return nil
}
