// Package pipeline provides the build → render → write pipeline for seqdiag.
//
// This package implements the complete flow shared by every CLI command: the
// fixed hub narrative is replayed into a diagram, the finalized scene is
// serialised in each requested format, and the results are written to the
// output directory. Rendered artifacts are cached by scene content so an
// unchanged diagram is never rasterised twice.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Build: Replay the diagram script and finalize the scene
//  2. Render: Serialise the scene (SVG, PNG, PDF, JSON), consulting the cache
//  3. Overview: Optionally render the participant interaction graph
//  4. Write: Store every artifact under the output directory
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    OutputDir: "exports/go",
//	    Formats:   []sink.Format{sink.FormatPNG, sink.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, f := range result.Files {
//	    fmt.Println(f)
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqdiag/pkg/config"
	"github.com/matzehuels/seqdiag/pkg/diagram"
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/hubbflow"
	"github.com/matzehuels/seqdiag/pkg/render/nodelink"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// OverviewSuffix is appended to the base name of overview files.
const OverviewSuffix = "-overview"

// BuildFunc builds and finalizes a diagram.
type BuildFunc func(opts ...diagram.Option) (*diagram.Diagram, error)

// Options contains all configuration for a pipeline run.
type Options struct {
	// OutputDir receives the written files. Empty skips the write stage.
	OutputDir string

	// BaseName is the file name without extension (default: the hub diagram's).
	BaseName string

	// Formats lists the diagram formats to render (default: png, svg).
	Formats []sink.Format

	// DPI is the raster resolution for PNG output (default 150).
	DPI float64

	// Background is the page fill (default white). [sink.Transparent]
	// leaves the page unfilled.
	Background scene.Color

	// FontFamily overrides the SVG and PDF font stack.
	FontFamily string

	// Diagram options forwarded to the build, e.g. palette and figure size.
	Diagram []diagram.Option

	// Overview enables the interaction overview in OverviewFormats.
	Overview        bool
	OverviewFormats []sink.Format
	OverviewOptions nodelink.Options

	// Refresh skips cache reads; fresh results are still stored.
	Refresh bool

	// Build replaces the diagram script (default: hubbflow.Build).
	Build BuildFunc

	Logger *log.Logger

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the finalized diagram.
	Diagram *diagram.Diagram

	// SceneHash is the content hash of the scene, used for cache keys.
	SceneHash string

	// Artifacts contains rendered diagram outputs keyed by format.
	Artifacts map[sink.Format][]byte

	// Overview contains rendered overview outputs keyed by format.
	Overview map[sink.Format][]byte

	// Files lists written paths in render order.
	Files []string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Participants int
	Messages     int
	Elements     int
	BuildTime    time.Duration
	RenderTime   time.Duration
	WriteTime    time.Duration
}

// CacheInfo counts cache lookups across diagram and overview artifacts.
type CacheInfo struct {
	Hits   int
	Misses int
}

// FromConfig converts a loaded configuration into pipeline options.
func FromConfig(cfg config.Config) Options {
	return Options{
		OutputDir:       cfg.OutputDir,
		Formats:         cfg.OutputFormats(),
		DPI:             cfg.DPI,
		Background:      scene.Color(cfg.Background),
		FontFamily:      cfg.FontFamily,
		Diagram:         cfg.DiagramOptions(),
		OverviewFormats: cfg.OverviewFormats(),
		OverviewOptions: nodelink.Options{
			Collapse:      cfg.Overview.Collapse,
			SkipResponses: cfg.Overview.SkipResponses,
		},
	}
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.BaseName == "" {
		o.BaseName = hubbflow.BaseName
	}
	if err := errors.ValidateBaseName(o.BaseName); err != nil {
		return err
	}
	if o.OutputDir != "" {
		if err := errors.ValidateOutputDir(o.OutputDir); err != nil {
			return err
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = []sink.Format{sink.FormatPNG, sink.FormatSVG}
	}
	if err := validateFormats(o.Formats, true); err != nil {
		return err
	}
	if o.Overview {
		if len(o.OverviewFormats) == 0 {
			o.OverviewFormats = []sink.Format{sink.FormatSVG}
		}
		if err := validateFormats(o.OverviewFormats, false); err != nil {
			return err
		}
	}
	if o.DPI == 0 {
		o.DPI = sink.DefaultDPI
	}
	if o.DPI < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %g", o.DPI)
	}
	if o.Background != scene.None && o.Background != sink.Transparent {
		if _, err := sink.ParseColor(o.Background); err != nil {
			return err
		}
	}
	if o.Build == nil {
		o.Build = hubbflow.Build
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func validateFormats(formats []sink.Format, allowJSON bool) error {
	for _, f := range formats {
		if !sink.ValidFormats[f] || (!allowJSON && f == sink.FormatJSON) {
			return errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q", f)
		}
	}
	return nil
}

// exportOptions returns the page settings forwarded to the renderers.
func (o *Options) exportOptions() []diagram.ExportOption {
	return []diagram.ExportOption{
		diagram.WithDPI(o.DPI),
		diagram.WithBackground(o.Background),
		diagram.WithFontFamily(o.FontFamily),
	}
}

// overviewScale converts the raster DPI into an rsvg-convert zoom factor.
func (o *Options) overviewScale() float64 {
	return o.DPI / 72
}

func formatNames(formats []sink.Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}
