package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqdiag/pkg/cache"
	"github.com/matzehuels/seqdiag/pkg/diagram"
	"github.com/matzehuels/seqdiag/pkg/observability"
	"github.com/matzehuels/seqdiag/pkg/render/nodelink"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
)

// Runner executes the pipeline with artifact caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs build → render → overview → write.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[sink.Format][]byte),
		Overview:  make(map[sink.Format][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	d, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Diagram = d
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Participants = len(d.Participants())
	result.Stats.Messages = len(d.Messages())
	result.Stats.Elements = len(d.Scene().Elements)

	r.Logger.Info("built diagram",
		"participants", result.Stats.Participants,
		"messages", result.Stats.Messages,
		"duration", result.Stats.BuildTime)

	if slices.Contains(opts.Formats, sink.FormatPNG) {
		f := d.Scene().Frame
		if _, _, err := sink.RasterSize(f.Width, f.Height, opts.DPI); err != nil {
			return nil, fmt.Errorf("invalid options: %w", err)
		}
	}

	// Stage 2: Render
	renderStart := time.Now()
	sceneHash, err := SceneHash(d)
	if err != nil {
		return nil, fmt.Errorf("hash scene: %w", err)
	}
	result.SceneHash = sceneHash

	if err := r.renderArtifacts(ctx, d, sceneHash, opts, result); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	// Stage 3: Overview
	if opts.Overview {
		if err := r.renderOverview(ctx, d, opts, result); err != nil {
			return nil, fmt.Errorf("overview: %w", err)
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", formatNames(opts.Formats),
		"cache_hits", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	// Stage 4: Write
	if opts.OutputDir != "" {
		writeStart := time.Now()
		files, err := Write(ctx, opts.OutputDir, opts.BaseName, opts, result)
		if err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
		result.Files = files
		result.Stats.WriteTime = time.Since(writeStart)
		r.Logger.Debug("wrote files", "count", len(files), "dir", opts.OutputDir)
	}

	return result, nil
}

// Build replays the diagram script and returns the finalized diagram.
func (r *Runner) Build(ctx context.Context, opts Options) (*diagram.Diagram, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.BaseName)
	start := time.Now()

	buildOpts := append([]diagram.Option{diagram.WithLogger(opts.Logger)}, opts.Diagram...)
	d, err := opts.Build(buildOpts...)

	messages := 0
	if d != nil {
		messages = len(d.Messages())
	}
	hooks.OnBuildComplete(ctx, opts.BaseName, messages, time.Since(start), err)
	return d, err
}

// SceneHash returns the content hash of a finalized diagram's scene.
func SceneHash(d *diagram.Diagram) (string, error) {
	data, err := sink.RenderJSON(d.Scene())
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

func (r *Runner) renderArtifacts(ctx context.Context, d *diagram.Diagram, sceneHash string, opts Options, result *Result) error {
	hooks := observability.Pipeline()
	names := formatNames(opts.Formats)
	hooks.OnRenderStart(ctx, names)
	start := time.Now()

	var err error
	for _, format := range opts.Formats {
		if err = ctx.Err(); err != nil {
			break
		}
		key := r.Keyer.ArtifactKey(sceneHash, artifactKeyOpts(format, opts))
		var data []byte
		data, err = r.cached(ctx, key, opts.Refresh, result, func() ([]byte, error) {
			return d.Render(ctx, format, opts.exportOptions()...)
		})
		if err != nil {
			err = fmt.Errorf("%s: %w", format, err)
			break
		}
		result.Artifacts[format] = data
		r.Logger.Debug("rendered", "format", format, "bytes", len(data))
	}

	hooks.OnRenderComplete(ctx, names, time.Since(start), err)
	return err
}

func (r *Runner) renderOverview(ctx context.Context, d *diagram.Diagram, opts Options, result *Result) error {
	dot := nodelink.ToDOT(d.Participants(), d.Messages(), opts.OverviewOptions)
	dotHash := cache.Hash([]byte(dot))

	for _, format := range opts.OverviewFormats {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := r.Keyer.OverviewKey(dotHash, overviewKeyOpts(format, opts))
		data, err := r.cached(ctx, key, opts.Refresh, result, func() ([]byte, error) {
			return nodelink.Render(ctx, dot, format, opts.overviewScale())
		})
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		result.Overview[format] = data
	}
	return nil
}

// cached returns the cached value for key or computes and stores it. Cache
// failures never fail the pipeline; they only cost a re-render.
func (r *Runner) cached(ctx context.Context, key string, refresh bool, result *Result, compute func() ([]byte, error)) ([]byte, error) {
	hooks := observability.Cache()
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			result.CacheInfo.Hits++
			hooks.OnCacheHit(ctx, "artifact")
			r.Logger.Debug("cache hit", "key", cache.Describe(key))
			return data, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
	}
	result.CacheInfo.Misses++
	hooks.OnCacheMiss(ctx, "artifact")

	data, err := compute()
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, nil
}

func artifactKeyOpts(format sink.Format, opts Options) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: string(format)}
	if format == sink.FormatPNG {
		k.DPI = opts.DPI
	}
	if format != sink.FormatJSON {
		k.Background = string(opts.Background)
	}
	if format == sink.FormatSVG || format == sink.FormatPDF {
		k.FontFamily = opts.FontFamily
	}
	return k
}

func overviewKeyOpts(format sink.Format, opts Options) cache.OverviewKeyOpts {
	k := cache.OverviewKeyOpts{
		Format:        string(format),
		Collapse:      opts.OverviewOptions.Collapse,
		SkipResponses: opts.OverviewOptions.SkipResponses,
		SkipSelf:      opts.OverviewOptions.SkipSelf,
	}
	if format == sink.FormatPNG {
		k.Scale = opts.overviewScale()
	}
	return k
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// OutputPath returns the path of the diagram artifact in format.
func OutputPath(dir, baseName string, format sink.Format) string {
	return filepath.Join(dir, baseName+"."+string(format))
}

// OverviewPath returns the path of the overview artifact in format.
func OverviewPath(dir, baseName string, format sink.Format) string {
	return filepath.Join(dir, baseName+OverviewSuffix+"."+string(format))
}
