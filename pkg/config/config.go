// Package config loads seqdiag settings from an optional TOML or YAML file.
//
// A config file overrides the built-in defaults; command-line flags override
// the file. Unknown keys are rejected so typos surface immediately.
//
//	output_dir = "exports/go"
//	formats    = ["png", "svg"]
//	dpi        = 150
//	background = "#FFFFFF"
//	cache      = true
//
//	[figure]
//	width  = 28
//	height = 50
//
//	[palette]
//	hubb_participant = "#2563EB"
//
//	[overview]
//	formats  = ["svg"]
//	collapse = true
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/seqdiag/pkg/diagram"
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/hubbflow"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// DefaultOutputDir is where files are written when nothing else is configured.
const DefaultOutputDir = "exports/go"

// FileNames are the config files [Discover] looks for, in order.
var FileNames = []string{"seqdiag.toml", "seqdiag.yaml", "seqdiag.yml"}

// Config holds all user-tunable settings.
type Config struct {
	OutputDir  string            `toml:"output_dir" yaml:"output_dir"`
	Formats    []string          `toml:"formats" yaml:"formats"`
	DPI        float64           `toml:"dpi" yaml:"dpi"`
	Background string            `toml:"background" yaml:"background"` // hex colour or "none"
	FontFamily string            `toml:"font_family" yaml:"font_family"`
	Figure     Figure            `toml:"figure" yaml:"figure"`
	Palette    map[string]string `toml:"palette" yaml:"palette"`
	Cache      *bool             `toml:"cache" yaml:"cache"`
	Overview   Overview          `toml:"overview" yaml:"overview"`

	// Source is the file the config was loaded from; empty for defaults.
	Source string `toml:"-" yaml:"-"`
}

// Figure is the output page size in inches. Zero values keep the diagram's own size.
type Figure struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

// Overview configures the interaction overview.
type Overview struct {
	Formats       []string `toml:"formats" yaml:"formats"`
	Collapse      bool     `toml:"collapse" yaml:"collapse"`
	SkipResponses bool     `toml:"skip_responses" yaml:"skip_responses"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir: DefaultOutputDir,
		Formats:   []string{string(sink.FormatPNG), string(sink.FormatSVG)},
		DPI:       sink.DefaultDPI,
		Overview:  Overview{Formats: []string{string(sink.FormatSVG)}},
	}
}

// Discover returns the first config file from [FileNames] present in dir,
// or "" when there is none.
func Discover(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads path over the defaults and validates the result. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, &cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unsupported extension %q (use .toml, .yaml or .yml)", path, ext)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}

	cfg.Source = path
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Validate checks formats, resolution, figure size and colours.
func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "output_dir cannot be empty")
	}
	if len(c.Formats) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "formats cannot be empty")
	}
	for _, f := range append(append([]string{}, c.Formats...), c.Overview.Formats...) {
		if _, err := sink.ParseFormat(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "formats")
		}
	}
	for _, f := range c.Overview.Formats {
		if sink.Format(strings.ToLower(f)) == sink.FormatJSON {
			return errors.New(errors.ErrCodeInvalidConfig, "overview.formats: json is not available for overviews")
		}
	}
	if c.DPI <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dpi must be positive, got %g", c.DPI)
	}
	if c.Figure.Width < 0 || c.Figure.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "figure size cannot be negative")
	}
	if slices.Contains(c.OutputFormats(), sink.FormatPNG) {
		w, h := c.PageSize()
		if _, _, err := sink.RasterSize(w*72, h*72, c.DPI); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "dpi %g is too large for a %gx%g in page", c.DPI, w, h)
		}
	}

	if bg := scene.Color(c.Background); bg != scene.None && bg != sink.Transparent {
		if _, err := sink.ParseColor(bg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "background")
		}
	}

	known := diagram.DefaultPalette()
	for name, value := range c.Palette {
		if _, ok := known[name]; !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "palette: unknown colour name %q", name)
		}
		if _, err := sink.ParseColor(scene.Color(value)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette.%s", name)
		}
	}
	return nil
}

// CacheEnabled reports whether artifact caching is on (the default).
func (c Config) CacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}

// OutputFormats returns the diagram formats, normalised.
func (c Config) OutputFormats() []sink.Format {
	return parseFormats(c.Formats)
}

// OverviewFormats returns the overview formats, normalised.
func (c Config) OverviewFormats() []sink.Format {
	return parseFormats(c.Overview.Formats)
}

func parseFormats(names []string) []sink.Format {
	out := make([]sink.Format, 0, len(names))
	seen := map[sink.Format]bool{}
	for _, n := range names {
		f, err := sink.ParseFormat(n)
		if err != nil || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// PageSize returns the diagram page size in inches, filling unset
// dimensions from the hub diagram's own size.
func (c Config) PageSize() (width, height float64) {
	width, height = hubbflow.FigureWidth, hubbflow.FigureHeight
	if c.Figure.Width > 0 {
		width = c.Figure.Width
	}
	if c.Figure.Height > 0 {
		height = c.Figure.Height
	}
	return width, height
}

// DiagramOptions converts the figure size and palette overrides into engine
// options.
func (c Config) DiagramOptions() []diagram.Option {
	var opts []diagram.Option
	if c.Figure.Width > 0 || c.Figure.Height > 0 {
		opts = append(opts, diagram.WithFigureSize(c.Figure.Width, c.Figure.Height))
	}
	if len(c.Palette) > 0 {
		p := diagram.Palette{}
		for name, value := range c.Palette {
			p[name] = scene.Color(strings.ToUpper(value))
		}
		opts = append(opts, diagram.WithPalette(p))
	}
	return opts
}
