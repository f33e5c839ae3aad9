package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/seqdiag/pkg/diagram"
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, []sink.Format{sink.FormatPNG, sink.FormatSVG}, cfg.OutputFormats())
	assert.Equal(t, sink.DefaultDPI, cfg.DPI)
	assert.True(t, cfg.CacheEnabled())
	assert.Empty(t, cfg.DiagramOptions())
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "seqdiag.toml", `
output_dir = "out"
formats = ["SVG", "json", "svg"]
dpi = 300
cache = false
background = "none"
font_family = "Inter"

[figure]
width = 20

[palette]
hubb_participant = "#2563eb"

[overview]
formats = ["pdf"]
collapse = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, []sink.Format{sink.FormatSVG, sink.FormatJSON}, cfg.OutputFormats())
	assert.Equal(t, 300.0, cfg.DPI)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, "none", cfg.Background)
	assert.Equal(t, "Inter", cfg.FontFamily)
	assert.Equal(t, 20.0, cfg.Figure.Width)
	assert.Equal(t, []sink.Format{sink.FormatPDF}, cfg.OverviewFormats())
	assert.True(t, cfg.Overview.Collapse)

	d := diagram.New(cfg.DiagramOptions()...)
	assert.Equal(t, scene.Color("#2563EB"), d.Palette().Color(diagram.ColorHubbParticipant))
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "seqdiag.yaml", `
output_dir: build
formats: [png]
dpi: 96
figure:
  width: 10
  height: 12
palette:
  arrow: "#000"
overview:
  skip_responses: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "build", cfg.OutputDir)
	assert.Equal(t, []sink.Format{sink.FormatPNG}, cfg.OutputFormats())
	assert.Equal(t, 96.0, cfg.DPI)
	assert.Equal(t, Figure{Width: 10, Height: 12}, cfg.Figure)
	assert.True(t, cfg.Overview.SkipResponses)
	assert.Equal(t, []sink.Format{sink.FormatSVG}, cfg.OverviewFormats(), "unset overview formats keep the default")
	assert.True(t, cfg.CacheEnabled())
	assert.Len(t, cfg.DiagramOptions(), 2)
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "seqdiag.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown extension", "seqdiag.ini", "dpi=1"},
		{"bad toml", "c.toml", "dpi = = 1"},
		{"unknown toml key", "c.toml", "colour = 1"},
		{"unknown yaml key", "c.yaml", "colour: 1"},
		{"bad format", "c.toml", `formats = ["gif"]`},
		{"empty formats", "c.toml", `formats = []`},
		{"json overview", "c.toml", "[overview]\nformats = [\"json\"]"},
		{"zero dpi", "c.toml", "dpi = 0"},
		{"huge dpi", "c.yaml", "dpi: 5000"},
		{"negative figure", "c.yaml", "figure:\n  width: -1"},
		{"empty output dir", "c.toml", `output_dir = " "`},
		{"unknown palette name", "c.toml", "[palette]\nmauve = \"#FFFFFF\""},
		{"bad palette colour", "c.toml", "[palette]\narrow = \"blue\""},
		{"bad background", "c.yaml", "background: white"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "err = %v", err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
	})
}

func TestValidateDPIMatchesRasterBudget(t *testing.T) {
	for _, fig := range []Figure{{}, {Width: 10, Height: 12}, {Width: 60}} {
		for _, dpi := range []float64{72, 150, 300, 350, 400, 600, 1200} {
			cfg := Default()
			cfg.Figure, cfg.DPI = fig, dpi
			w, h := cfg.PageSize()
			_, _, rasterErr := sink.RasterSize(w*72, h*72, dpi)

			err := cfg.Validate()
			if rasterErr != nil {
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "%v at %g dpi: err = %v", fig, dpi, err)
			} else {
				assert.NoError(t, err, "%v at %g dpi", fig, dpi)
			}
		}
	}
}

func TestValidateRejectsOversizedHubPage(t *testing.T) {
	cfg := Default()
	cfg.DPI = 400
	w, h := cfg.PageSize()
	assert.Equal(t, 28.0, w)
	assert.Equal(t, 50.0, h)
	assert.True(t, errors.Is(cfg.Validate(), errors.ErrCodeInvalidConfig))

	cfg.Formats = []string{"svg"}
	assert.NoError(t, cfg.Validate(), "dpi only bounds png output")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Discover(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "seqdiag.yml"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "seqdiag.yml"), Discover(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "seqdiag.toml"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "seqdiag.toml"), Discover(dir))
}
