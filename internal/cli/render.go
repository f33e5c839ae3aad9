package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqdiag/pkg/config"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
// Flags that were set explicitly override the config file.
type renderOpts struct {
	config   string  // config file path; discovered in the working directory when empty
	output   string  // output directory
	name     string  // file base name without extension
	formats  string  // comma-separated output formats
	dpi      float64 // raster resolution for PNG output
	noCache  bool    // disable the artifact cache
	refresh  bool    // ignore cached artifacts but store fresh ones
	overview bool    // also render the interaction overview
}

// renderCommand creates the render command for generating the diagram files.
//
// Default settings:
//   - output: exports/go
//   - formats: png, svg
//   - dpi: 150
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the hub sequence diagram to PNG/SVG/PDF/JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			popts, err := opts.pipelineOptions(cmd, cfg)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), popts, opts.noCache || !cfg.CacheEnabled())
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default: seqdiag.toml/.yaml in the working directory)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutputDir, "output directory")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "output file base name (default: regiongemensam-hubb-sekvens)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png, svg (default), pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", sink.DefaultDPI, "raster resolution for PNG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached artifacts exist")
	cmd.Flags().BoolVar(&opts.overview, "overview", false, "also render the participant interaction overview")
	registerCompletions(cmd, sink.FormatPNG, sink.FormatSVG, sink.FormatPDF, sink.FormatJSON)

	return cmd
}

// pipelineOptions merges the config file with explicitly set flags. Format
// and dpi flags are validated together with the config so a flag cannot
// bypass the raster size check.
func (o *renderOpts) pipelineOptions(cmd *cobra.Command, cfg config.Config) (pipeline.Options, error) {
	flags := cmd.Flags()

	if flags.Changed("format") {
		formats, err := parseFormats(o.formats)
		if err != nil {
			return pipeline.Options{}, err
		}
		if len(formats) > 0 {
			cfg.Formats = make([]string, len(formats))
			for i, f := range formats {
				cfg.Formats[i] = string(f)
			}
		}
	}
	if flags.Changed("dpi") {
		cfg.DPI = o.dpi
	}
	if err := cfg.Validate(); err != nil {
		return pipeline.Options{}, err
	}

	popts := pipeline.FromConfig(cfg)
	if flags.Changed("output") {
		popts.OutputDir = o.output
	}
	popts.BaseName = o.name
	popts.Refresh = o.refresh
	popts.Overview = o.overview
	return popts, nil
}

// parseFormats parses a comma-separated format list. Unlike config files,
// flags reject unknown formats instead of skipping them.
func parseFormats(s string) ([]sink.Format, error) {
	var formats []sink.Format
	for _, name := range splitList(s) {
		f, err := sink.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// runRender executes the pipeline and reports the written files.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	runner.Logger = logger
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, os.Stderr, "Rendering diagram...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d files", len(result.Files)))

	printSuccess(c.Out, "Rendered %s", StyleHighlight.Render(opts.BaseName))
	printStats(c.Out, result.Stats.Participants, result.Stats.Messages, result.CacheInfo.Hits > 0 && result.CacheInfo.Misses == 0)
	printArtifacts(c.Out, opts, result)
	return nil
}
