package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqdiag/pkg/config"
	"github.com/matzehuels/seqdiag/pkg/diagram"
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
	"github.com/matzehuels/seqdiag/pkg/render/nodelink"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
)

// overviewOpts holds the command-line flags for the overview command.
type overviewOpts struct {
	config        string
	output        string
	name          string
	formats       string
	collapse      bool
	skipResponses bool
	skipSelf      bool
	dot           bool // print the DOT source instead of rendering
}

// overviewCommand creates the overview command. It renders the participant
// interaction graph (participants as nodes, numbered messages as edges)
// through Graphviz without rasterising the sequence diagram itself.
func (c *CLI) overviewCommand() *cobra.Command {
	var opts overviewOpts

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Render the participant interaction overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			return c.runOverview(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default: seqdiag.toml/.yaml in the working directory)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutputDir, "output directory")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "output file base name (default: regiongemensam-hubb-sekvens)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.collapse, "collapse", false, "merge messages between the same participants into one edge")
	cmd.Flags().BoolVar(&opts.skipResponses, "skip-responses", false, "omit response messages")
	cmd.Flags().BoolVar(&opts.skipSelf, "skip-self", false, "omit self-messages")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "print the Graphviz DOT source to stdout")
	registerCompletions(cmd, sink.FormatSVG, sink.FormatPNG, sink.FormatPDF)

	return cmd
}

func (c *CLI) runOverview(cmd *cobra.Command, cfg config.Config, opts overviewOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	flags := cmd.Flags()

	popts := pipeline.FromConfig(cfg)
	popts.Logger = logger
	popts.BaseName = opts.name
	popts.Overview = true
	if flags.Changed("output") {
		popts.OutputDir = opts.output
	}
	if flags.Changed("format") {
		formats, err := parseFormats(opts.formats)
		if err != nil {
			return err
		}
		popts.OverviewFormats = formats
	}
	if flags.Changed("collapse") {
		popts.OverviewOptions.Collapse = opts.collapse
	}
	if flags.Changed("skip-responses") {
		popts.OverviewOptions.SkipResponses = opts.skipResponses
	}
	popts.OverviewOptions.SkipSelf = opts.skipSelf
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, logger)
	prog := newProgress(logger)
	d, err := runner.Build(ctx, popts)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	dot := nodelink.ToDOT(d.Participants(), d.Messages(), popts.OverviewOptions)
	if opts.dot {
		fmt.Fprint(c.Out, dot)
		return nil
	}

	if popts.OutputDir == "" {
		return errors.New(errors.ErrCodeInvalidPath, "output directory cannot be empty")
	}
	files, err := writeOverview(ctx, dot, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered overview in %d formats", len(files)))

	printSuccess(c.Out, "Rendered overview of %s", StyleHighlight.Render(popts.BaseName))
	printStats(c.Out, len(d.Participants()), len(d.Messages()), false)
	for _, f := range files {
		printFile(c.Out, f)
	}
	return nil
}

// writeOverview renders dot in every overview format and writes the files.
func writeOverview(ctx context.Context, dot string, opts pipeline.Options) ([]string, error) {
	scale := opts.DPI / 72
	var files []string
	for _, format := range opts.OverviewFormats {
		data, err := nodelink.Render(ctx, dot, format, scale)
		if err != nil {
			return files, fmt.Errorf("%s: %w", format, err)
		}
		path := pipeline.OverviewPath(opts.OutputDir, opts.BaseName, format)
		if err := diagram.WriteFile(path, data); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}
