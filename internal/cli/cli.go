// Package cli implements the seqdiag command-line interface.
//
// This package provides commands for rendering the hub sequence diagram,
// rendering its participant interaction overview and managing the artifact
// cache. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate PNG, SVG, PDF or JSON output of the diagram
//   - overview: Generate the interaction graph of the diagram's participants
//   - cache: Manage the rendered artifact cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqdiag/pkg/buildinfo"
	"github.com/matzehuels/seqdiag/pkg/cache"
	"github.com/matzehuels/seqdiag/pkg/config"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "seqdiag"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives status output; stderr carries logs.
	Out io.Writer
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Seqdiag renders the regional hub sequence diagram",
		Long:         `Seqdiag renders the "Regiongemensam hubb" data-sharing workflow as a static sequence diagram (PNG, SVG, PDF) together with an optional participant interaction overview.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.overviewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, newKeyer(buildinfo.Version), c.Logger), nil
}

// newKeyer scopes cache keys to a program version so artifacts rendered by
// one release are never served to another.
func newKeyer(version string) cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), version+":")
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the per-user cache directory (~/.cache/seqdiag/ on Linux).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadConfig loads path, or the config file discovered in the working
// directory when path is empty. No file at all yields the defaults.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = config.Discover(".")
	}
	return config.Load(path)
}

// splitList parses a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
