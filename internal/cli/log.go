package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqdiag/pkg/observability"
)

// newLogger creates a logger writing to w at level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with the elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond,
// e.g. "Rendered 2 files (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// LogHooks reports pipeline and cache events as debug log lines.
type LogHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*LogHooks)(nil)
	_ observability.CacheHooks    = (*LogHooks)(nil)
)

// NewLogHooks returns hooks logging to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

// Register installs h as the process-wide pipeline and cache hooks.
func (h *LogHooks) Register() {
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h *LogHooks) OnBuildStart(_ context.Context, diagram string) {
	h.logger.Debug("build started", "diagram", diagram)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, diagram string, messages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "diagram", diagram, "error", err)
		return
	}
	h.logger.Debug("build finished", "diagram", diagram, "messages", messages, "duration", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render finished", "formats", formats, "duration", d.Round(time.Microsecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
