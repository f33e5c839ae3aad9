package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqdiag/pkg/cache"
	"github.com/matzehuels/seqdiag/pkg/config"
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/hubbflow"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
)

// execute runs the root command with args and returns status output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"render", "overview", "cache", "completion"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("root command missing %q (have %v)", want, names)
		}
	}
}

func TestCompletionCommandWritesScript(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out, "seqdiag") {
				t.Errorf("%s script does not mention seqdiag:\n%.120s", shell, out)
			}
		})
	}

	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestCompleteFormats(t *testing.T) {
	complete := completeFormats(sink.FormatPNG, sink.FormatSVG, sink.FormatPDF, sink.FormatJSON)
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"png", "svg", "pdf", "json"}},
		{"p", []string{"png", "pdf"}},
		{"svg,", []string{"svg,png", "svg,pdf", "svg,json"}},
		{"svg,png,j", []string{"svg,png,json"}},
		{"SVG,s", nil},
	}
	for _, tt := range tests {
		got, directive := complete(nil, nil, tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("completeFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if directive&cobra.ShellCompDirectiveNoFileComp == 0 {
			t.Errorf("completeFormats(%q) should disable file completion", tt.input)
		}
	}
}

func TestOverviewFormatCompletionExcludesJSON(t *testing.T) {
	out, err := execute(t, cobra.ShellCompRequestCmd, "overview", "--format", "")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "json") {
		t.Errorf("overview should not offer json:\n%s", out)
	}
	if !strings.Contains(out, "svg") {
		t.Errorf("overview should offer svg:\n%s", out)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg, png ,pdf", []string{"svg", "png", "pdf"}},
		{",svg,,", []string{"svg"}},
	}

	for _, tt := range tests {
		got := splitList(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []sink.Format
		wantErr bool
	}{
		{"single", "svg", []sink.Format{sink.FormatSVG}, false},
		{"multiple", "png,SVG,pdf", []sink.Format{sink.FormatPNG, sink.FormatSVG, sink.FormatPDF}, false},
		{"json", "json", []sink.Format{sink.FormatJSON}, false},
		{"invalid", "svg,gif", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFormats(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
					t.Errorf("error code = %s, want UNSUPPORTED_FORMAT", errors.GetCode(err))
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRenderFlagsOverrideConfig(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	cmd := c.renderCommand()
	if err := cmd.ParseFlags([]string{"--format", "pdf", "--dpi", "300", "--refresh"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.OutputDir = "from-config"

	var opts renderOpts
	opts.formats = "pdf"
	opts.dpi = 300
	opts.refresh = true
	popts, err := opts.pipelineOptions(cmd, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if popts.OutputDir != "from-config" {
		t.Errorf("OutputDir = %q, unset flag should keep config value", popts.OutputDir)
	}
	if len(popts.Formats) != 1 || popts.Formats[0] != sink.FormatPDF {
		t.Errorf("Formats = %v, want [pdf]", popts.Formats)
	}
	if popts.DPI != 300 {
		t.Errorf("DPI = %g, want 300", popts.DPI)
	}
	if !popts.Refresh {
		t.Error("Refresh should be set")
	}
}

func TestRenderFlagsValidateRasterSize(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		dpi     float64
		formats string
		wantErr bool
	}{
		{"default dpi", nil, 0, "", false},
		{"dpi within budget", []string{"--dpi", "300"}, 300, "", false},
		{"dpi beyond budget", []string{"--dpi", "400"}, 400, "", true},
		{"dpi beyond budget without png", []string{"--dpi", "400", "--format", "svg"}, 400, "svg", false},
		{"zero dpi", []string{"--dpi", "0"}, 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := New(&bytes.Buffer{}, LogInfo).renderCommand()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			opts := renderOpts{dpi: tt.dpi, formats: tt.formats}
			_, err := opts.pipelineOptions(cmd, config.Default())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestRenderCommandRejectsOversizedDPI(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	_, err := execute(t, "render", "--no-cache", "-o", dir, "-f", "png", "--dpi", "400")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Errorf("output dir should not be created, stat err = %v", statErr)
	}
}

func TestRenderCommandWritesFiles(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "render", "--no-cache", "-o", dir, "-f", "svg,json", "--name", "hub")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, name := range []string{"hub.svg", "hub.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if !strings.Contains(out, "32 messages") {
		t.Errorf("status output should report message count:\n%s", out)
	}
	if !strings.Contains(out, filepath.Join(dir, "hub.svg")) {
		t.Errorf("status output should list written files:\n%s", out)
	}
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	_, err := execute(t, "render", "--no-cache", "-o", t.TempDir(), "-f", "gif")
	if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("err = %v, want UNSUPPORTED_FORMAT", err)
	}
}

func TestRenderCommandMissingConfig(t *testing.T) {
	_, err := execute(t, "render", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestOverviewCommandDOT(t *testing.T) {
	out, err := execute(t, "overview", "--dot", "--collapse")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if !strings.HasPrefix(out, "digraph") {
		t.Errorf("--dot should print DOT source, got:\n%.80s", out)
	}
	if !strings.Contains(out, hubbflow.Hubb) {
		t.Errorf("DOT source should contain participant %q", hubbflow.Hubb)
	}
}

func TestOverviewCommandWritesSVG(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "overview", "-o", dir, "--name", "hub"); err != nil {
		t.Fatalf("overview: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "hub"+pipeline.OverviewSuffix+".svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("overview file should be SVG")
	}
}

func TestOverviewCommandRejectsJSON(t *testing.T) {
	_, err := execute(t, "overview", "-o", t.TempDir(), "-f", "json")
	if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("err = %v, want UNSUPPORTED_FORMAT", err)
	}
}

func TestCacheKeysScopedByVersion(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	opts := pipeline.Options{Formats: []sink.Format{sink.FormatSVG}}

	run := func(version string) pipeline.CacheInfo {
		t.Helper()
		result, err := pipeline.NewRunner(fc, newKeyer(version), nil).Execute(ctx, opts)
		if err != nil {
			t.Fatalf("execute as %s: %v", version, err)
		}
		return result.CacheInfo
	}

	if got := run("v1.0.0"); got.Misses != 1 {
		t.Errorf("first run = %+v, want one miss", got)
	}
	if got := run("v1.0.0"); got.Hits != 1 || got.Misses != 0 {
		t.Errorf("same version = %+v, want one hit", got)
	}
	if got := run("v1.1.0"); got.Hits != 0 || got.Misses != 1 {
		t.Errorf("new version = %+v, want a miss", got)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b"} {
		if err := fc.Set(ctx, k, []byte(k), cache.DefaultTTL); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	c := New(&bytes.Buffer{}, LogInfo)
	c.Out = &out
	cmd := c.cacheClearCommand()
	cmd.SetContext(ctx)
	if err := c.clearCache(cmd, dir); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cleared 2 cached entries") {
		t.Errorf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := c.clearCache(cmd, filepath.Join(dir, "absent")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cache is empty") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestArtifactRows(t *testing.T) {
	opts := pipeline.Options{
		OutputDir:       "out",
		BaseName:        "hub",
		Formats:         []sink.Format{sink.FormatSVG},
		Overview:        true,
		OverviewFormats: []sink.Format{sink.FormatSVG},
	}
	result := &pipeline.Result{
		Artifacts: map[sink.Format][]byte{sink.FormatSVG: make([]byte, 2048)},
		Overview:  map[sink.Format][]byte{sink.FormatSVG: make([]byte, 10)},
	}

	rows := artifactRows(opts, result)
	want := [][]string{
		{"diagram", "svg", "2.0 KiB", filepath.Join("out", "hub.svg")},
		{"overview", "svg", "10 B", filepath.Join("out", "hub-overview.svg")},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	for i := range want {
		if strings.Join(rows[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
