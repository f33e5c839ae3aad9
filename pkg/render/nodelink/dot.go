package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/seqdiag/pkg/diagram"
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
)

// Options configures overview generation.
type Options struct {
	// Collapse merges messages with the same sender, receiver and kind into
	// a single edge.
	Collapse bool

	// SkipResponses omits response messages.
	SkipResponses bool

	// SkipSelf omits self-messages.
	SkipSelf bool
}

type edgeKey struct {
	from, to string
	response bool
}

type edge struct {
	edgeKey
	labels []string
}

// ToDOT converts participants and messages to Graphviz DOT source. Output is
// deterministic: nodes follow registration order and edges drawing order.
func ToDOT(participants []diagram.Participant, messages []diagram.Message, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  nodesep=0.6;\n")
	buf.WriteString("\n")

	for _, p := range participants {
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID, strings.Join(nodeAttrs(p), ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges(messages, opts) {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.from, e.to, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(p diagram.Participant) []string {
	label := p.Name
	if p.Subtitle != "" {
		label += "\n" + p.Subtitle
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if p.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", string(p.Color)))
	}
	return attrs
}

func edgeAttrs(e edge) []string {
	attrs := []string{fmt.Sprintf("label=%q", strings.Join(e.labels, "\n"))}
	if e.response {
		attrs = append(attrs, "style=dashed", "arrowhead=vee")
	}
	return attrs
}

func edges(messages []diagram.Message, opts Options) []edge {
	var out []edge
	index := map[edgeKey]int{}

	for _, m := range messages {
		if (opts.SkipResponses && m.Response) || (opts.SkipSelf && m.Self) {
			continue
		}
		to := m.To
		if m.Self {
			to = m.From
		}
		key := edgeKey{from: m.From, to: to, response: m.Response}

		if opts.Collapse {
			if i, ok := index[key]; ok {
				out[i].labels = append(out[i].labels, collapsedLabel(m))
				continue
			}
			index[key] = len(out)
			out = append(out, edge{edgeKey: key, labels: []string{collapsedLabel(m)}})
			continue
		}
		out = append(out, edge{edgeKey: key, labels: []string{m.Label()}})
	}
	return out
}

// collapsedLabel keeps merged edges short: the sequence number when there is
// one, the text otherwise.
func collapsedLabel(m diagram.Message) string {
	if m.Number > 0 {
		return strconv.Itoa(m.Number)
	}
	return m.Text
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render overview")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element with one whose viewBox
// starts at the origin, so the SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return sink.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return sink.ToPNG(ctx, svg, scale)
}

// Render dispatches to the renderer for format. JSON is not supported for
// overviews.
func Render(ctx context.Context, dot string, format sink.Format, scale float64) ([]byte, error) {
	switch format {
	case sink.FormatSVG:
		return RenderSVG(ctx, dot)
	case sink.FormatPNG:
		return RenderPNG(ctx, dot, scale)
	case sink.FormatPDF:
		return RenderPDF(ctx, dot)
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "overview: unsupported format %q", format)
	}
}
