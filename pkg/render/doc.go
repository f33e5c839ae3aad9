// Package render groups the output stages of seqdiag.
//
// # Overview
//
// A finalized diagram is a scene of positioned primitives. Rendering turns
// that scene, or a graph derived from it, into files:
//
//   - [sink]: the sequence diagram itself as SVG, PNG, PDF or JSON
//   - [nodelink]: the participant interaction overview through Graphviz
//
// # Format Conversion
//
// [sink.ToPDF] and [sink.ToPNG] convert any SVG through the external
// rsvg-convert tool (from librsvg). The diagram's PDF output and the
// overview's PDF and PNG outputs both go through them.
//
//	svg := sink.RenderSVG(d.Scene())
//	pdf, err := sink.ToPDF(ctx, svg)
//
// When rsvg-convert is not installed these return UNSUPPORTED_FORMAT; the
// PNG sink rasterises natively and never needs it.
//
// [sink]: github.com/matzehuels/seqdiag/pkg/render/sink
// [nodelink]: github.com/matzehuels/seqdiag/pkg/render/nodelink
// [sink.ToPDF]: github.com/matzehuels/seqdiag/pkg/render/sink.ToPDF
// [sink.ToPNG]: github.com/matzehuels/seqdiag/pkg/render/sink.ToPNG
package render
