// Package nodelink renders the interaction overview of a sequence diagram as
// a node-link graph using Graphviz.
//
// # Overview
//
// Participants become rounded boxes filled with their header colour; every
// message becomes a directed edge. Where the sequence diagram shows order,
// the overview shows who talks to whom at a glance.
//
// # Usage
//
// Convert a finalized diagram to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(d.Participants(), d.Messages(), nodelink.Options{Collapse: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Collapse: merge messages between the same pair into one edge labelled
//     with their sequence numbers
//   - SkipResponses: leave out response edges
//   - SkipSelf: leave out self-message loops
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
