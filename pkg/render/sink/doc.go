// Package sink provides output format renderers for finalized diagram scenes.
//
// # Overview
//
// A "sink" transforms a [scene.Scene] into bytes in one output format:
//
//   - SVG: hand-written vector output, byte-for-byte deterministic
//   - PNG: raster output drawn with fogleman/gg at a configurable DPI
//   - PDF: print-ready output (SVG converted by rsvg-convert)
//   - JSON: scene dump for external tools and regression tests
//
// Basic usage:
//
//	svg := sink.RenderSVG(sc)
//	png, err := sink.RenderPNG(sc, sink.WithDPI(150))
//
// or through the format dispatcher used by the diagram engine:
//
//	data, err := sink.Render(ctx, sc, sink.FormatPNG, sink.DefaultOptions())
//
// # Coordinates
//
// Scenes are laid out in logical units with y pointing up. Every sink maps
// them through [scene.Frame.ToPage] into points (y down); the PNG sink then
// scales by DPI/72. Stroke widths, dash lengths and font sizes are already in
// points.
//
// # PDF Output
//
// [RenderPDF] requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package sink
