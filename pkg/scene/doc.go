// Package scene defines the primitive display list produced by the diagram
// engine and consumed by the output sinks.
//
// A [Scene] is an ordered list of [Element] values (rectangles, polylines,
// arrows and text) positioned in a logical coordinate space whose y axis
// points up. Each element carries an explicit layer; sinks draw elements in
// ascending layer order and, within a layer, in insertion order.
//
// The [Frame] maps the logical space onto a page measured in points
// (1/72 inch). Raster sinks multiply by DPI/72 to obtain pixels; vector sinks
// emit points directly.
package scene
