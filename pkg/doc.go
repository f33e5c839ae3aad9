// Package pkg provides the libraries behind seqdiag, a renderer for the
// "Regiongemensam hubb" sequence diagram.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [scene] and [diagram] - the layout engine: a write cursor over a
//     logical canvas emitting positioned primitives
//  2. [hubbflow] - the fixed hub narrative replayed into the engine
//  3. [render] - sinks (SVG, PNG, PDF, JSON) and the Graphviz overview
//  4. [pipeline] and [cache] - orchestration (build → render → write) with
//     content-addressed artifact caching
//  5. [config], [errors], [observability], [buildinfo] - ambient support
//
// # Architecture
//
// Data flows one way:
//
//	hubbflow script
//	      ↓
//	  [diagram] engine (cursor, participants, block stack)
//	      ↓
//	  [scene] primitives + frame
//	      ↓
//	  render/sink bytes ──→ files
//
// # Quick Start
//
//	d, err := hubbflow.Build()
//	if err != nil {
//	    return err
//	}
//	if err := d.Export("exports/go/hub.png", diagram.WithDPI(150)); err != nil {
//	    return err
//	}
//
// Or run the whole pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{OutputDir: "exports/go"})
package pkg
