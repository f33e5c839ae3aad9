// Package diagram implements an incremental sequence-diagram layout engine.
//
// A [Diagram] owns a vertical write cursor over a fixed logical canvas
// (0–100 on both axes by default, y pointing up), a registry of participants
// with fixed horizontal positions and a stack of open blocks. Each drawing
// operation reads the cursor, appends primitives to a [scene.Scene] and
// lowers the cursor, so later elements are always placed below earlier ones.
//
// # Lifecycle
//
//	d := diagram.New(diagram.WithFigureSize(28, 50))
//	d.AddTitle("Title", "subtitle")
//	d.RegisterParticipants(
//	    diagram.ParticipantSpec{ID: "a", Name: "Alice"},
//	    diagram.ParticipantSpec{ID: "b", Name: "Bob"},
//	)
//	d.AddMessage("a", "b", "hello", diagram.MessageOptions{Number: 1})
//	d.Finalize()
//	d.Export("out/hello.svg")
//
// Operations run in three phases: registering participants, drawing content,
// finalized. Drawing after [Diagram.Finalize] fails with FINALIZED_DIAGRAM;
// exporting before it fails with NOT_FINALIZED.
//
// # Blocks
//
// [Diagram.StartBlock] pushes a block context and [Diagram.EndBlock] pops it,
// so blocks nest to any depth. The block background is emitted when the block
// closes, spanning everything drawn since it opened.
//
// A Diagram is not safe for concurrent use, but independent diagrams share no
// state and may be built in parallel.
package diagram
