// Package hubbflow builds the sequence diagram for the shared regional hub
// ("Regiongemensam hubb"): how regions produce standardised data, how the hub
// benchmarks and relays encrypted deliveries, and how federated queries run
// through the secure processing environment (SPE).
//
// The narrative is fixed. [Build] replays it against a fresh
// [diagram.Diagram] and returns the finalized result, ready for export:
//
//	d, err := hubbflow.Build(diagram.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	err = d.Export(filepath.Join(dir, hubbflow.BaseName+".svg"))
package hubbflow

import (
	"fmt"

	"github.com/matzehuels/seqdiag/pkg/diagram"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

const (
	// BaseName is the file name, without extension, of the exported diagram.
	BaseName = "regiongemensam-hubb-sekvens"

	// FigureWidth and FigureHeight are the page size in inches.
	FigureWidth  = 28.0
	FigureHeight = 50.0

	// Title and Subtitle head the diagram.
	Title    = "Regiongemensam hubb – flöde, federering och distribution"
	Subtitle = "(detaljnivå)"
)

// Participant IDs, in lifeline order.
const (
	Region = "region"
	Hubb   = "hubb"
	SPE    = "spe"
	SoS    = "sos"
	Extern = "extern"
)

// Build draws the complete hub workflow and finalizes the diagram. Options
// are applied after the default figure size, so callers may override it.
func Build(opts ...diagram.Option) (*diagram.Diagram, error) {
	d := diagram.New(append([]diagram.Option{diagram.WithFigureSize(FigureWidth, FigureHeight)}, opts...)...)
	s := &script{d: d, pal: d.Palette()}

	s.title()
	s.participants()
	s.introduction()
	s.standardPackage()
	s.baseData()
	s.selections()
	s.pushTracks()
	s.federation()
	s.externalSummary()

	s.run("spacer", func() error { return d.AddSpacer(2) })
	s.run("finalize", d.Finalize)
	if s.err != nil {
		return nil, s.err
	}
	return d, nil
}

// script wraps the engine with a sticky error so the narrative reads as a
// flat call sequence. The first failure stops all further drawing.
type script struct {
	d   *diagram.Diagram
	pal diagram.Palette
	err error
}

func (s *script) run(op string, fn func() error) {
	if s.err != nil {
		return
	}
	if err := fn(); err != nil {
		s.err = fmt.Errorf("hubbflow %s: %w", op, err)
	}
}

func (s *script) color(name string) scene.Color { return s.pal.Color(name) }

// msg draws a numbered request.
func (s *script) msg(from, to string, n int, text string) {
	s.run(fmt.Sprintf("message %d", n), func() error {
		return s.d.AddMessage(from, to, text, diagram.MessageOptions{Number: n})
	})
}

// reply draws a response; n may be 0 for unnumbered acknowledgements.
func (s *script) reply(from, to string, n int, text string) {
	s.run(fmt.Sprintf("response %d", n), func() error {
		return s.d.AddMessage(from, to, text, diagram.MessageOptions{Number: n, Response: true})
	})
}

// self draws a numbered self-message on p's lifeline.
func (s *script) self(p string, n int, text string) {
	s.run(fmt.Sprintf("self message %d", n), func() error {
		return s.d.AddMessage(p, p, text, diagram.MessageOptions{Number: n, Self: true})
	})
}

func (s *script) section(title string) {
	s.run("section", func() error { return s.d.AddSection(title, scene.None) })
}

func (s *script) note(p string, pos diagram.NotePosition, fill string, width float64, lines ...diagram.Line) {
	s.run("note "+p, func() error {
		return s.d.AddNote(p, lines, diagram.NoteOptions{Position: pos, Fill: s.color(fill), Width: width})
	})
}

func (s *script) noteOver(from, to, fill string, lines ...diagram.Line) {
	s.run("note over "+from+"/"+to, func() error {
		return s.d.AddNoteOver(from, to, lines, s.color(fill))
	})
}

// block opens a block, runs body and closes it.
func (s *script) block(kind diagram.BlockKind, label string, body func()) {
	s.run("start "+string(kind), func() error { return s.d.StartBlock(kind, label, scene.None) })
	body()
	s.run("end "+string(kind), s.d.EndBlock)
}

func (s *script) otherwise(label string) {
	s.run("else divider", func() error { return s.d.AddElseDivider(label) })
}
