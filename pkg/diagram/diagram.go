package diagram

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

const (
	// DefaultCanvasSize is the logical width and height of the canvas.
	DefaultCanvasSize = 100.0

	// DefaultFigureWidth and DefaultFigureHeight are the page size in inches.
	DefaultFigureWidth  = 24.0
	DefaultFigureHeight = 40.0

	pointsPerInch = 72.0
)

// Drawing layers, lowest first.
const (
	zLifeline        = 10
	zBlock           = 20
	zBlockTag        = 30
	zBlockText       = 40
	zSection         = 50
	zSectionText     = 60
	zNote            = 70
	zNoteText        = 80
	zArrow           = 80
	zLabel           = 90
	zParticipant     = 100
	zParticipantText = 110
)

// maxBlockLayers is the number of nesting depths that get their own layer.
// Deeper block backgrounds share the topmost one so they stay below tags.
const maxBlockLayers = zBlockTag - zBlock - 1

func blockLayer(depth int) int { return zBlock + min(depth, maxBlockLayers) }

// Option configures a [Diagram].
type Option func(*Diagram)

// WithCanvas sets the logical canvas size. All layout constants are
// expressed for a 100×100 canvas and scale with it.
func WithCanvas(width, height float64) Option {
	return func(d *Diagram) {
		if width > 0 {
			d.width = width
		}
		if height > 0 {
			d.height = height
		}
	}
}

// WithFigureSize sets the output page size in inches.
func WithFigureSize(width, height float64) Option {
	return func(d *Diagram) {
		if width > 0 {
			d.figWidth = width
		}
		if height > 0 {
			d.figHeight = height
		}
	}
}

// WithLogger routes per-operation debug logging to l.
func WithLogger(l *log.Logger) Option {
	return func(d *Diagram) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithPalette overrides entries of the built-in palette.
func WithPalette(p Palette) Option {
	return func(d *Diagram) { d.palette = d.palette.Merge(p) }
}

type phase int

const (
	phaseRegistering phase = iota
	phaseDrawing
	phaseFinalized
)

func (p phase) String() string {
	switch p {
	case phaseRegistering:
		return "registering"
	case phaseDrawing:
		return "drawing"
	default:
		return "finalized"
	}
}

// Diagram is the layout engine state: cursor, participants, open blocks and
// the scene being built.
type Diagram struct {
	width, height       float64
	figWidth, figHeight float64
	palette             Palette
	logger              *log.Logger

	cursor        float64
	phase         phase
	participants  []Participant
	index         map[string]int
	lifelineStart float64
	blocks        []openBlock
	messages      []Message
	scene         scene.Scene
}

// New creates an empty diagram with the cursor at the top of the canvas.
func New(opts ...Option) *Diagram {
	d := &Diagram{
		width:     DefaultCanvasSize,
		height:    DefaultCanvasSize,
		figWidth:  DefaultFigureWidth,
		figHeight: DefaultFigureHeight,
		palette:   DefaultPalette(),
		logger:    log.New(io.Discard),
		index:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.cursor = d.y(startY)
	return d
}

// Cursor returns the current vertical write position.
func (d *Diagram) Cursor() float64 { return d.cursor }

// Width returns the logical canvas width.
func (d *Diagram) Width() float64 { return d.width }

// Height returns the logical canvas height.
func (d *Diagram) Height() float64 { return d.height }

// Finalized reports whether [Diagram.Finalize] has run.
func (d *Diagram) Finalized() bool { return d.phase == phaseFinalized }

// Scene returns the scene built so far. Its frame is only valid after
// finalization. The returned value must not be modified.
func (d *Diagram) Scene() *scene.Scene { return &d.scene }

// Palette returns the colours in effect.
func (d *Diagram) Palette() Palette { return d.palette }

// x scales a horizontal layout constant to the canvas width.
func (d *Diagram) x(v float64) float64 { return v * d.width / DefaultCanvasSize }

// y scales a vertical layout constant to the canvas height.
func (d *Diagram) y(v float64) float64 { return v * d.height / DefaultCanvasSize }

// advance lowers the cursor by a layout constant.
func (d *Diagram) advance(v float64) { d.cursor -= d.y(v) }

// ensureOpen rejects any operation on a finalized diagram.
func (d *Diagram) ensureOpen(op string) error {
	if d.phase == phaseFinalized {
		return errors.New(errors.ErrCodeFinalized, "%s: diagram already finalized", op)
	}
	return nil
}

// drew closes the registration phase once a content operation has succeeded.
// Failed operations leave the phase unchanged.
func (d *Diagram) drew() { d.phase = phaseDrawing }

func (d *Diagram) color(name string) scene.Color { return d.palette.Color(name) }

// orDefault returns c unless it is empty, in which case the named palette
// entry is used.
func (d *Diagram) orDefault(c scene.Color, name string) scene.Color {
	if c != scene.None {
		return c
	}
	return d.color(name)
}

func (d *Diagram) border(width float64) *scene.Stroke {
	return &scene.Stroke{Color: d.color(ColorBorder), Width: width}
}
