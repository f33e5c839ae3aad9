package diagram

import (
	"math"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// NotePosition places a note relative to its participant's lifeline.
type NotePosition int

const (
	NoteRight NotePosition = iota
	NoteLeft
	NoteOver
)

func (p NotePosition) String() string {
	switch p {
	case NoteLeft:
		return "left"
	case NoteOver:
		return "over"
	default:
		return "right"
	}
}

// NoteOptions controls note placement and appearance.
type NoteOptions struct {
	Position NotePosition
	Fill     scene.Color // defaults to the info note colour
	Width    float64     // logical width; 0 means the default of 15
}

// noteHeight returns the note box height for n lines, unscaled.
func noteHeight(n int) float64 {
	return float64(n)*noteLineHeight + notePadding
}

// AddNote draws a note beside or over a participant's lifeline. Lines are
// left-aligned; emphasised lines are bold and slightly larger.
func (d *Diagram) AddNote(participant string, lines []Line, opts NoteOptions) error {
	if err := d.ensureOpen("add note"); err != nil {
		return err
	}
	x, err := d.ParticipantX(participant)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "add note: no lines")
	}

	width := d.x(defaultNoteW)
	if opts.Width > 0 {
		width = d.x(opts.Width)
	}

	var noteX float64
	switch opts.Position {
	case NoteRight:
		noteX = x + d.x(noteOffset)
	case NoteLeft:
		noteX = x - d.x(noteOffset) - width
	case NoteOver:
		noteX = x - width/2
	default:
		return errors.New(errors.ErrCodeInvalidInput, "add note: unknown position %d", opts.Position)
	}

	d.advance(noteBefore)
	h := d.y(noteHeight(len(lines)))
	d.drawNoteBox(noteX, width, h, d.orDefault(opts.Fill, ColorNoteInfo))

	offset := d.y(noteTextTop)
	for _, l := range lines {
		t := scene.Text{
			X: noteX + d.x(noteTextInset), Y: d.cursor - offset,
			Content: l.Text, Size: noteTextSize,
			Color:  d.color(ColorTextMedium),
			Anchor: scene.AnchorStart, Baseline: scene.BaselineTop,
			Z: zNoteText,
		}
		if l.Emphasized {
			t.Size, t.Bold, t.Color = noteBoldSize, true, d.color(ColorTextDark)
		}
		d.scene.Add(t)
		offset += d.y(noteLineHeight)
	}

	d.cursor -= h + d.y(noteAfter)
	d.logger.Debug("note", "participant", participant, "position", opts.Position, "lines", len(lines))
	d.drew()
	return nil
}

// AddNoteOver draws a note spanning two participants with centred lines.
func (d *Diagram) AddNoteOver(from, to string, lines []Line, fill scene.Color) error {
	if err := d.ensureOpen("add note over"); err != nil {
		return err
	}
	fromX, err := d.ParticipantX(from)
	if err != nil {
		return err
	}
	toX, err := d.ParticipantX(to)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "add note over: no lines")
	}

	width := math.Abs(toX-fromX) + d.x(noteSpanPad)
	noteX := math.Min(fromX, toX) - d.x(noteSpanPad)/2

	d.advance(noteBefore)
	h := d.y(noteHeight(len(lines)))
	d.drawNoteBox(noteX, width, h, d.orDefault(fill, ColorNoteInfo))

	offset := d.y(noteTextTop)
	for _, l := range lines {
		d.scene.Add(scene.Text{
			X: noteX + width/2, Y: d.cursor - offset,
			Content: l.Text, Size: noteBoldSize, Bold: l.Emphasized,
			Color:  d.color(ColorTextDark),
			Anchor: scene.AnchorMiddle, Baseline: scene.BaselineTop,
			Z: zNoteText,
		})
		offset += d.y(noteLineHeight)
	}

	d.cursor -= h + d.y(noteAfter)
	d.logger.Debug("note over", "from", from, "to", to, "lines", len(lines))
	d.drew()
	return nil
}

func (d *Diagram) drawNoteBox(x, w, h float64, fill scene.Color) {
	d.scene.Add(scene.Rect{
		X: x, Y: d.cursor - h, W: w, H: h,
		Radius: d.x(noteRadius),
		Fill:   fill,
		Stroke: d.border(1),
		Z:      zNote,
	})
}
