package diagram

import (
	"fmt"

	"github.com/matzehuels/seqdiag/pkg/scene"
)

// MessageStyle selects the line pattern of a message arrow.
type MessageStyle int

const (
	StyleSolid MessageStyle = iota
	StyleDashed
)

// MessageOptions controls how a message is drawn.
type MessageOptions struct {
	Style    MessageStyle
	Response bool // dashed line with an open head
	Self     bool // loop back to the sender regardless of the receiver
	Number   int  // sequence number; 0 means unnumbered
}

// Message records a drawn message, in drawing order.
type Message struct {
	From, To string
	Text     string
	Number   int
	Response bool
	Self     bool
	Y        float64 // arrow y (the loop's top edge for self-messages)
}

// Label returns the message text prefixed with its sequence number.
func (m Message) Label() string {
	return numbered(m.Text, m.Number)
}

func numbered(text string, n int) string {
	if n > 0 {
		return fmt.Sprintf("%d. %s", n, text)
	}
	return text
}

// AddMessage draws a message between two participants.
//
// Both endpoints are resolved even for self-messages, so an unknown receiver
// is always reported. Self-messages (opts.Self or from == to) draw a loop at
// the sender's lifeline and never reference the receiver's position.
func (d *Diagram) AddMessage(from, to, text string, opts MessageOptions) error {
	if err := d.ensureOpen("add message"); err != nil {
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

	d.advance(messageStep)
	self := opts.Self || from == to
	msg := Message{
		From: from, To: to, Text: text, Number: opts.Number,
		Response: opts.Response, Self: self, Y: d.cursor,
	}

	if self {
		d.drawSelfMessage(fromX, msg.Label())
	} else {
		d.drawArrow(fromX, toX, msg.Label(), opts)
	}
	d.advance(messageTrail)

	d.messages = append(d.messages, msg)
	d.logger.Debug("message", "from", from, "to", to, "number", opts.Number, "self", self, "y", msg.Y)
	d.drew()
	return nil
}

func (d *Diagram) drawArrow(fromX, toX float64, label string, opts MessageOptions) {
	y := d.cursor
	stroke := scene.Stroke{Color: d.color(ColorArrow), Width: arrowWidth}
	head := scene.HeadFilled
	if opts.Style == StyleDashed || opts.Response {
		stroke = stroke.Dashed()
	}
	if opts.Response {
		head = scene.HeadOpen
	}

	d.scene.Add(
		scene.Arrow{
			From: scene.Point{X: fromX, Y: y}, To: scene.Point{X: toX, Y: y},
			Stroke: stroke, Head: head, HeadSize: arrowHeadSize,
			Z: zArrow,
		},
		scene.Text{
			X: (fromX + toX) / 2, Y: y + d.y(labelLift),
			Content: label, Size: labelSize,
			Color:  d.color(ColorTextDark),
			Anchor: scene.AnchorMiddle, Baseline: scene.BaselineBottom,
			Plate: &scene.Plate{Fill: d.color(ColorWhite), Opacity: 0.9},
			Z:     zLabel,
		},
	)
}

func (d *Diagram) drawSelfMessage(x float64, label string) {
	top := d.cursor
	right := x + d.x(selfLoopWidth)
	bottom := top - d.y(selfLoopHeight)
	stroke := scene.Stroke{Color: d.color(ColorArrow), Width: arrowWidth}

	d.scene.Add(
		scene.Polyline{
			Points: []scene.Point{{X: x, Y: top}, {X: right, Y: top}, {X: right, Y: bottom}},
			Stroke: stroke,
			Z:      zArrow,
		},
		scene.Arrow{
			From: scene.Point{X: right, Y: bottom}, To: scene.Point{X: x, Y: bottom},
			Stroke: stroke, Head: scene.HeadFilled, HeadSize: arrowHeadSize,
			Z: zArrow,
		},
		scene.Text{
			X: right + d.x(selfLabelGap), Y: top - d.y(selfLoopHeight)/2,
			Content: label, Size: labelSize,
			Color:  d.color(ColorTextDark),
			Anchor: scene.AnchorStart, Baseline: scene.BaselineMiddle,
			Z: zLabel,
		},
	)
	d.cursor = bottom
}

// Messages returns the messages drawn so far, in drawing order.
func (d *Diagram) Messages() []Message {
	out := make([]Message, len(d.messages))
	copy(out, d.messages)
	return out
}
