package diagram

import (
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// Finalize closes the diagram with lifelines ending a small margin below the
// cursor. See [Diagram.FinalizeAt].
func (d *Diagram) Finalize() error {
	return d.FinalizeAt(d.cursor - d.y(finalizeGap))
}

// FinalizeAt draws every participant's lifeline from the lifeline start down
// to endY, repeats the participant boxes below it as closing anchors and fixes
// the visible frame to the drawn content. It must be called exactly once, with
// no blocks left open.
func (d *Diagram) FinalizeAt(endY float64) error {
	if err := d.ensureOpen("finalize"); err != nil {
		return err
	}
	if len(d.blocks) > 0 {
		b := d.blocks[len(d.blocks)-1]
		return errors.New(errors.ErrCodeUnclosedBlock, "finalize: %d block(s) still open (innermost %s %q)", len(d.blocks), b.kind, b.label)
	}
	if len(d.participants) > 0 && endY > d.lifelineStart {
		return errors.New(errors.ErrCodeInvalidInput, "finalize: end y %g lies above the lifeline start %g", endY, d.lifelineStart)
	}

	lifeline := scene.Stroke{Color: d.color(ColorLifeline), Width: lifelineWidth}.Dashed()
	boxW, boxH := d.x(participantW), d.y(closingBoxH)
	for _, p := range d.participants {
		d.scene.Add(
			scene.Polyline{
				Points: []scene.Point{{X: p.X, Y: d.lifelineStart}, {X: p.X, Y: endY}},
				Stroke: lifeline,
				Z:      zLifeline,
			},
			scene.Rect{
				X: p.X - boxW/2, Y: endY - boxH, W: boxW, H: boxH,
				Radius: d.x(participantR),
				Fill:   p.BoxColor,
				Stroke: d.border(2),
				Z:      zParticipant,
			},
			scene.Text{
				X: p.X, Y: endY - boxH/2,
				Content: p.Name, Size: 9, Bold: true,
				Color:  d.color(ColorTextDark),
				Anchor: scene.AnchorMiddle, Baseline: scene.BaselineMiddle,
				Z: zParticipantText,
			},
		)
	}

	d.scene.Frame = scene.Frame{
		MinX:   0,
		MaxX:   d.width,
		MinY:   min(endY-boxH, d.cursor) - d.y(frameMargin),
		MaxY:   d.height,
		Width:  d.figWidth * pointsPerInch,
		Height: d.figHeight * pointsPerInch,
	}
	d.cursor = min(d.cursor, endY-boxH)
	d.phase = phaseFinalized
	d.logger.Debug("finalize", "end", endY, "frame_min_y", d.scene.Frame.MinY, "elements", len(d.scene.Elements))
	return nil
}
