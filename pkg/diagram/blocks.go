package diagram

import (
	"fmt"
	"strings"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// BlockKind is the control structure a block denotes. It is rendered
// upper-cased in the block's tag.
type BlockKind string

const (
	BlockLoop     BlockKind = "loop"
	BlockAlt      BlockKind = "alt"
	BlockPar      BlockKind = "par"
	BlockCritical BlockKind = "critical"
	BlockGroup    BlockKind = "group"
)

type openBlock struct {
	kind   BlockKind
	label  string
	tint   scene.Color
	startY float64
}

// StartBlock opens a block. The background is drawn by the matching
// [Diagram.EndBlock]. An empty tint uses the kind's colour from the palette.
func (d *Diagram) StartBlock(kind BlockKind, label string, tint scene.Color) error {
	if err := d.ensureOpen("start block"); err != nil {
		return err
	}
	if kind == "" {
		return errors.New(errors.ErrCodeInvalidInput, "start block: empty kind")
	}
	if tint == scene.None {
		tint = d.palette.tint(kind)
	}

	d.advance(blockBefore)
	d.blocks = append(d.blocks, openBlock{kind: kind, label: label, tint: tint, startY: d.cursor})
	d.logger.Debug("start block", "kind", kind, "depth", len(d.blocks), "y", d.cursor)
	d.drew()
	return nil
}

// EndBlock closes the innermost open block and draws its background, tag and
// label over everything drawn since it was opened.
func (d *Diagram) EndBlock() error {
	if err := d.ensureOpen("end block"); err != nil {
		return err
	}
	if len(d.blocks) == 0 {
		return errors.New(errors.ErrCodeNoOpenBlock, "end block: no open block")
	}

	b := d.blocks[len(d.blocks)-1]
	if content := b.startY - d.cursor; content <= 0 {
		return errors.New(errors.ErrCodeDegenerateBlock, "end block: %s block %q has no content (height %g)", b.kind, b.label, content)
	}
	d.blocks = d.blocks[:len(d.blocks)-1]
	depth := len(d.blocks)

	bottom := d.cursor - d.y(blockAfter)
	left, right := d.x(blockLeft), d.x(blockRight)
	tagY := b.startY - d.y(blockTagH)/2

	d.scene.Add(
		scene.Rect{
			X: left, Y: bottom, W: right - left, H: b.startY - bottom,
			Radius:  d.x(blockRadius),
			Fill:    b.tint,
			Opacity: blockOpacity,
			Stroke:  d.border(1.5),
			Z:       blockLayer(depth),
		},
		scene.Rect{
			X: left, Y: b.startY - d.y(blockTagH),
			W: d.x(blockTagW), H: d.y(blockTagH),
			Radius: d.x(sectionRadius),
			Fill:   d.color(ColorBorder),
			Stroke: d.border(1),
			Z:      zBlockTag,
		},
		scene.Text{
			X: d.x(blockTagX), Y: tagY,
			Content: strings.ToUpper(string(b.kind)), Size: blockTextSize, Bold: true,
			Color:  d.color(ColorWhite),
			Anchor: scene.AnchorMiddle, Baseline: scene.BaselineMiddle,
			Z: zBlockText,
		},
		scene.Text{
			X: d.x(blockLabelX), Y: tagY,
			Content: b.label, Size: blockTextSize,
			Color:  d.color(ColorTextDark),
			Anchor: scene.AnchorStart, Baseline: scene.BaselineMiddle,
			Z: zBlockText,
		},
	)

	d.cursor = bottom
	d.logger.Debug("end block", "kind", b.kind, "top", b.startY, "bottom", bottom)
	d.drew()
	return nil
}

// AddElseDivider draws a dashed separator with a bracketed label inside the
// current block. It neither opens nor closes a block.
func (d *Diagram) AddElseDivider(label string) error {
	if err := d.ensureOpen("add else divider"); err != nil {
		return err
	}

	y := d.cursor
	d.scene.Add(
		scene.Polyline{
			Points: []scene.Point{{X: d.x(blockLeft), Y: y}, {X: d.x(blockRight), Y: y}},
			Stroke: d.border(1).Dashed(),
			Z:      zBlockTag,
		},
		scene.Text{
			X: d.x(blockTagX), Y: y + d.y(elseLabelLift),
			Content: fmt.Sprintf("[%s]", label), Size: blockTextSize, Italic: true,
			Color:  d.color(ColorTextMedium),
			Anchor: scene.AnchorStart, Baseline: scene.BaselineBottom,
			Z: zBlockText,
		},
	)
	d.advance(elseAfter)
	d.drew()
	return nil
}

// OpenBlocks returns the number of blocks still open.
func (d *Diagram) OpenBlocks() int { return len(d.blocks) }
