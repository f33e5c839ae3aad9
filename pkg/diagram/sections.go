package diagram

import (
	"fmt"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// AddTitle draws a centred title, and an italic subtitle when non-empty,
// at fixed positions near the top of the canvas.
func (d *Diagram) AddTitle(title, subtitle string) error {
	if err := d.ensureOpen("add title"); err != nil {
		return err
	}

	d.scene.Title = title
	d.scene.Add(scene.Text{
		X: d.x(centerX), Y: d.y(titleY),
		Content: title, Size: titleSize, Bold: true,
		Color:  d.color(ColorTextDark),
		Anchor: scene.AnchorMiddle, Baseline: scene.BaselineTop,
		Z: zSectionText,
	})
	if subtitle != "" {
		d.scene.Add(scene.Text{
			X: d.x(centerX), Y: d.y(subtitleY),
			Content: subtitle, Size: subtitleSize, Italic: true,
			Color:  d.color(ColorTextMedium),
			Anchor: scene.AnchorMiddle, Baseline: scene.BaselineTop,
			Z: zSectionText,
		})
	}
	d.cursor = min(d.cursor, d.y(afterTitleY))
	d.logger.Debug("title", "text", title)
	return nil
}

// AddSection draws a full-width banner with a centred bold label.
// An empty fill uses the palette's section header colour.
func (d *Diagram) AddSection(title string, fill scene.Color) error {
	if err := d.ensureOpen("add section"); err != nil {
		return err
	}

	d.advance(sectionBefore)
	d.scene.Add(
		scene.Rect{
			X: d.x(sectionLeft), Y: d.cursor - d.y(sectionDrop),
			W: d.x(sectionWidth), H: d.y(sectionHeight),
			Radius: d.x(sectionRadius),
			Fill:   d.orDefault(fill, ColorSectionHeader),
			Stroke: &scene.Stroke{Color: d.color(ColorSectionBorder), Width: 1.5},
			Z:      zSection,
		},
		scene.Text{
			X: d.x(centerX), Y: d.cursor - d.y(0.5),
			Content: title, Size: sectionSize, Bold: true,
			Color:  d.color(ColorSectionText),
			Anchor: scene.AnchorMiddle, Baseline: scene.BaselineMiddle,
			Z: zSectionText,
		},
	)
	d.advance(sectionAfter)
	d.logger.Debug("section", "title", title, "cursor", d.cursor)
	d.drew()
	return nil
}

// LegendEntry is one row of a legend. Heading rows render their title in
// bold on its own; other rows render as "• title: description".
type LegendEntry struct {
	Title       string
	Description string
	Heading     bool
}

// LegendHeading returns a bold heading row.
func LegendHeading(title string) LegendEntry {
	return LegendEntry{Title: title, Heading: true}
}

// LegendItem returns a regular "title: description" row.
func LegendItem(title, description string) LegendEntry {
	return LegendEntry{Title: title, Description: description}
}

// AddLegend draws a boxed legend at the left edge of the canvas.
func (d *Diagram) AddLegend(entries ...LegendEntry) error {
	if err := d.ensureOpen("add legend"); err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "add legend: no entries")
	}

	d.advance(legendBefore)
	h := d.y(float64(len(entries))*legendLineH + notePadding)
	d.scene.Add(scene.Rect{
		X: d.x(legendLeft), Y: d.cursor - h,
		W: d.x(legendWidth), H: h,
		Radius: d.x(participantR),
		Fill:   d.color(ColorLegendBG),
		Stroke: d.border(1),
		Z:      zNote,
	})

	offset := d.y(legendTextTop)
	for _, e := range entries {
		t := scene.Text{
			X: d.x(legendTextX), Y: d.cursor - offset,
			Anchor: scene.AnchorStart, Baseline: scene.BaselineTop,
			Z: zNoteText,
		}
		if e.Heading {
			t.Content, t.Size, t.Bold, t.Color = e.Title, legendHeadSize, true, d.color(ColorTextDark)
		} else {
			t.Content, t.Size, t.Color = fmt.Sprintf("• %s: %s", e.Title, e.Description), labelSize, d.color(ColorTextMedium)
		}
		d.scene.Add(t)
		offset += d.y(legendLineH)
	}

	d.cursor -= h + d.y(legendAfter)
	d.logger.Debug("legend", "entries", len(entries), "cursor", d.cursor)
	d.drew()
	return nil
}

// AddSpacer lowers the cursor without drawing anything.
func (d *Diagram) AddSpacer(height float64) error {
	if err := d.ensureOpen("add spacer"); err != nil {
		return err
	}
	if height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "add spacer: negative height %g", height)
	}
	d.advance(height)
	d.drew()
	return nil
}
