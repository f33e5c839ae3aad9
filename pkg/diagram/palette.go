package diagram

import (
	"maps"

	"github.com/matzehuels/seqdiag/pkg/scene"
)

// Palette maps colour names to hex colours. A Palette is treated as
// immutable once handed to [New]; the engine keeps its own copy.
type Palette map[string]scene.Color

// Palette entry names used by the engine and the hub script.
const (
	ColorRegionBox         = "region_box"
	ColorRegionParticipant = "region_participant"
	ColorHubbBox           = "hubb_box"
	ColorHubbParticipant   = "hubb_participant"
	ColorSPEBox            = "spe_box"
	ColorSPEParticipant    = "spe_participant"
	ColorExternalBox       = "externa_box"
	ColorSoSParticipant    = "sos_participant"
	ColorExternParticipant = "extern_participant"

	ColorNoteInfo    = "note_info"
	ColorNoteWarning = "note_warning"
	ColorNoteDanger  = "note_danger"
	ColorNoteSuccess = "note_success"
	ColorNotePurple  = "note_purple"

	ColorSectionHeader = "section_header"
	ColorSectionBorder = "section_border"
	ColorSectionText   = "section_text"
	ColorLoopBG        = "loop_bg"
	ColorAltBG         = "alt_bg"
	ColorParBG         = "par_bg"
	ColorCriticalBG    = "critical_bg"
	ColorGroupBG       = "group_bg"
	ColorBlockBG       = "block_bg"
	ColorLegendBG      = "legend_bg"

	ColorArrow      = "arrow"
	ColorLifeline   = "lifeline"
	ColorTextDark   = "text_dark"
	ColorTextMedium = "text_medium"
	ColorBorder     = "border"
	ColorWhite      = "white"
)

var defaultPalette = Palette{
	ColorRegionBox:         "#C7F9CC",
	ColorRegionParticipant: "#86EFAC",
	ColorHubbBox:           "#BFDBFE",
	ColorHubbParticipant:   "#60A5FA",
	ColorSPEBox:            "#DDD6FE",
	ColorSPEParticipant:    "#A78BFA",
	ColorExternalBox:       "#FED7AA",
	ColorSoSParticipant:    "#FB923C",
	ColorExternParticipant: "#F97316",

	ColorNoteInfo:    "#E0F2FE",
	ColorNoteWarning: "#FEF3C7",
	ColorNoteDanger:  "#FEE2E2",
	ColorNoteSuccess: "#DCFCE7",
	ColorNotePurple:  "#F3E8FF",

	ColorSectionHeader: "#E0E7FF",
	ColorSectionBorder: "#4F46E5",
	ColorSectionText:   "#3730A3",
	ColorLoopBG:        "#F0FDF4",
	ColorAltBG:         "#FEF9C3",
	ColorParBG:         "#EFF6FF",
	ColorCriticalBG:    "#FEF2F2",
	ColorGroupBG:       "#F3F4F6",
	ColorBlockBG:       "#F9FAFB",
	ColorLegendBG:      "#F9FAFB",

	ColorArrow:      "#1E3A5F",
	ColorLifeline:   "#94A3B8",
	ColorTextDark:   "#1F2937",
	ColorTextMedium: "#4B5563",
	ColorBorder:     "#374151",
	ColorWhite:      "#FFFFFF",
}

// DefaultPalette returns a copy of the built-in palette.
func DefaultPalette() Palette {
	return maps.Clone(defaultPalette)
}

// Merge returns a copy of p with the entries of overrides applied on top.
func (p Palette) Merge(overrides Palette) Palette {
	out := maps.Clone(p)
	if out == nil {
		out = Palette{}
	}
	maps.Copy(out, overrides)
	return out
}

// Color returns the colour registered under name, falling back to the
// built-in palette.
func (p Palette) Color(name string) scene.Color {
	if c, ok := p[name]; ok {
		return c
	}
	return defaultPalette[name]
}

// blockTints maps each block kind to its palette entry.
var blockTints = map[BlockKind]string{
	BlockLoop:     ColorLoopBG,
	BlockAlt:      ColorAltBG,
	BlockPar:      ColorParBG,
	BlockCritical: ColorCriticalBG,
	BlockGroup:    ColorGroupBG,
}

// tint returns the background colour for kind, or the generic block colour
// for kinds outside the table.
func (p Palette) tint(kind BlockKind) scene.Color {
	if name, ok := blockTints[kind]; ok {
		return p.Color(name)
	}
	return p.Color(ColorBlockBG)
}
