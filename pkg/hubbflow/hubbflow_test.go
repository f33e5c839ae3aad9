package hubbflow

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/seqdiag/pkg/diagram"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

func TestBuild(t *testing.T) {
	d, err := Build()
	require.NoError(t, err)
	assert.True(t, d.Finalized())
	assert.Equal(t, 0, d.OpenBlocks())
	assert.Equal(t, Title, d.Scene().Title)

	var ids []string
	for _, p := range d.Participants() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{Region, Hubb, SPE, SoS, Extern}, ids)

	f := d.Scene().Frame
	assert.InDelta(t, FigureWidth*72, f.Width, 1e-9)
	assert.InDelta(t, FigureHeight*72, f.Height, 1e-9)
}

func TestBuildMessages(t *testing.T) {
	d, err := Build()
	require.NoError(t, err)

	msgs := d.Messages()
	require.Len(t, msgs, 32)

	var numbers []int
	unnumbered := 0
	for _, m := range msgs {
		if m.Number == 0 {
			unnumbered++
			assert.True(t, m.Response, "unnumbered message %q should be an acknowledgement", m.Text)
			continue
		}
		numbers = append(numbers, m.Number)
	}
	assert.Equal(t, 2, unnumbered)
	require.Len(t, numbers, 30)
	for i, n := range numbers {
		assert.Equal(t, i+1, n)
	}

	for i := 1; i < len(msgs); i++ {
		assert.Less(t, msgs[i].Y, msgs[i-1].Y, "message %d not below its predecessor", i)
	}

	self := map[int]bool{}
	for _, m := range msgs {
		if m.Self {
			self[m.Number] = true
			assert.Equal(t, m.From, m.To)
		}
	}
	assert.Equal(t, map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true,
		11: true, 19: true, 24: true, 27: true}, self)
}

func TestBuildBlocks(t *testing.T) {
	d, err := Build()
	require.NoError(t, err)

	var tags []string
	for _, e := range d.Scene().Elements {
		if txt, ok := e.(scene.Text); ok && txt.Bold && txt.Color == d.Palette().Color(diagram.ColorWhite) {
			tags = append(tags, txt.Content)
		}
	}
	// Inner blocks close first.
	assert.Equal(t, []string{"LOOP", "GROUP", "PAR", "CRITICAL", "CRITICAL", "ALT"}, tags)

	var dividers []string
	for _, e := range d.Scene().Elements {
		if txt, ok := e.(scene.Text); ok && txt.Italic && len(txt.Content) > 0 && txt.Content[0] == '[' {
			dividers = append(dividers, txt.Content)
		}
	}
	assert.Equal(t, []string{
		"[Spår B: Distribution till externa (blind relay)]",
		"[Alt B: Extern initierar federerad fråga (via policy-gate)]",
	}, dividers)
}

func TestBuildPaletteOverride(t *testing.T) {
	d, err := Build(diagram.WithPalette(diagram.Palette{diagram.ColorHubbParticipant: "#000000"}))
	require.NoError(t, err)

	for _, p := range d.Participants() {
		if p.ID == Hubb {
			assert.Equal(t, scene.Color("#000000"), p.Color)
			assert.Equal(t, diagram.DefaultPalette()[diagram.ColorHubbBox], p.BoxColor)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	ctx := context.Background()
	for _, format := range []sink.Format{sink.FormatSVG, sink.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			a, err := Build()
			require.NoError(t, err)
			b, err := Build()
			require.NoError(t, err)

			outA, err := a.Render(ctx, format)
			require.NoError(t, err)
			outB, err := b.Render(ctx, format)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(outA, outB), "%s output differs between builds", format)
		})
	}
}

func TestScriptStopsAtFirstError(t *testing.T) {
	s := &script{d: diagram.New(), pal: diagram.DefaultPalette()}
	s.participants()
	s.msg(Region, "nobody", 1, "lost")
	s.msg(Region, Hubb, 2, "never drawn")

	require.Error(t, s.err)
	assert.Contains(t, s.err.Error(), "message 1")
	assert.Empty(t, s.d.Messages())
}
