package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/seqdiag/pkg/diagram"
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/render/sink"
)

var testParticipants = []diagram.Participant{
	{ID: "region", Name: "Region", Subtitle: "(Producent)", Color: "#86EFAC"},
	{ID: "hubb", Name: "Hubb", Color: "#60A5FA"},
}

var testMessages = []diagram.Message{
	{From: "region", To: "hubb", Text: "Skickar", Number: 1},
	{From: "hubb", To: "hubb", Text: "Bygger", Number: 2, Self: true},
	{From: "hubb", To: "region", Text: "Svar", Number: 3, Response: true},
	{From: "region", To: "hubb", Text: "Igen", Number: 4},
	{From: "hubb", To: "region", Text: "Kvittens", Response: true},
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testParticipants, testMessages, Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`"region" [label="Region\n(Producent)", fillcolor="#86EFAC"];`,
		`"hubb" [label="Hubb", fillcolor="#60A5FA"];`,
		`"region" -> "hubb" [label="1. Skickar"];`,
		`"hubb" -> "hubb" [label="2. Bygger"];`,
		`"hubb" -> "region" [label="3. Svar", style=dashed, arrowhead=vee];`,
		`"hubb" -> "region" [label="Kvittens", style=dashed, arrowhead=vee];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}

	if strings.Index(dot, `"region" [`) > strings.Index(dot, `"hubb" [`) {
		t.Error("nodes not in registration order")
	}
}

func TestToDOTOptions(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantEdges int
		want      []string
		notWant   []string
	}{
		{
			name:      "all",
			wantEdges: 5,
		},
		{
			name:      "collapse",
			opts:      Options{Collapse: true},
			wantEdges: 3,
			want:      []string{`"region" -> "hubb" [label="1\n4"];`, `"hubb" -> "region" [label="3\nKvittens", style=dashed, arrowhead=vee];`},
		},
		{
			name:      "skip responses",
			opts:      Options{SkipResponses: true},
			wantEdges: 3,
			notWant:   []string{"style=dashed"},
		},
		{
			name:      "skip self",
			opts:      Options{SkipSelf: true},
			wantEdges: 4,
			notWant:   []string{`"hubb" -> "hubb"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(testParticipants, testMessages, tt.opts)
			if got := strings.Count(dot, " -> "); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d\n%s", got, tt.wantEdges, dot)
			}
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("DOT missing %q\n%s", w, dot)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(dot, w) {
					t.Errorf("DOT unexpectedly contains %q", w)
				}
			}
		})
	}
}

func TestToDOTDeterministic(t *testing.T) {
	a := ToDOT(testParticipants, testMessages, Options{Collapse: true})
	b := ToDOT(testParticipants, testMessages, Options{Collapse: true})
	if a != b {
		t.Error("ToDOT output differs between runs")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be returned unchanged")
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(context.Background(), "digraph G {}", sink.FormatJSON, 1)
	if !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("err = %v, want UNSUPPORTED_FORMAT", err)
	}
}
