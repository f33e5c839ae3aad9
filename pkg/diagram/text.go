package diagram

// Line is one line of note or legend text. Emphasis is chosen by the caller;
// the engine never inspects the text for markup.
type Line struct {
	Text       string
	Emphasized bool
}

// Plain returns a regular-weight line.
func Plain(text string) Line { return Line{Text: text} }

// Emphasized returns a bold line.
func Emphasized(text string) Line { return Line{Text: text, Emphasized: true} }

// Blank returns an empty line that still occupies a vertical slot.
func Blank() Line { return Line{} }

// PlainLines wraps each string as a [Plain] line.
func PlainLines(texts ...string) []Line {
	out := make([]Line, len(texts))
	for i, t := range texts {
		out[i] = Plain(t)
	}
	return out
}
