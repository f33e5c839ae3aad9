package sink

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// ParseColor converts a hex scene colour into RGB components.
func ParseColor(c scene.Color) (colorful.Color, error) {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse colour %q", c)
	}
	return col, nil
}
