package diagram

import (
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// ParticipantSpec describes a participant to register.
type ParticipantSpec struct {
	ID       string
	Name     string
	Subtitle string
	Color    scene.Color // header box fill
	BoxColor scene.Color // closing anchor fill; defaults to Color
}

// Participant is a registered participant with its fixed lifeline position.
type Participant struct {
	ID       string
	Name     string
	Subtitle string
	X        float64
	Color    scene.Color
	BoxColor scene.Color
}

// RegisterParticipants assigns evenly spaced x positions in registration
// order and draws a header box for each participant.
//
// Participants are placed at margin + spacing*(i+1) with
// spacing = usableWidth/(n+1). The whole list is validated before anything
// is drawn, so a duplicate ID leaves the diagram unchanged.
func (d *Diagram) RegisterParticipants(specs ...ParticipantSpec) error {
	if d.phase != phaseRegistering {
		if d.phase == phaseFinalized {
			return errors.New(errors.ErrCodeFinalized, "register participants: diagram already finalized")
		}
		return errors.New(errors.ErrCodeInvalidInput, "register participants: participants must be registered before drawing content")
	}
	if len(specs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "register participants: at least one participant required")
	}

	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if err := errors.ValidateParticipantID(s.ID); err != nil {
			return err
		}
		if seen[s.ID] {
			return errors.New(errors.ErrCodeDuplicateParticipant, "participant %q registered twice", s.ID)
		}
		seen[s.ID] = true
	}

	spacing := d.x(usableWidth) / float64(len(specs)+1)
	for i, s := range specs {
		box := s.BoxColor
		if box == scene.None {
			box = s.Color
		}
		p := Participant{
			ID:       s.ID,
			Name:     s.Name,
			Subtitle: s.Subtitle,
			X:        d.x(sideMargin) + spacing*float64(i+1),
			Color:    d.orDefault(s.Color, ColorWhite),
			BoxColor: d.orDefault(box, ColorWhite),
		}
		d.index[p.ID] = len(d.participants)
		d.participants = append(d.participants, p)
		d.drawParticipantHeader(p)
		d.logger.Debug("participant", "id", p.ID, "x", p.X)
	}

	d.advance(participantH + participantGap)
	d.lifelineStart = d.cursor - d.y(lifelineGap)
	d.phase = phaseDrawing
	return nil
}

func (d *Diagram) drawParticipantHeader(p Participant) {
	top := d.cursor
	d.scene.Add(
		scene.Rect{
			X: p.X - d.x(participantW)/2, Y: top - d.y(participantH),
			W: d.x(participantW), H: d.y(participantH),
			Radius: d.x(participantR),
			Fill:   p.Color,
			Stroke: d.border(2),
			Z:      zParticipant,
		},
		scene.Text{
			X: p.X, Y: top - d.y(1.2),
			Content: p.Name, Size: 10, Bold: true,
			Color:  d.color(ColorTextDark),
			Anchor: scene.AnchorMiddle, Baseline: scene.BaselineMiddle,
			Z: zParticipantText,
		},
		scene.Text{
			X: p.X, Y: top - d.y(2.8),
			Content: p.Subtitle, Size: 8,
			Color:  d.color(ColorTextMedium),
			Anchor: scene.AnchorMiddle, Baseline: scene.BaselineMiddle,
			Z: zParticipantText,
		},
	)
}

// ParticipantX returns the x position assigned to id at registration.
func (d *Diagram) ParticipantX(id string) (float64, error) {
	i, ok := d.index[id]
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownParticipant, "participant %q not registered", id)
	}
	return d.participants[i].X, nil
}

// Participants returns the registered participants in registration order.
func (d *Diagram) Participants() []Participant {
	out := make([]Participant, len(d.participants))
	copy(out, d.participants)
	return out
}

// LifelineStart returns the y coordinate where lifelines begin.
func (d *Diagram) LifelineStart() float64 { return d.lifelineStart }
