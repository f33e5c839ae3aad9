package sink

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/scene"
)

// sceneNamespace scopes scene IDs derived from titles.
var sceneNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/seqdiag/scene"))

// SceneID returns a stable identifier for a scene, derived from its title.
func SceneID(sc *scene.Scene) string {
	return uuid.NewSHA1(sceneNamespace, []byte(sc.Title)).String()
}

type jsonOutput struct {
	ID       string        `json:"id"`
	Title    string        `json:"title,omitempty"`
	Frame    jsonFrame     `json:"frame"`
	Elements []jsonElement `json:"elements"`
}

type jsonFrame struct {
	MinX   float64 `json:"min_x"`
	MaxX   float64 `json:"max_x"`
	MinY   float64 `json:"min_y"`
	MaxY   float64 `json:"max_y"`
	Width  float64 `json:"width_pt"`
	Height float64 `json:"height_pt"`
}

type jsonElement struct {
	Kind    string        `json:"kind"`
	Layer   int           `json:"layer"`
	X       float64       `json:"x,omitempty"`
	Y       float64       `json:"y,omitempty"`
	Width   float64       `json:"width,omitempty"`
	Height  float64       `json:"height,omitempty"`
	Radius  float64       `json:"radius,omitempty"`
	Fill    scene.Color   `json:"fill,omitempty"`
	Opacity float64       `json:"opacity,omitempty"`
	Stroke  *scene.Stroke `json:"stroke,omitempty"`
	Points  []scene.Point `json:"points,omitempty"`
	Head    string        `json:"head,omitempty"`
	Text    string        `json:"text,omitempty"`
	Size    float64       `json:"size,omitempty"`
	Bold    bool          `json:"bold,omitempty"`
	Italic  bool          `json:"italic,omitempty"`
	Color   scene.Color   `json:"color,omitempty"`
}

// RenderJSON exports the scene as a pretty-printed JSON document listing
// elements in drawing order. The output is deterministic.
func RenderJSON(sc *scene.Scene) ([]byte, error) {
	out := jsonOutput{
		ID:    SceneID(sc),
		Title: sc.Title,
		Frame: jsonFrame{
			MinX: sc.Frame.MinX, MaxX: sc.Frame.MaxX,
			MinY: sc.Frame.MinY, MaxY: sc.Frame.MaxY,
			Width: sc.Frame.Width, Height: sc.Frame.Height,
		},
		Elements: make([]jsonElement, 0, len(sc.Elements)),
	}

	for _, e := range sc.Sorted() {
		el := jsonElement{Layer: e.Layer()}
		switch v := e.(type) {
		case scene.Rect:
			el.Kind = "rect"
			el.X, el.Y, el.Width, el.Height = v.X, v.Y, v.W, v.H
			el.Radius, el.Fill, el.Opacity, el.Stroke = v.Radius, v.Fill, v.Opacity, v.Stroke
		case scene.Polyline:
			el.Kind = "polyline"
			el.Points = v.Points
			s := v.Stroke
			el.Stroke = &s
		case scene.Arrow:
			el.Kind = "arrow"
			el.Points = []scene.Point{v.From, v.To}
			el.Head = v.Head.String()
			s := v.Stroke
			el.Stroke = &s
		case scene.Text:
			el.Kind = "text"
			el.X, el.Y = v.X, v.Y
			el.Text, el.Size, el.Bold, el.Italic, el.Color = v.Content, v.Size, v.Bold, v.Italic, v.Color
		default:
			return nil, errors.New(errors.ErrCodeInternal, "json: unknown element %T", e)
		}
		out.Elements = append(out.Elements, el)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return append(data, '\n'), nil
}
