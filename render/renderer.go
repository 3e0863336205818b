package render

import (
	"image/color"

	"github.com/swdee/go-schlemmer"
	"github.com/swdee/go-schlemmer/geometry"
	"github.com/swdee/go-schlemmer/spring"
	"github.com/swdee/go-schlemmer/trail"
)

// Figure is the drawable geometry of one pose stream
type Figure struct {
	// ID is the identity of the pose stream
	ID int
	// Sticks are the target segments resolved from the pose
	Sticks []geometry.Stick
	// Curves are the sprung curves, empty when springs are disabled
	Curves []spring.Curve
	// Head is the head ellipse when HasHead is set
	Head    geometry.Ellipse
	HasHead bool
	// Pose is the smoothed and filtered pose the figure was built from
	Pose schlemmer.Pose
}

// Scene is everything drawn on one frame
type Scene struct {
	Figures []Figure
	Trails  []trail.Faded
}

// Empty returns true if the scene has nothing to draw
func (s *Scene) Empty() bool {
	return len(s.Figures) == 0 && len(s.Trails) == 0
}

// Style defines the rendering parameters of the overlays
type Style struct {
	// StrokeWidth is the width of sticks and curves in source units
	StrokeWidth float64
	// HeadColor is the stroke color of the head ellipse
	HeadColor color.RGBA
	// KeyPointRadius draws keypoint dots when greater than zero
	KeyPointRadius float64
	Trail          TrailStyle
}

// DefaultStyle returns default style settings
func DefaultStyle() Style {
	return Style{
		StrokeWidth: 4,
		HeadColor:   White,
		Trail:       DefaultTrailStyle(),
	}
}

// Renderer draws scenes onto targets
type Renderer struct {
	Style   Style
	Palette Palette
}

// NewRenderer returns a renderer coloring connections from palette
func NewRenderer(style Style, palette Palette) *Renderer {
	return &Renderer{Style: style, Palette: palette}
}

// Draw renders the scene onto the target.  Trails are drawn first so the
// live figures sit on top of them.  A figure with curves is drawn with its
// curves, otherwise with its straight sticks.
func (r *Renderer) Draw(target Target, tf Transform, scene *Scene) {

	if scene == nil || scene.Empty() {
		return
	}

	Trail(target, tf, scene.Trails, r.Palette, r.Style.Trail)

	width := tf.Length(r.Style.StrokeWidth)

	for i := range scene.Figures {
		fig := &scene.Figures[i]

		if len(fig.Curves) > 0 {
			for _, c := range fig.Curves {
				clr := r.Palette.At(c.Connection)

				for _, b := range c.Parts {
					target.Cubic(tf.Apply(b.P0), tf.Apply(b.C0), tf.Apply(b.C1),
						tf.Apply(b.P3), clr, width)
				}
			}

		} else {
			for _, s := range fig.Sticks {
				target.Line(tf.Apply(s.Start), tf.Apply(s.End),
					r.Palette.At(s.Connection), width)
			}
		}

		if fig.HasHead {
			target.Ellipse(tf.Apply(fig.Head.Center), tf.Length(fig.Head.RadiusX),
				tf.Length(fig.Head.RadiusY), r.Style.HeadColor, width)
		}
	}

	if r.Style.KeyPointRadius > 0 {
		poses := make([]schlemmer.Pose, len(scene.Figures))

		for i := range scene.Figures {
			poses[i] = scene.Figures[i].Pose
		}

		PoseKeyPoints(target, tf, poses, r.Style.KeyPointRadius)
	}
}
