package render

import (
	"image/color"

	"github.com/swdee/go-schlemmer/trail"
)

// TrailStyle defines the parameters used for rendering the trail style
type TrailStyle struct {
	// LineSame defines if the trail segments take the palette color of the
	// connection they were captured from, matching the live sticks.  If set
	// to false then use the color specified at LineColor
	LineSame  bool
	LineColor color.RGBA
	// LineWidth is the stroke width of a freshly captured segment, it thins
	// out linearly with the fade factor
	LineWidth float64
}

// DefaultTrailStyle returns default trail style settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineSame:  false,
		LineColor: White,
		LineWidth: 2,
	}
}

// Trail draws faded trail segments, dimming color and thinning the stroke
// by each segment's fade factor
func Trail(target Target, tf Transform, trails []trail.Faded, palette Palette,
	style TrailStyle) {

	for _, f := range trails {

		if f.Fade <= 0 {
			continue
		}

		clr := style.LineColor

		if style.LineSame {
			clr = palette.At(f.Connection)
		}

		target.Line(tf.Apply(f.Start), tf.Apply(f.End), Fade(clr, f.Fade),
			tf.Length(style.LineWidth*f.Fade))
	}
}
