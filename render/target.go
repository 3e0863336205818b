package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Target is a drawing surface accepting strokes in target coordinates
type Target interface {
	// Line strokes a straight line from p0 to p1
	Line(p0, p1 r2.Vec, clr color.RGBA, width float64)
	// Cubic strokes a cubic bezier curve
	Cubic(p0, c0, c1, p3 r2.Vec, clr color.RGBA, width float64)
	// Ellipse strokes an axis aligned ellipse
	Ellipse(center r2.Vec, rx, ry float64, clr color.RGBA, width float64)
}

// Transform maps pose source coordinates onto a target surface
type Transform struct {
	// Offset is added after scaling
	Offset r2.Vec `json:"offset"`
	// Scale multiplies coordinates and stroke widths, 0 is treated as 1
	Scale float64 `json:"scale"`
	// Mirror flips the x axis about the source width before scaling
	Mirror bool `json:"mirror"`
	// SourceWidth is the width of the pose source frame used for mirroring
	SourceWidth float64 `json:"sourceWidth"`
}

// Identity returns a transform that leaves coordinates unchanged
func Identity() Transform {
	return Transform{Scale: 1}
}

// scale returns the effective scale factor
func (t Transform) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// Apply maps a source point into target space
func (t Transform) Apply(v r2.Vec) r2.Vec {

	x := v.X

	if t.Mirror {
		x = t.SourceWidth - x
	}

	s := t.scale()

	return r2.Vec{
		X: x*s + t.Offset.X,
		Y: v.Y*s + t.Offset.Y,
	}
}

// Length maps a source distance into target space
func (t Transform) Length(l float64) float64 {
	s := t.scale()
	if s < 0 {
		s = -s
	}
	return l * s
}
