package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Shape identifies the kind of a recorded draw call
type Shape int

const (
	ShapeLine Shape = iota
	ShapeCubic
	ShapeEllipse
)

// Call is one recorded draw call.  Points holds 2 points for a line, 4 for
// a cubic and the center for an ellipse.
type Call struct {
	Shape  Shape
	Points []r2.Vec
	RX, RY float64
	Color  color.RGBA
	Width  float64
}

// Recorder is a Target that records draw calls instead of rasterizing them,
// used for headless runs and testing
type Recorder struct {
	Calls []Call
}

// Line records a line
func (r *Recorder) Line(p0, p1 r2.Vec, clr color.RGBA, width float64) {
	r.Calls = append(r.Calls, Call{
		Shape:  ShapeLine,
		Points: []r2.Vec{p0, p1},
		Color:  clr,
		Width:  width,
	})
}

// Cubic records a cubic bezier curve
func (r *Recorder) Cubic(p0, c0, c1, p3 r2.Vec, clr color.RGBA, width float64) {
	r.Calls = append(r.Calls, Call{
		Shape:  ShapeCubic,
		Points: []r2.Vec{p0, c0, c1, p3},
		Color:  clr,
		Width:  width,
	})
}

// Ellipse records an ellipse
func (r *Recorder) Ellipse(center r2.Vec, rx, ry float64, clr color.RGBA, width float64) {
	r.Calls = append(r.Calls, Call{
		Shape:  ShapeEllipse,
		Points: []r2.Vec{center},
		RX:     rx,
		RY:     ry,
		Color:  clr,
		Width:  width,
	})
}

// Count returns the number of recorded calls of the given shape
func (r *Recorder) Count(shape Shape) int {
	n := 0
	for _, c := range r.Calls {
		if c.Shape == shape {
			n++
		}
	}
	return n
}

// Reset discards recorded calls
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
