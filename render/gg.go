package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

// GGTarget rasterizes draw calls with anti-aliased strokes onto an in memory
// RGBA canvas
type GGTarget struct {
	dc *gg.Context
}

// NewGGTarget returns a canvas of the given size cleared to black
func NewGGTarget(width, height int) *GGTarget {
	t := &GGTarget{dc: gg.NewContext(width, height)}
	t.Clear(Black)
	return t
}

// Clear fills the whole canvas with clr
func (t *GGTarget) Clear(clr color.RGBA) {
	t.dc.SetColor(clr)
	t.dc.Clear()
}

// Image returns the canvas image
func (t *GGTarget) Image() image.Image {
	return t.dc.Image()
}

// SavePNG writes the canvas to a PNG file
func (t *GGTarget) SavePNG(path string) error {
	return t.dc.SavePNG(path)
}

// stroke configures the pen for the current path
func (t *GGTarget) stroke(clr color.RGBA, width float64) {
	t.dc.SetColor(clr)
	t.dc.SetLineWidth(width)
	t.dc.SetLineCapRound()
	t.dc.Stroke()
}

// Line strokes a straight line
func (t *GGTarget) Line(p0, p1 r2.Vec, clr color.RGBA, width float64) {
	t.dc.NewSubPath()
	t.dc.MoveTo(p0.X, p0.Y)
	t.dc.LineTo(p1.X, p1.Y)
	t.stroke(clr, width)
}

// Cubic strokes a cubic bezier curve
func (t *GGTarget) Cubic(p0, c0, c1, p3 r2.Vec, clr color.RGBA, width float64) {
	t.dc.NewSubPath()
	t.dc.MoveTo(p0.X, p0.Y)
	t.dc.CubicTo(c0.X, c0.Y, c1.X, c1.Y, p3.X, p3.Y)
	t.stroke(clr, width)
}

// Ellipse strokes an axis aligned ellipse
func (t *GGTarget) Ellipse(center r2.Vec, rx, ry float64, clr color.RGBA, width float64) {
	t.dc.NewSubPath()
	t.dc.DrawEllipse(center.X, center.Y, rx, ry)
	t.stroke(clr, width)
}
