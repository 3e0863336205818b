package render

import (
	"image"
	"image/color"
	"math"

	"github.com/swdee/go-schlemmer/spring"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
)

// curveSteps is the number of line pieces a cubic is flattened into when
// drawn with GoCV, which has no native bezier support
const curveSteps = 24

// MatTarget draws onto a GoCV Mat such as a camera frame or a projector
// output window buffer.  Drawing onto an empty Mat does nothing.
type MatTarget struct {
	img  *gocv.Mat
	font Font
}

// NewMatTarget returns a target drawing onto img
func NewMatTarget(img *gocv.Mat) *MatTarget {
	return &MatTarget{img: img, font: DefaultFont()}
}

// Clear fills the whole Mat with clr
func (t *MatTarget) Clear(clr color.RGBA) {
	t.img.SetTo(gocv.NewScalar(float64(clr.B), float64(clr.G), float64(clr.R),
		float64(clr.A)))
}

// thickness converts a stroke width to a GoCV integer thickness of at least
// one pixel
func thickness(width float64) int {
	th := int(math.Round(width))
	if th < 1 {
		th = 1
	}
	return th
}

// pt converts a vector to an image point
func pt(v r2.Vec) image.Point {
	return image.Pt(int(math.Round(v.X)), int(math.Round(v.Y)))
}

// Line strokes a straight line
func (t *MatTarget) Line(p0, p1 r2.Vec, clr color.RGBA, width float64) {
	if t.img.Empty() {
		return
	}
	gocv.Line(t.img, pt(p0), pt(p1), clr, thickness(width))
}

// Cubic strokes a cubic bezier curve as a polyline
func (t *MatTarget) Cubic(p0, c0, c1, p3 r2.Vec, clr color.RGBA, width float64) {

	if t.img.Empty() {
		return
	}

	b := spring.Bezier{P0: p0, C0: c0, C1: c1, P3: p3}
	points := make([]image.Point, 0, curveSteps+1)

	for i := 0; i <= curveSteps; i++ {
		points = append(points, pt(b.Eval(float64(i)/curveSteps)))
	}

	pv := gocv.NewPointVectorFromPoints(points)
	defer pv.Close()

	ptsVec := gocv.NewPointsVector()
	defer ptsVec.Close()

	ptsVec.Append(pv)

	gocv.Polylines(t.img, ptsVec, false, clr, thickness(width))
}

// Ellipse strokes an axis aligned ellipse
func (t *MatTarget) Ellipse(center r2.Vec, rx, ry float64, clr color.RGBA, width float64) {
	if t.img.Empty() {
		return
	}
	axes := image.Pt(int(math.Round(rx)), int(math.Round(ry)))
	gocv.Ellipse(t.img, pt(center), axes, 0, 0, 360, clr, thickness(width))
}

// Status writes lines of status text in the top left corner of the Mat
func (t *MatTarget) Status(lines []string) {

	if t.img.Empty() {
		return
	}

	y := t.font.TopPad

	for _, line := range lines {
		size := gocv.GetTextSize(line, t.font.Face, t.font.Scale, t.font.Thickness)
		y += size.Y + t.font.BottomPad

		gocv.PutTextWithParams(t.img, line, image.Pt(t.font.LeftPad, y),
			t.font.Face, t.font.Scale, t.font.Color, t.font.Thickness,
			t.font.LineType, false)
	}
}
