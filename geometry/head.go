package geometry

import (
	"github.com/swdee/go-schlemmer"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// headRadiusX and headRadiusY size the head ellipse as a fraction of
	// the base length
	headRadiusX = 0.055
	headRadiusY = 0.07
)

// Ellipse is an axis aligned ellipse in pose source coordinates
type Ellipse struct {
	Center  r2.Vec
	RadiusX float64
	RadiusY float64
}

// Head returns the head ellipse of the pose centered on the nose.  When both
// ears are confident the head is centered between them instead.  False is
// returned when uncalibrated or the head is not visible.
func Head(pose schlemmer.Pose, baseLength float64) (Ellipse, bool) {

	if baseLength <= 0 {
		return Ellipse{}, false
	}

	nose := pose[schlemmer.Nose]
	left := pose[schlemmer.LeftEar]
	right := pose[schlemmer.RightEar]

	var center r2.Vec

	switch {
	case left.Valid() && right.Valid():
		center = r2.Scale(0.5, r2.Add(left.Vec(), right.Vec()))
	case nose.Valid():
		center = nose.Vec()
	default:
		return Ellipse{}, false
	}

	return Ellipse{
		Center:  center,
		RadiusX: baseLength * headRadiusX,
		RadiusY: baseLength * headRadiusY,
	}, true
}
