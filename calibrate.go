package schlemmer

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultCalibrationScale is the multiplier applied to the nose to ankle
// distance when deriving the base length
const DefaultCalibrationScale = 1.0

// BaseLength derives the stick base length from a calibration pose as the
// distance from the nose to the midpoint of the ankles, multiplied by scale.
// If only one ankle is confident it is used on its own.  False is returned
// when the pose cannot be used for calibration.
func BaseLength(p Pose, scale float64) (float64, bool) {

	nose := p[Nose]

	if !nose.Valid() {
		return 0, false
	}

	left := p[LeftAnkle]
	right := p[RightAnkle]

	var foot r2.Vec

	switch {
	case left.Valid() && right.Valid():
		foot = r2.Scale(0.5, r2.Add(left.Vec(), right.Vec()))
	case left.Valid():
		foot = left.Vec()
	case right.Valid():
		foot = right.Vec()
	default:
		return 0, false
	}

	length := r2.Norm(r2.Sub(foot, nose.Vec())) * scale

	if length <= 0 {
		return 0, false
	}

	return length, true
}

// Calibrate returns the base length of the first pose in the list that can
// be used for calibration
func Calibrate(poses []Pose, scale float64) (float64, bool) {

	for _, p := range poses {
		if length, ok := BaseLength(p, scale); ok {
			return length, true
		}
	}

	return 0, false
}
