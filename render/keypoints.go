package render

import (
	"github.com/swdee/go-schlemmer"
)

// PoseKeyPoints renders a dot at every confident keypoint of every pose,
// used as a calibration aid when aligning the projection with the camera
func PoseKeyPoints(target Target, tf Transform, poses []schlemmer.Pose,
	radius float64) {

	r := tf.Length(radius)

	for i := range poses {
		for j, kp := range poses[i] {
			if !kp.Valid() {
				continue
			}

			// a filled dot is a ring as wide as its radius
			target.Ellipse(tf.Apply(kp.Vec()), r/2, r/2, keyPointColors[j], r)
		}
	}
}
