package filter

import (
	"github.com/swdee/go-schlemmer"
)

// Smooth applies an exponential moving average to the keypoint positions of
// newPoses using previousPoses as the prior state.  Poses are matched by list
// position.  Each keypoint becomes prev*(1-factor) + new*factor, with the
// confidence and name taken from the new pose.  Poses beyond the length of
// previousPoses pass through unchanged, as does the whole list when there is
// no previous state.  The factor is clamped to [0,1] where 0 freezes the
// output and 1 disables smoothing.
//
// The returned slice never shares memory with either argument.
func Smooth(newPoses, previousPoses []schlemmer.Pose, factor float64) []schlemmer.Pose {

	out := schlemmer.ClonePoses(newPoses)

	if len(previousPoses) == 0 {
		return out
	}

	factor = clamp01(factor)

	for i := range out {
		if i >= len(previousPoses) {
			break
		}

		prev := &previousPoses[i]

		for j := range out[i] {
			out[i][j].X = prev[j].X*(1-factor) + out[i][j].X*factor
			out[i][j].Y = prev[j].Y*(1-factor) + out[i][j].Y*factor
		}
	}

	return out
}

// Smoother retains the previous smoothed output between frames so callers
// do not have to.  It is owned by the render loop and is not safe for
// concurrent use.
type Smoother struct {
	previous []schlemmer.Pose
}

// NewSmoother returns a Smoother with no history
func NewSmoother() *Smoother {
	return &Smoother{}
}

// Apply smooths poses against the previous output and records the result as
// the new previous state
func (s *Smoother) Apply(poses []schlemmer.Pose, factor float64) []schlemmer.Pose {

	out := Smooth(poses, s.previous, factor)

	// keep our own copy so the caller mutating out can not alter history
	s.previous = schlemmer.ClonePoses(out)

	return out
}

// Reset forgets the smoothing history so the next call is a cold start
func (s *Smoother) Reset() {
	s.previous = nil
}

// clamp01 restricts val to the range [0,1]
func clamp01(val float64) float64 {
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}
