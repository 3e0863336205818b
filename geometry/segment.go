package geometry

import (
	"math"

	"github.com/swdee/go-schlemmer"
	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is a stick line in pose source coordinates
type Segment struct {
	Start r2.Vec
	End   r2.Vec
}

// Midpoint returns the point halfway along the segment
func (s Segment) Midpoint() r2.Vec {
	return r2.Scale(0.5, r2.Add(s.Start, s.End))
}

// Length returns the length of the segment
func (s Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.End, s.Start))
}

// Stick is a resolved Segment along with the index of the connection in the
// table it was resolved from
type Stick struct {
	Connection int
	Segment
}

// ResolveSticks maps the pose onto stick segments using the connection table
// and base length.  Connections with an absent keypoint or with coincident
// keypoints are skipped.  Sticks are returned in table order and nothing is
// returned when the base length is not calibrated.
func ResolveSticks(pose schlemmer.Pose, connections []schlemmer.Connection,
	baseLength float64) []Stick {

	if baseLength <= 0 || math.IsNaN(baseLength) || math.IsInf(baseLength, 0) {
		return nil
	}

	sticks := make([]Stick, 0, len(connections))

	for i, conn := range connections {

		if !validIndex(conn.Lower) || !validIndex(conn.Upper) {
			continue
		}

		lower := pose[conn.Lower]
		upper := pose[conn.Upper]

		if !lower.Valid() || !upper.Valid() {
			continue
		}

		dir := r2.Sub(upper.Vec(), lower.Vec())
		dist := r2.Norm(dir)

		if dist == 0 {
			// direction undefined
			continue
		}

		unit := r2.Scale(1/dist, dir)
		length := baseLength * conn.LengthRatio

		var seg Segment

		if conn.Centered {
			mid := r2.Scale(0.5, r2.Add(lower.Vec(), upper.Vec()))
			half := r2.Scale(length/2, unit)

			seg = Segment{
				Start: r2.Sub(mid, half),
				End:   r2.Add(mid, half),
			}

		} else {
			seg = Segment{
				Start: lower.Vec(),
				End:   r2.Add(lower.Vec(), r2.Scale(length, unit)),
			}
		}

		sticks = append(sticks, Stick{Connection: i, Segment: seg})
	}

	return sticks
}

// Resolve is ResolveSticks without the connection indexes
func Resolve(pose schlemmer.Pose, connections []schlemmer.Connection,
	baseLength float64) []Segment {

	return Segments(ResolveSticks(pose, connections, baseLength))
}

// Segments strips the connection indexes from a list of sticks
func Segments(sticks []Stick) []Segment {
	segs := make([]Segment, len(sticks))

	for i, s := range sticks {
		segs[i] = s.Segment
	}

	return segs
}

// validIndex checks the keypoint index is within the pose
func validIndex(idx int) bool {
	return idx >= 0 && idx < schlemmer.KeyPointsTotal
}
