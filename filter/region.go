package filter

import (
	"fmt"
	"math"

	clipper "github.com/ctessum/go.clipper"
	"github.com/swdee/go-schlemmer"
	"gonum.org/v1/gonum/spatial/r2"
)

// Rule selects the denominator used by the quarter threshold of the region
// filter
type Rule int

const (
	// QuarterOfAll keeps a pose when at least a quarter of all 17 keypoints
	// are confident and inside the region
	QuarterOfAll Rule = iota
	// QuarterOfConfident keeps a pose when at least a quarter of its
	// confident keypoints are inside the region
	QuarterOfConfident
)

// String returns the rule name
func (r Rule) String() string {
	switch r {
	case QuarterOfAll:
		return "quarter-of-all"
	case QuarterOfConfident:
		return "quarter-of-confident"
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// ParseRule converts a rule name back to a Rule
func ParseRule(s string) (Rule, error) {
	switch s {
	case "", "quarter-of-all":
		return QuarterOfAll, nil
	case "quarter-of-confident":
		return QuarterOfConfident, nil
	}
	return QuarterOfAll, fmt.Errorf("unknown region rule %q", s)
}

// MarshalText encodes the rule by name
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a rule name
func (r *Rule) UnmarshalText(text []byte) error {
	v, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// offsetPrecision is the fixed point scale used when converting region
// coordinates to clipper's integer space
const offsetPrecision = 1000.0

// Region is a polygon in keypoint coordinate space.  The polygon is closed
// implicitly between the last and first vertex.
type Region []r2.Vec

// Contains reports whether pt lies inside the polygon using the even-odd
// rule with a ray cast towards +x.  Edges are treated as half open in y so a
// ray passing through a vertex is only counted once.
func (r Region) Contains(pt r2.Vec) bool {

	inside := false
	n := len(r)

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := r[i]
		b := r[j]

		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			// x coordinate where the edge crosses the ray's y
			crossX := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X

			if pt.X < crossX {
				inside = !inside
			}
		}
	}

	return inside
}

// Offset returns a copy of the region grown by distance, or shrunk when the
// distance is negative, with rounded corners.  An empty Region is returned
// if shrinking collapses the polygon or the region has fewer than 3 points.
func (r Region) Offset(distance float64) Region {

	if len(r) < 3 {
		return Region{}
	}

	if distance == 0 {
		out := make(Region, len(r))
		copy(out, r)
		return out
	}

	var path clipper.Path

	for _, pt := range r {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(math.Round(pt.X * offsetPrecision)),
			Y: clipper.CInt(math.Round(pt.Y * offsetPrecision)),
		})
	}

	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtRound, clipper.EtClosedPolygon)

	solution := co.Execute(distance * offsetPrecision)

	// keep the largest resulting polygon, shrinking a concave mask can
	// split it into pieces
	var best clipper.Path

	for _, sol := range solution {
		if len(sol) > len(best) {
			best = sol
		}
	}

	if len(best) < 3 {
		return Region{}
	}

	out := make(Region, 0, len(best))

	for _, pt := range best {
		out = append(out, r2.Vec{
			X: float64(pt.X) / offsetPrecision,
			Y: float64(pt.Y) / offsetPrecision,
		})
	}

	return out
}

// insideCount returns the number of confident keypoints of the pose that are
// inside the region, along with the number of confident keypoints
func (r Region) insideCount(p *schlemmer.Pose) (inside, confident int) {

	for _, kp := range p {
		if !kp.Valid() {
			continue
		}

		confident++

		if r.Contains(kp.Vec()) {
			inside++
		}
	}

	return inside, confident
}

// Accepts reports whether the pose passes the region threshold under rule
func (r Region) Accepts(p *schlemmer.Pose, rule Rule) bool {

	inside, confident := r.insideCount(p)

	denominator := float64(schlemmer.KeyPointsTotal)

	if rule == QuarterOfConfident {
		if confident == 0 {
			return false
		}
		denominator = float64(confident)
	}

	return float64(inside) >= denominator/4
}

// FilterRegion returns the poses that pass the region threshold.  When the
// filter is disabled or the region is not a polygon the poses are returned
// unchanged.
func FilterRegion(poses []schlemmer.Pose, region Region, enabled bool,
	rule Rule) []schlemmer.Pose {

	if !enabled || len(region) < 3 {
		return poses
	}

	out := make([]schlemmer.Pose, 0, len(poses))

	for i := range poses {
		if region.Accepts(&poses[i], rule) {
			out = append(out, poses[i])
		}
	}

	return out
}
