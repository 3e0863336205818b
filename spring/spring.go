package spring

import (
	"math"

	"github.com/swdee/go-schlemmer/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// Bezier is a cubic bezier curve
type Bezier struct {
	P0, C0, C1, P3 r2.Vec
}

// Eval returns the point on the curve at t in [0,1]
func (b Bezier) Eval(t float64) r2.Vec {
	mt := 1 - t

	a := mt * mt * mt
	bb := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t

	return r2.Vec{
		X: a*b.P0.X + bb*b.C0.X + c*b.C1.X + d*b.P3.X,
		Y: a*b.P0.Y + bb*b.C0.Y + c*b.C1.Y + d*b.P3.Y,
	}
}

// Curve is the drawable shape of one sprung connection.  TwoPoint curves
// have one part, ThreePoint curves have two parts joined at the midpoint.
type Curve struct {
	Connection int
	Parts      []Bezier
}

// Spring is the physical state of one connection
type Spring struct {
	Start Point
	End   Point
	Mid   Point
	// ControlStart and ControlEnd are the curve control points derived on
	// the last call to Curve
	ControlStart r2.Vec
	ControlEnd   r2.Vec

	initialized bool
}

// Initialized returns true once the spring has been snapped onto a target
func (s *Spring) Initialized() bool {
	return s.initialized
}

// Reset marks the spring uninitialized so the next Step snaps it onto the
// target instead of flying in from its old position
func (s *Spring) Reset() {
	*s = Spring{}
}

// Step advances the spring one frame towards the target segment using
// effective parameters, see Params.Effective
func (s *Spring) Step(target geometry.Segment, p Params, mode Mode) {

	mid := target.Midpoint()

	if !s.initialized {
		s.Start.Snap(target.Start)
		s.End.Snap(target.End)
		s.Mid.Snap(mid)
		s.initialized = true
		return
	}

	s.Start.Step(target.Start, p.Hardness, p.Damping)
	s.End.Step(target.End, p.Hardness, p.Damping)

	if mode == ThreePoint {
		s.Mid.Step(mid, p.MidHardness, p.Damping)
		return
	}

	// keep the midpoint on the sprung line so switching to ThreePoint
	// starts from the current stick
	s.Mid.Snap(r2.Scale(0.5, r2.Add(s.Start.Pos, s.End.Pos)))
}

// Curve derives the drawable curve from the spring state.  Index is the
// connection index and sets the wobble phase, frame is the frame counter
// driving the wobble.
func (s *Spring) Curve(index, frame int, p Params, mode Mode) Curve {

	if mode == ThreePoint {
		return s.threePoint(index, p)
	}

	return s.twoPoint(index, frame, p)
}

// twoPoint builds a single cubic with control points at fixed fractions
// along the sprung line, pushed sideways by a sinusoidal wobble
func (s *Spring) twoPoint(index, frame int, p Params) Curve {

	start := s.Start.Pos
	end := s.End.Pos
	dir := r2.Sub(end, start)

	var normal r2.Vec

	if n := r2.Norm(dir); n > 0 {
		normal = r2.Vec{X: -dir.Y / n, Y: dir.X / n}
	}

	phase := float64(frame)*p.WobbleSpeed + float64(index)*p.PhaseOffset

	w0 := math.Sin(phase) * p.WobbleAmplitude
	w1 := math.Sin(phase+math.Pi/2) * p.WobbleAmplitude

	s.ControlStart = r2.Add(r2.Add(start, r2.Scale(p.ControlRatio, dir)), r2.Scale(w0, normal))
	s.ControlEnd = r2.Add(r2.Add(start, r2.Scale(1-p.ControlRatio, dir)), r2.Scale(w1, normal))

	return Curve{
		Connection: index,
		Parts: []Bezier{{
			P0: start,
			C0: s.ControlStart,
			C1: s.ControlEnd,
			P3: end,
		}},
	}
}

// threePoint builds two cubics passing through the sprung midpoint.  Both
// halves share the tangent at the midpoint so the joined curve is smooth.
func (s *Spring) threePoint(index int, p Params) Curve {

	start := s.Start.Pos
	end := s.End.Pos
	mid := s.Mid.Pos

	tangent := r2.Scale(0.5*p.ControlRatio, r2.Sub(end, start))

	s.ControlStart = r2.Add(start, r2.Scale(p.ControlRatio, r2.Sub(mid, start)))
	s.ControlEnd = r2.Sub(end, r2.Scale(p.ControlRatio, r2.Sub(end, mid)))

	return Curve{
		Connection: index,
		Parts: []Bezier{
			{P0: start, C0: s.ControlStart, C1: r2.Sub(mid, tangent), P3: mid},
			{P0: mid, C0: r2.Add(mid, tangent), C1: s.ControlEnd, P3: end},
		},
	}
}
