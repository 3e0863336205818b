package spring

import (
	"github.com/swdee/go-schlemmer/geometry"
)

// Solver holds one Spring per connection of a rendered pose stream.  It is
// owned by the render loop and is not safe for concurrent use.
type Solver struct {
	springs []Spring
	seen    []bool
}

// NewSolver returns a solver sized for the given number of connections
func NewSolver(connections int) *Solver {
	return &Solver{
		springs: make([]Spring, connections),
		seen:    make([]bool, connections),
	}
}

// Spring returns the spring for a connection index, or nil if out of range
func (s *Solver) Spring(connection int) *Spring {
	if connection < 0 || connection >= len(s.springs) {
		return nil
	}
	return &s.springs[connection]
}

// Reset uninitializes every spring
func (s *Solver) Reset() {
	for i := range s.springs {
		s.springs[i].Reset()
	}
}

// Update relaxes the springs towards the target sticks and returns a curve
// per stick.  Springs of connections missing from sticks are reset so they
// snap back into place when the connection reappears.
func (s *Solver) Update(sticks []geometry.Stick, p Params, mode Mode,
	frame int) []Curve {

	eff := p.Effective()

	for i := range s.seen {
		s.seen[i] = false
	}

	curves := make([]Curve, 0, len(sticks))

	for _, stick := range sticks {
		if stick.Connection < 0 {
			continue
		}

		s.grow(stick.Connection + 1)

		sp := &s.springs[stick.Connection]
		sp.Step(stick.Segment, eff, mode)
		s.seen[stick.Connection] = true

		curves = append(curves, sp.Curve(stick.Connection, frame, eff, mode))
	}

	for i, ok := range s.seen {
		if !ok {
			s.springs[i].Reset()
		}
	}

	return curves
}

// grow makes room for at least n springs
func (s *Solver) grow(n int) {
	for len(s.springs) < n {
		s.springs = append(s.springs, Spring{})
		s.seen = append(s.seen, false)
	}
}
