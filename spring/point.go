package spring

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a unit mass attached to its target by a damped spring
type Point struct {
	Pos r2.Vec
	Vel r2.Vec
}

// Step advances the point one frame towards target.  The spring force is
// added to the velocity before damping scales the combined velocity, then
// the position integrates.
func (p *Point) Step(target r2.Vec, hardness, damping float64) {

	force := r2.Scale(hardness, r2.Sub(target, p.Pos))

	p.Vel = r2.Scale(damping, r2.Add(p.Vel, force))
	p.Pos = r2.Add(p.Pos, p.Vel)
}

// Snap places the point at target at rest
func (p *Point) Snap(target r2.Vec) {
	p.Pos = target
	p.Vel = r2.Vec{}
}
