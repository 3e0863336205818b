package spring

import (
	"fmt"
	"math"
)

const (
	// ElasticityMin is the lowest elasticity multiplier accepted
	ElasticityMin = 0.1
	// ElasticityMax is the highest elasticity multiplier accepted
	ElasticityMax = 3.0
	// DampingNudge is how far damping moves per unit of elasticity away
	// from 1.0
	DampingNudge = 0.04

	// limits keeping effective hardness and damping inside (0,1)
	coefficientMin = 0.001
	coefficientMax = 0.99
)

// Mode selects how the sprung points are turned into curves
type Mode int

const (
	// TwoPoint springs both stick ends and draws one cubic with wobbling
	// control points along the line
	TwoPoint Mode = iota
	// ThreePoint adds a softer sprung midpoint and draws two cubics that
	// meet at it, forming an S-curve
	ThreePoint
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case TwoPoint:
		return "two-point"
	case ThreePoint:
		return "three-point"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name back to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "two-point":
		return TwoPoint, nil
	case "three-point":
		return ThreePoint, nil
	}
	return TwoPoint, fmt.Errorf("unknown curve mode %q", s)
}

// MarshalText encodes the mode by name
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Params are the tunable spring coefficients
type Params struct {
	// Hardness is the spring stiffness of the stick ends in (0,1)
	Hardness float64 `json:"hardness"`
	// Damping scales velocity every frame, in (0,1)
	Damping float64 `json:"damping"`
	// MidHardness is the stiffness of the three point midpoint, typically
	// softer than Hardness
	MidHardness float64 `json:"midHardness"`
	// Elasticity is the overall bounciness multiplier
	Elasticity float64 `json:"elasticity"`
	// WobbleAmplitude is the perpendicular control point offset at an
	// elasticity of 1
	WobbleAmplitude float64 `json:"wobbleAmplitude"`
	// WobbleSpeed is the wobble phase advance per frame in radians
	WobbleSpeed float64 `json:"wobbleSpeed"`
	// PhaseOffset desynchronizes sibling connections, radians per index
	PhaseOffset float64 `json:"phaseOffset"`
	// ControlRatio places the curve control points as a fraction along the
	// line from each end
	ControlRatio float64 `json:"controlRatio"`
}

// DefaultParams returns the spring coefficients used by the installation
func DefaultParams() Params {
	return Params{
		Hardness:        0.15,
		Damping:         0.9,
		MidHardness:     0.08,
		Elasticity:      1.0,
		WobbleAmplitude: 4.0,
		WobbleSpeed:     0.08,
		PhaseOffset:     0.7,
		ControlRatio:    1.0 / 3.0,
	}
}

// ClampElasticity restricts v to the range [min,max]
func ClampElasticity(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return 1.0
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Effective returns the parameters with elasticity folded in.  Elasticity
// scales hardness and wobble, and lower elasticity lowers the damping
// multiplier which removes more velocity each frame.
func (p Params) Effective() Params {

	e := ClampElasticity(p.Elasticity, ElasticityMin, ElasticityMax)

	out := p
	out.Elasticity = 1
	out.Hardness = clampCoefficient(p.Hardness * e)
	out.MidHardness = clampCoefficient(p.MidHardness * e)
	out.Damping = clampCoefficient(p.Damping + (e-1)*DampingNudge)
	out.WobbleAmplitude = p.WobbleAmplitude * e

	return out
}

// clampCoefficient keeps a spring coefficient strictly inside (0,1)
func clampCoefficient(v float64) float64 {
	if v < coefficientMin {
		return coefficientMin
	}
	if v > coefficientMax {
		return coefficientMax
	}
	return v
}
