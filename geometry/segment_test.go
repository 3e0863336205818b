package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/swdee/go-schlemmer"
	"gonum.org/v1/gonum/spatial/r2"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestResolveUncentered(t *testing.T) {

	p := schlemmer.NewPose()
	p.Set(schlemmer.LeftShoulder, 10, 10, 0.9)
	p.Set(schlemmer.LeftElbow, 10, 30, 0.9)

	conns := []schlemmer.Connection{
		{Lower: schlemmer.LeftShoulder, Upper: schlemmer.LeftElbow, LengthRatio: 0.5},
	}

	got := Resolve(p, conns, 100)
	want := []Segment{{Start: r2.Vec{X: 10, Y: 10}, End: r2.Vec{X: 10, Y: 60}}}

	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("unexpected segments (-want +got):\n%s", diff)
	}
}

func TestResolveCentered(t *testing.T) {

	p := schlemmer.NewPose()
	p.Set(schlemmer.LeftHip, 0, 50, 0.9)
	p.Set(schlemmer.RightHip, 20, 50, 0.9)

	conns := []schlemmer.Connection{
		{Lower: schlemmer.LeftHip, Upper: schlemmer.RightHip, Centered: true, LengthRatio: 0.4},
	}

	got := Resolve(p, conns, 100)
	want := []Segment{{Start: r2.Vec{X: -10, Y: 50}, End: r2.Vec{X: 30, Y: 50}}}

	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("unexpected segments (-want +got):\n%s", diff)
	}

	if mid := got[0].Midpoint(); math.Abs(mid.X-10) > 1e-9 {
		t.Errorf("centered stick midpoint expected at x=10, got %v", mid.X)
	}

	if l := got[0].Length(); math.Abs(l-40) > 1e-9 {
		t.Errorf("expected length 40, got %v", l)
	}
}

func TestResolveSkipsDegenerate(t *testing.T) {

	p := schlemmer.NewPose()

	// coincident keypoints at full confidence
	p.Set(schlemmer.LeftShoulder, 10, 10, 1)
	p.Set(schlemmer.LeftElbow, 10, 10, 1)

	// low confidence on one end
	p.Set(schlemmer.RightShoulder, 10, 10, 1)
	p.Set(schlemmer.RightElbow, 40, 10, 0.1)

	got := ResolveSticks(p, schlemmer.DefaultConnections(), 100)

	if len(got) != 0 {
		t.Fatalf("expected no sticks, got %v", got)
	}

	for _, s := range got {
		if math.IsNaN(s.Start.X) || math.IsNaN(s.End.X) {
			t.Errorf("NaN in output")
		}
	}
}

func TestResolveUncalibrated(t *testing.T) {

	p := schlemmer.NewPose()
	p.Set(schlemmer.LeftShoulder, 10, 10, 1)
	p.Set(schlemmer.LeftElbow, 10, 40, 1)

	if got := Resolve(p, schlemmer.DefaultConnections(), 0); len(got) != 0 {
		t.Errorf("expected no segments when uncalibrated, got %v", got)
	}
}

func TestResolveSticksKeepTableOrder(t *testing.T) {

	p := schlemmer.NewPose()

	for i := range p {
		p.Set(i, float64(i*7%13), float64(i*11%17), 0.9)
	}

	conns := schlemmer.DefaultConnections()
	sticks := ResolveSticks(p, conns, 200)

	last := -1

	for _, s := range sticks {
		if s.Connection <= last {
			t.Errorf("sticks out of table order: %d after %d", s.Connection, last)
		}
		last = s.Connection

		want := 200 * conns[s.Connection].LengthRatio

		if math.Abs(s.Length()-want) > 1e-9 {
			t.Errorf("connection %d expected length %v, got %v", s.Connection, want, s.Length())
		}
	}
}
