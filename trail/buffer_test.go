package trail

import (
	"math"
	"testing"

	"github.com/swdee/go-schlemmer/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

var seg = geometry.Stick{
	Connection: 2,
	Segment:    geometry.Segment{Start: r2.Vec{X: 0, Y: 0}, End: r2.Vec{X: 10, Y: 0}},
}

func TestTickEviction(t *testing.T) {

	maxAge := 5
	b := NewBuffer(1, maxAge)
	b.Capture([]geometry.Stick{seg})

	for i := 1; i <= maxAge; i++ {
		out := b.Tick()

		if len(out) != 1 {
			t.Fatalf("tick %d: expected snapshot to survive, got %d segments", i, len(out))
		}

		want := 1 - float64(i)/float64(maxAge)

		if math.Abs(out[0].Fade-want) > 1e-12 {
			t.Errorf("tick %d: expected fade %v, got %v", i, want, out[0].Fade)
		}
	}

	// at age == maxAge fade has reached zero but is still present
	if b.Len() != 1 {
		t.Errorf("snapshot should not be evicted at age == maxAge")
	}

	if out := b.Tick(); len(out) != 0 {
		t.Errorf("expected eviction once age > maxAge, got %v", out)
	}

	if b.Len() != 0 {
		t.Errorf("expected empty history, got %d", b.Len())
	}
}

func TestOfferCadence(t *testing.T) {

	b := NewBuffer(3, 100)

	captures := 0

	for i := 0; i < 9; i++ {
		if b.Offer([]geometry.Stick{seg}) {
			captures++

			if (i+1)%3 != 0 {
				t.Errorf("capture on unexpected frame %d", i)
			}
		}
		b.Tick()
	}

	if captures != 3 {
		t.Errorf("expected 3 captures, got %d", captures)
	}
}

func TestSetMaxAgeNotRetroactive(t *testing.T) {

	b := NewBuffer(1, 10)
	b.Capture([]geometry.Stick{seg})

	for i := 0; i < 4; i++ {
		b.Tick()
	}

	// stored age is kept, only the fade on later ticks uses the new max age
	b.SetMaxAge(5)

	out := b.Tick()

	if len(out) != 1 || out[0].Fade != 0 {
		t.Fatalf("expected fade 0 at age 5 of 5, got %v", out)
	}

	if out := b.Tick(); len(out) != 0 {
		t.Errorf("expected eviction at age 6 of 5")
	}
}

func TestCaptureCopiesSticks(t *testing.T) {

	b := NewBuffer(1, 3)
	segs := []geometry.Stick{seg}
	b.Capture(segs)

	segs[0].End.X = 999

	out := b.Tick()

	if out[0].End.X != 10 {
		t.Errorf("captured sticks alias the caller's slice")
	}
}

func TestOfferThenTickNewestFade(t *testing.T) {

	b := NewBuffer(1, 4)
	b.Offer([]geometry.Stick{seg})

	out := b.Tick()

	if len(out) != 1 || out[0].Fade != 0.75 {
		t.Errorf("expected newest snapshot at fade 0.75 after one tick, got %+v", out)
	}
}

func TestTickKeepsConnection(t *testing.T) {

	b := NewBuffer(1, 3)

	// a skipped connection leaves a gap, position in the snapshot differs
	// from the connection index
	b.Capture([]geometry.Stick{{Connection: 4, Segment: seg.Segment}, {Connection: 7, Segment: seg.Segment}})

	out := b.Tick()

	if len(out) != 2 || out[0].Connection != 4 || out[1].Connection != 7 {
		t.Errorf("expected connections 4 and 7 to survive capture, got %+v", out)
	}
}

func TestZeroMaxAge(t *testing.T) {

	b := NewBuffer(1, 0)
	b.Capture([]geometry.Stick{seg})

	out := b.Tick()

	if len(out) != 0 {
		t.Errorf("zero max age should evict on first tick")
	}

	for _, f := range out {
		if math.IsNaN(f.Fade) {
			t.Errorf("NaN fade")
		}
	}
}

func TestPolicyDisableResets(t *testing.T) {

	b := NewBuffer(2, 10)
	b.Offer([]geometry.Stick{seg})
	b.Capture([]geometry.Stick{seg})

	b.Apply(NoTrail())

	if b.Len() != 0 {
		t.Errorf("disabling trails should clear history")
	}

	b.Apply(DecayingTrail(2, 10))

	// frame counter was reset so the first offer does not capture
	if b.Offer([]geometry.Stick{seg}) {
		t.Errorf("frame counter was not reset")
	}

	if !b.Offer([]geometry.Stick{seg}) {
		t.Errorf("expected capture on second frame")
	}
}

func TestIntervalFloor(t *testing.T) {

	b := NewBuffer(0, 10)

	if b.Interval() != 1 {
		t.Errorf("expected interval floor of 1, got %d", b.Interval())
	}

	if !b.Offer(nil) {
		t.Errorf("interval 1 should capture every frame")
	}
}
