package visualizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/swdee/go-schlemmer"
	"github.com/swdee/go-schlemmer/config"
	"github.com/swdee/go-schlemmer/filter"
	"github.com/swdee/go-schlemmer/render"
	"github.com/swdee/go-schlemmer/tracker"
	"github.com/swdee/go-schlemmer/trail"
)

// standingPose returns a fully confident upright pose with its nose at
// (x,0) and ankles at y=200
func standingPose(x float64) schlemmer.Pose {

	p := schlemmer.NewPose()

	set := func(idx int, dx, y float64) {
		p.Set(idx, x+dx, y, 0.9)
	}

	set(schlemmer.Nose, 0, 0)
	set(schlemmer.LeftEye, -3, -2)
	set(schlemmer.RightEye, 3, -2)
	set(schlemmer.LeftEar, -5, 0)
	set(schlemmer.RightEar, 5, 0)
	set(schlemmer.LeftShoulder, -20, 40)
	set(schlemmer.RightShoulder, 20, 40)
	set(schlemmer.LeftElbow, -30, 80)
	set(schlemmer.RightElbow, 30, 80)
	set(schlemmer.LeftWrist, -35, 120)
	set(schlemmer.RightWrist, 35, 120)
	set(schlemmer.LeftHip, -10, 120)
	set(schlemmer.RightHip, 10, 120)
	set(schlemmer.LeftKnee, -10, 160)
	set(schlemmer.RightKnee, 10, 160)
	set(schlemmer.LeftAnkle, -10, 200)
	set(schlemmer.RightAnkle, 10, 200)

	return p
}

func newTunables(edit func(cfg *config.Config)) *config.Tunables {
	cfg := config.DefaultConfig()
	if edit != nil {
		edit(&cfg)
	}
	return config.NewTunables(cfg)
}

func TestStepUncalibratedDrawsNothing(t *testing.T) {

	tun := newTunables(func(cfg *config.Config) {
		cfg.AutoCalibrate = false
	})

	rec := &render.Recorder{}
	v := New(tun, WithSurfaces(Surface{Name: "projector", Target: rec,
		Transform: render.Identity()}))

	frame := v.Step([]schlemmer.Pose{standingPose(100)})

	if frame.Calibrated() {
		t.Fatalf("expected uncalibrated frame")
	}

	if len(frame.Scene.Figures) != 0 {
		t.Errorf("expected no figures, got %d", len(frame.Scene.Figures))
	}

	v.Draw(&frame)

	if len(rec.Calls) != 0 {
		t.Errorf("expected no draw calls, got %d", len(rec.Calls))
	}

	v.Recalibrate()
	frame = v.Step([]schlemmer.Pose{standingPose(100)})

	if frame.BaseLength != 200 {
		t.Errorf("expected base length 200, got %v", frame.BaseLength)
	}

	if len(frame.Scene.Figures) != 1 {
		t.Errorf("expected one figure after calibration")
	}
}

func TestRecalibrateWaitsForUsablePose(t *testing.T) {

	// smoothing would drag the reappearing ankles in from the origin
	tun := newTunables(func(cfg *config.Config) {
		cfg.SmoothingFactor = 1
	})

	v := New(tun, WithBaseLength(50))
	v.Recalibrate()

	// a pose without ankles cannot calibrate
	p := standingPose(100)
	p.Set(schlemmer.LeftAnkle, 0, 0, 0)
	p.Set(schlemmer.RightAnkle, 0, 0, 0)

	v.Step([]schlemmer.Pose{p})

	if v.BaseLength() != 50 {
		t.Errorf("expected previous base length to remain, got %v", v.BaseLength())
	}

	v.Step([]schlemmer.Pose{standingPose(100)})

	if v.BaseLength() != 200 {
		t.Errorf("expected recalibrated base length 200, got %v", v.BaseLength())
	}
}

func TestStepBuildsFigure(t *testing.T) {

	v := New(newTunables(nil))
	frame := v.Step([]schlemmer.Pose{standingPose(100)})

	if len(frame.Scene.Figures) != 1 {
		t.Fatalf("expected one figure, got %d", len(frame.Scene.Figures))
	}

	fig := frame.Scene.Figures[0]

	if len(fig.Sticks) != len(schlemmer.DefaultConnections()) {
		t.Errorf("expected a stick per connection, got %d", len(fig.Sticks))
	}

	if len(fig.Curves) != len(fig.Sticks) {
		t.Errorf("expected a curve per stick, got %d", len(fig.Curves))
	}

	if !fig.HasHead {
		t.Errorf("expected head ellipse")
	}
}

func TestStepSpringsDisabled(t *testing.T) {

	tun := newTunables(func(cfg *config.Config) {
		cfg.Springs = false
		cfg.HeadEllipse = false
		cfg.Trail = trail.NoTrail()
	})

	rec := &render.Recorder{}
	v := New(tun, WithSurfaces(Surface{Target: rec, Transform: render.Identity()}))

	frame := v.Step([]schlemmer.Pose{standingPose(100)})
	v.Draw(&frame)

	if rec.Count(render.ShapeCubic) != 0 {
		t.Errorf("expected no curves")
	}

	if rec.Count(render.ShapeLine) != len(schlemmer.DefaultConnections()) {
		t.Errorf("expected a line per connection, got %d", rec.Count(render.ShapeLine))
	}
}

func TestStepRegionFilter(t *testing.T) {

	tun := newTunables(func(cfg *config.Config) {
		cfg.RegionEnabled = true
		cfg.Region = filter.Region{{X: 0, Y: -50}, {X: 200, Y: -50},
			{X: 200, Y: 250}, {X: 0, Y: 250}}
	})

	v := New(tun)
	frame := v.Step([]schlemmer.Pose{standingPose(100), standingPose(600)})

	if frame.Poses != 1 {
		t.Errorf("expected 1 pose inside the region, got %d", frame.Poses)
	}

	// shrinking the region past the pose rejects it
	tun.Update(func(cfg *config.Config) {
		cfg.RegionMargin = -90
	})

	frame = v.Step([]schlemmer.Pose{standingPose(100)})

	if frame.Poses != 0 {
		t.Errorf("expected pose outside shrunken region, got %d", frame.Poses)
	}
}

func TestStepTrails(t *testing.T) {

	tun := newTunables(func(cfg *config.Config) {
		cfg.Trail = trail.DecayingTrail(1, 3)
	})

	v := New(tun)

	var frame Frame
	for i := 0; i < 5; i++ {
		frame = v.Step([]schlemmer.Pose{standingPose(100)})
	}

	sticks := len(schlemmer.DefaultConnections())

	// ages 1 to 3 survive
	if len(frame.Scene.Trails) != 3*sticks {
		t.Errorf("expected %d trail segments, got %d", 3*sticks, len(frame.Scene.Trails))
	}

	tun.Update(func(cfg *config.Config) {
		cfg.Trail = trail.NoTrail()
	})

	frame = v.Step([]schlemmer.Pose{standingPose(100)})

	if len(frame.Scene.Trails) != 0 {
		t.Errorf("expected trails cleared when disabled")
	}
}

func TestDrawAllSurfaces(t *testing.T) {

	projector := &render.Recorder{}
	preview := &render.Recorder{}

	v := New(newTunables(nil), WithSurfaces(
		Surface{Name: "projector", Target: projector, Transform: render.Identity()},
		Surface{Name: "preview", Target: preview, Transform: render.Transform{
			Scale: 0.5, Mirror: true, SourceWidth: 640,
		}},
	))

	frame := v.Step([]schlemmer.Pose{standingPose(100)})
	v.Draw(&frame)

	if len(projector.Calls) == 0 || len(projector.Calls) != len(preview.Calls) {
		t.Fatalf("expected same draw calls on both surfaces, got %d and %d",
			len(projector.Calls), len(preview.Calls))
	}

	src := projector.Calls[0].Points[0]
	dst := preview.Calls[0].Points[0]

	if dst.X != (640-src.X)*0.5 || dst.Y != src.Y*0.5 {
		t.Errorf("expected mirrored and scaled point, got %v from %v", dst, src)
	}
}

func TestStepCentroidIdentity(t *testing.T) {

	tun := newTunables(func(cfg *config.Config) {
		cfg.Identity = tracker.Centroid
	})

	v := New(tun)

	first := v.Step([]schlemmer.Pose{standingPose(100), standingPose(400)})
	second := v.Step([]schlemmer.Pose{standingPose(405), standingPose(102)})

	ids := map[float64]int{}
	for _, f := range first.Scene.Figures {
		ids[f.Pose[schlemmer.Nose].X] = f.ID
	}

	if len(second.Scene.Figures) != 2 {
		t.Fatalf("expected 2 figures, got %d", len(second.Scene.Figures))
	}

	if second.Scene.Figures[1].ID != ids[100] {
		t.Errorf("expected pose near 100 to keep id %d, got %d", ids[100],
			second.Scene.Figures[1].ID)
	}

	if second.Scene.Figures[0].ID != ids[400] {
		t.Errorf("expected pose near 400 to keep id %d, got %d", ids[400],
			second.Scene.Figures[0].ID)
	}
}

func TestStepKeepsStreamWhileTrackMissed(t *testing.T) {

	tun := newTunables(func(cfg *config.Config) {
		cfg.Identity = tracker.Centroid
		cfg.MaxMissed = 2
		cfg.SmoothingFactor = 0.5
	})

	v := New(tun)

	first := v.Step([]schlemmer.Pose{standingPose(100)})
	v.Step(nil)
	third := v.Step([]schlemmer.Pose{standingPose(110)})

	if len(third.Scene.Figures) != 1 || third.Scene.Figures[0].ID != first.Scene.Figures[0].ID {
		t.Fatalf("expected the identity to survive one missed frame")
	}

	// smoothing history survived the gap
	if x := third.Scene.Figures[0].Pose[schlemmer.Nose].X; x != 105 {
		t.Errorf("expected nose smoothed to 105, got %v", x)
	}

	for i := 0; i < 3; i++ {
		v.Step(nil)
	}

	last := v.Step([]schlemmer.Pose{standingPose(110)})

	if last.Scene.Figures[0].ID == first.Scene.Figures[0].ID {
		t.Errorf("expected a new identity once the track was dropped")
	}

	if x := last.Scene.Figures[0].Pose[schlemmer.Nose].X; x != 110 {
		t.Errorf("expected a cold start for the new identity, got %v", x)
	}
}

func TestLoop(t *testing.T) {

	mock := clock.NewMock()
	feed := schlemmer.NewFeed()
	feed.Publish([]schlemmer.Pose{standingPose(100)})

	rec := &render.Recorder{}
	v := New(newTunables(nil),
		WithSurfaces(Surface{Target: rec, Transform: render.Identity()}))

	frames := make(chan int, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- v.Loop(ctx, feed, LoopOptions{
			Clock: mock,
			FPS:   10,
			AfterDraw: func(frame *Frame) error {
				frames <- frame.Number
				return nil
			},
		})
	}()

	got := 0
	deadline := time.After(2 * time.Second)

	for got < 3 {
		mock.Add(100 * time.Millisecond)

		select {
		case <-frames:
			got++
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatalf("timed out waiting for frames, got %d", got)
		}
	}

	cancel()

	if err := <-done; err != nil {
		t.Errorf("expected nil error on cancel, got %v", err)
	}

	if len(rec.Calls) == 0 {
		t.Errorf("expected frames to be drawn")
	}
}

func TestLoopStopsOnCallbackError(t *testing.T) {

	mock := clock.NewMock()
	stop := errors.New("stop")

	v := New(newTunables(nil))
	done := make(chan error, 1)

	go func() {
		done <- v.Loop(context.Background(), schlemmer.NewFeed(), LoopOptions{
			Clock: mock,
			BeforeDraw: func(frame *Frame) error {
				return stop
			},
		})
	}()

	deadline := time.After(2 * time.Second)

	for {
		mock.Add(time.Second)

		select {
		case err := <-done:
			if !errors.Is(err, stop) {
				t.Errorf("expected callback error, got %v", err)
			}
			return
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatalf("timed out waiting for loop to stop")
		}
	}
}
