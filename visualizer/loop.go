package visualizer

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/swdee/go-schlemmer"
)

// FrameFunc is called by Loop around drawing a frame.  Returning an error
// stops the loop.
type FrameFunc func(frame *Frame) error

// LoopOptions configures the frame loop
type LoopOptions struct {
	// Clock drives the frame ticker, defaults to the wall clock
	Clock clock.Clock
	// FPS overrides the configured frame rate when greater than zero
	FPS int
	// BeforeDraw is called after Step and before the frame is drawn, such as
	// to refresh a camera frame surface
	BeforeDraw FrameFunc
	// AfterDraw is called once the frame is drawn, such as to present or
	// save the surfaces
	AfterDraw FrameFunc
}

// Loop steps and draws a frame on every clock tick using the latest poses
// published to the feed.  A slow detector never stalls the loop, the same
// poses are simply used again.  The frame rate is read once when the loop
// starts.  Loop returns nil when the context is cancelled or the error
// returned by a frame callback.
func (v *Visualizer) Loop(ctx context.Context, feed *schlemmer.Feed,
	opts LoopOptions) error {

	clk := opts.Clock

	if clk == nil {
		clk = clock.New()
	}

	fps := opts.FPS

	if fps <= 0 {
		fps = v.tunables.Snapshot().FPS
	}

	if fps <= 0 {
		fps = 30
	}

	ticker := clk.Ticker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	v.log.Infow("Starting frame loop", "fps", fps, "surfaces", len(v.surfaces))

	for {
		select {
		case <-ctx.Done():
			v.log.Infow("Stopped frame loop", "frames", v.frame)
			return nil

		case <-ticker.C:
			snap := feed.Latest()
			frame := v.Step(snap.Poses)

			if opts.BeforeDraw != nil {
				if err := opts.BeforeDraw(&frame); err != nil {
					return err
				}
			}

			v.Draw(&frame)

			if opts.AfterDraw != nil {
				if err := opts.AfterDraw(&frame); err != nil {
					return err
				}
			}
		}
	}
}
