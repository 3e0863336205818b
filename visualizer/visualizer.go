package visualizer

import (
	"image/color"

	"github.com/swdee/go-schlemmer"
	"github.com/swdee/go-schlemmer/config"
	"github.com/swdee/go-schlemmer/filter"
	"github.com/swdee/go-schlemmer/geometry"
	"github.com/swdee/go-schlemmer/render"
	"github.com/swdee/go-schlemmer/spring"
	"github.com/swdee/go-schlemmer/tracker"
	"github.com/swdee/go-schlemmer/trail"
	"go.uber.org/zap"
)

// Surface is one output the frames are composited onto, such as the
// projector canvas or the mirrored camera preview
type Surface struct {
	Name      string
	Target    render.Target
	Transform render.Transform
	// Clear fills the target with black before drawing when the target
	// supports it
	Clear bool
}

// clearer is implemented by targets that can be wiped between frames
type clearer interface {
	Clear(clr color.RGBA)
}

// Frame is the result of processing one set of poses
type Frame struct {
	// Number counts frames since the visualizer was created
	Number int
	// BaseLength is the calibrated stick length, 0 when uncalibrated
	BaseLength float64
	// Poses is the number of poses remaining after the region filter
	Poses int
	Scene render.Scene
	Style render.Style
}

// Calibrated returns true if the frame was built with a base length
func (f *Frame) Calibrated() bool {
	return f.BaseLength > 0
}

// stream is the per identity state carried between frames
type stream struct {
	smoother *filter.Smoother
	solver   *spring.Solver
}

// trackerSettings are the config fields a tracker is built from
type trackerSettings struct {
	mode        tracker.Mode
	maxDistance float64
	maxMissed   int
}

// Visualizer runs the per frame pose to geometry pipeline and draws the
// result onto its surfaces.  Step and Draw must be called from a single
// goroutine, the tunables may be changed from any goroutine.
type Visualizer struct {
	tunables    *config.Tunables
	log         *zap.SugaredLogger
	surfaces    []Surface
	connections []schlemmer.Connection
	palette     render.Palette
	renderer    *render.Renderer

	tracker      *tracker.Tracker
	trackerState trackerSettings
	streams      map[int]*stream
	trail        *trail.Buffer

	// region is the offset filter region cached for regionVersion
	region        filter.Region
	regionVersion uint64
	regionValid   bool

	baseLength  float64
	recalibrate bool
	frame       int
}

// New returns a visualizer reading its settings from tunables
func New(tunables *config.Tunables, opts ...Option) *Visualizer {

	v := &Visualizer{
		tunables:    tunables,
		log:         zap.NewNop().Sugar(),
		connections: schlemmer.DefaultConnections(),
		streams:     make(map[int]*stream),
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.palette == nil {
		v.palette = render.DefaultPalette(len(v.connections))
	}

	cfg := tunables.Snapshot()

	v.renderer = render.NewRenderer(render.DefaultStyle(), v.palette)
	v.trail = trail.NewBuffer(cfg.Trail.Interval, cfg.Trail.MaxAge)
	v.setTracker(cfg)

	return v
}

// BaseLength returns the calibrated stick length, 0 when uncalibrated
func (v *Visualizer) BaseLength() float64 {
	return v.baseLength
}

// Recalibrate requests a new base length from the next frame holding a
// usable pose.  The previous base length stays in use until then.
func (v *Visualizer) Recalibrate() {
	v.recalibrate = true
}

// setTracker rebuilds the identity tracker, dropping all stream state
func (v *Visualizer) setTracker(cfg config.Config) {

	v.trackerState = trackerSettings{
		mode:        cfg.Identity,
		maxDistance: cfg.MaxTrackDistance,
		maxMissed:   cfg.MaxMissed,
	}

	v.tracker = tracker.NewTracker(cfg.Identity, cfg.MaxTrackDistance,
		cfg.MaxMissed, v.log)

	v.streams = make(map[int]*stream)
}

// filterRegion returns the region offset by the configured margin,
// recomputed only when the tunables version changes.  The version must be
// the one cfg was read with.
func (v *Visualizer) filterRegion(cfg *config.Config, version uint64) filter.Region {

	if !v.regionValid || version != v.regionVersion {
		v.region = cfg.Region.Offset(cfg.RegionMargin)
		v.regionVersion = version
		v.regionValid = true
	}

	return v.region
}

// Step processes one set of poses: identity assignment, smoothing, region
// filter, calibration, stick geometry, springs and trails
func (v *Visualizer) Step(poses []schlemmer.Pose) Frame {

	cfg, version := v.tunables.SnapshotVersion()
	v.frame++

	settings := trackerSettings{cfg.Identity, cfg.MaxTrackDistance, cfg.MaxMissed}

	if settings != v.trackerState {
		v.log.Infow("Identity settings changed", "mode", cfg.Identity)
		v.setTracker(cfg)
	}

	tracks, err := v.tracker.Update(poses)

	if err != nil {
		v.log.Warnw("Identity assignment failed, using pose order", "error", err)
		v.tracker.Reset()
		tracks = make([]tracker.Track, len(poses))

		for i := range poses {
			tracks[i] = tracker.Track{ID: i, Pose: poses[i]}
		}
	}

	// smooth each identity against its own previous pose
	live := make(map[int]bool, len(tracks))
	smoothed := make([]schlemmer.Pose, len(tracks))

	for i, tr := range tracks {
		st, ok := v.streams[tr.ID]

		if !ok {
			st = &stream{
				smoother: filter.NewSmoother(),
				solver:   spring.NewSolver(len(v.connections)),
			}
			v.streams[tr.ID] = st
		}

		smoothed[i] = st.smoother.Apply([]schlemmer.Pose{tr.Pose}, cfg.SmoothingFactor)[0]
		live[tr.ID] = true
	}

	// streams outlive a missed frame for as long as the tracker keeps
	// their identity
	for id := range v.streams {
		if !live[id] && !v.tracker.Live(id) {
			delete(v.streams, id)
		}
	}

	// region filter, keeping identities aligned with the surviving poses
	var region filter.Region

	if cfg.RegionEnabled {
		region = v.filterRegion(&cfg, version)
	}

	var kept []tracker.Track

	for i := range smoothed {
		if !cfg.RegionEnabled || len(region) < 3 ||
			region.Accepts(&smoothed[i], cfg.RegionRule) {
			kept = append(kept, tracker.Track{ID: tracks[i].ID, Pose: smoothed[i]})
		}
	}

	v.calibrate(kept, &cfg)

	frame := Frame{
		Number:     v.frame,
		BaseLength: v.baseLength,
		Poses:      len(kept),
		Style:      v.style(&cfg),
	}

	var sticks []geometry.Stick

	if v.baseLength > 0 {
		for _, tr := range kept {
			fig := v.figure(tr, &cfg)
			sticks = append(sticks, fig.Sticks...)
			frame.Scene.Figures = append(frame.Scene.Figures, fig)
		}
	}

	v.trail.Apply(cfg.Trail)

	if cfg.Trail.Enabled() {
		v.trail.Offer(sticks)
		frame.Scene.Trails = v.trail.Tick()
	}

	return frame
}

// calibrate takes a new base length while a recalibration is pending or
// while uncalibrated with auto calibration enabled
func (v *Visualizer) calibrate(tracks []tracker.Track, cfg *config.Config) {

	if !v.recalibrate && !(cfg.AutoCalibrate && v.baseLength <= 0) {
		return
	}

	for _, tr := range tracks {
		length, ok := schlemmer.BaseLength(tr.Pose, cfg.CalibrationScale)

		if !ok {
			continue
		}

		v.baseLength = length
		v.recalibrate = false
		v.log.Infow("Calibrated base length", "length", length, "track", tr.ID)

		return
	}
}

// figure builds the geometry of one identity
func (v *Visualizer) figure(tr tracker.Track, cfg *config.Config) render.Figure {

	fig := render.Figure{
		ID:     tr.ID,
		Sticks: geometry.ResolveSticks(tr.Pose, v.connections, v.baseLength),
		Pose:   tr.Pose,
	}

	st := v.streams[tr.ID]

	if cfg.Springs {
		fig.Curves = st.solver.Update(fig.Sticks, cfg.Spring, cfg.CurveMode, v.frame)
	} else {
		st.solver.Reset()
	}

	if cfg.HeadEllipse {
		fig.Head, fig.HasHead = geometry.Head(tr.Pose, v.baseLength)
	}

	return fig
}

// style returns the render style for the config
func (v *Visualizer) style(cfg *config.Config) render.Style {

	style := render.DefaultStyle()
	style.StrokeWidth = cfg.StrokeWidth

	if cfg.ShowKeyPoints {
		style.KeyPointRadius = cfg.StrokeWidth * 1.5
	}

	return style
}

// Draw renders the frame onto every surface
func (v *Visualizer) Draw(frame *Frame) {

	v.renderer.Style = frame.Style

	for _, s := range v.surfaces {
		if c, ok := s.Target.(clearer); ok && s.Clear {
			c.Clear(render.Black)
		}

		v.renderer.Draw(s.Target, s.Transform, &frame.Scene)
	}
}
