package render

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/swdee/go-schlemmer"
	"github.com/swdee/go-schlemmer/geometry"
	"github.com/swdee/go-schlemmer/spring"
	"github.com/swdee/go-schlemmer/trail"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestTransformApply(t *testing.T) {

	tf := Transform{
		Offset:      r2.Vec{X: 10, Y: 20},
		Scale:       2,
		Mirror:      true,
		SourceWidth: 640,
	}

	got := tf.Apply(r2.Vec{X: 40, Y: 5})
	want := r2.Vec{X: (640-40)*2 + 10, Y: 5*2 + 20}

	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}

	if l := tf.Length(3); l != 6 {
		t.Errorf("expected length 6, got %v", l)
	}

	// zero scale is identity
	var zero Transform
	if v := zero.Apply(r2.Vec{X: 1, Y: 2}); v != (r2.Vec{X: 1, Y: 2}) {
		t.Errorf("expected unchanged point, got %v", v)
	}
}

func TestPalette(t *testing.T) {

	p := DefaultPalette(10)

	if len(p) != 10 {
		t.Fatalf("expected 10 colors, got %d", len(p))
	}

	seen := make(map[color.RGBA]bool)
	for _, c := range p {
		if c.A != 255 {
			t.Errorf("expected opaque color, got %v", c)
		}
		seen[c] = true
	}

	if len(seen) < 2 {
		t.Errorf("expected distinct palette colors")
	}

	if p.At(12) != p[2] {
		t.Errorf("expected At to wrap around the palette")
	}

	var empty Palette
	if empty.At(3) != White {
		t.Errorf("expected white from empty palette")
	}
}

func TestFade(t *testing.T) {

	clr := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	if got := Fade(clr, 1); got != clr {
		t.Errorf("expected full color, got %v", got)
	}

	if got := Fade(clr, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("expected black, got %v", got)
	}

	half := Fade(clr, 0.5)
	if half.R >= clr.R || half.G >= clr.G || half.R == 0 {
		t.Errorf("expected dimmed color, got %v", half)
	}
}

func TestRendererDrawOrder(t *testing.T) {

	seg := geometry.Segment{Start: r2.Vec{X: 0, Y: 0}, End: r2.Vec{X: 10, Y: 0}}

	scene := &Scene{
		Figures: []Figure{
			{
				Sticks: []geometry.Stick{{Connection: 0, Segment: seg}},
				Curves: []spring.Curve{{
					Connection: 0,
					Parts: []spring.Bezier{{
						P0: seg.Start, C0: r2.Vec{X: 3}, C1: r2.Vec{X: 7}, P3: seg.End,
					}},
				}},
				Head:    geometry.Ellipse{Center: r2.Vec{X: 5, Y: -5}, RadiusX: 2, RadiusY: 3},
				HasHead: true,
			},
		},
		Trails: []trail.Faded{
			{Stick: geometry.Stick{Segment: seg}, Fade: 0.5},
			{Stick: geometry.Stick{Segment: seg}, Fade: 0},
		},
	}

	rec := &Recorder{}
	r := NewRenderer(DefaultStyle(), DefaultPalette(10))
	r.Draw(rec, Identity(), scene)

	var shapes []Shape
	for _, c := range rec.Calls {
		shapes = append(shapes, c.Shape)
	}

	// fully faded trail is skipped, curves replace sticks
	want := []Shape{ShapeLine, ShapeCubic, ShapeEllipse}

	if diff := cmp.Diff(want, shapes); diff != "" {
		t.Errorf("draw calls mismatch (-want +got):\n%s", diff)
	}

	if rec.Calls[0].Width != DefaultTrailStyle().LineWidth*0.5 {
		t.Errorf("expected trail width thinned by fade, got %v", rec.Calls[0].Width)
	}
}

func TestTrailLineSameUsesConnection(t *testing.T) {

	seg := geometry.Segment{End: r2.Vec{X: 10}}
	palette := DefaultPalette(10)

	trails := []trail.Faded{
		{Stick: geometry.Stick{Connection: 6, Segment: seg}, Fade: 1},
		{Stick: geometry.Stick{Connection: 3, Segment: seg}, Fade: 1},
	}

	style := DefaultTrailStyle()
	style.LineSame = true

	rec := &Recorder{}
	Trail(rec, Identity(), trails, palette, style)

	if len(rec.Calls) != 2 {
		t.Fatalf("expected 2 trail lines, got %d", len(rec.Calls))
	}

	if rec.Calls[0].Color != palette.At(6) || rec.Calls[1].Color != palette.At(3) {
		t.Errorf("trail colors should follow the connection, got %v and %v",
			rec.Calls[0].Color, rec.Calls[1].Color)
	}
}

func TestRendererSticksWithoutCurves(t *testing.T) {

	scene := &Scene{
		Figures: []Figure{{
			Sticks: []geometry.Stick{
				{Connection: 0, Segment: geometry.Segment{End: r2.Vec{X: 1}}},
				{Connection: 1, Segment: geometry.Segment{End: r2.Vec{Y: 1}}},
			},
		}},
	}

	rec := &Recorder{}
	palette := DefaultPalette(10)
	NewRenderer(DefaultStyle(), palette).Draw(rec, Identity(), scene)

	if rec.Count(ShapeLine) != 2 {
		t.Fatalf("expected 2 lines, got %d", rec.Count(ShapeLine))
	}

	if rec.Calls[1].Color != palette.At(1) {
		t.Errorf("expected connection color, got %v", rec.Calls[1].Color)
	}
}

func TestRendererEmptyScene(t *testing.T) {

	rec := &Recorder{}
	r := NewRenderer(DefaultStyle(), DefaultPalette(10))

	r.Draw(rec, Identity(), &Scene{})
	r.Draw(rec, Identity(), nil)

	if len(rec.Calls) != 0 {
		t.Errorf("expected no draw calls, got %d", len(rec.Calls))
	}
}

func TestPoseKeyPoints(t *testing.T) {

	p := schlemmer.NewPose()
	p.Set(schlemmer.Nose, 10, 10, 0.9)
	p.Set(schlemmer.LeftEye, 12, 8, 0.05)

	rec := &Recorder{}
	PoseKeyPoints(rec, Identity(), []schlemmer.Pose{p}, 4)

	if rec.Count(ShapeEllipse) != 1 {
		t.Errorf("expected 1 keypoint dot, got %d", rec.Count(ShapeEllipse))
	}
}
