package tracker

import (
	"fmt"

	"github.com/swdee/go-schlemmer"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// Mode selects how poses in consecutive frames are associated with each
// other
type Mode int

const (
	// Positional assumes pose i of a frame is the same person as pose i of
	// the previous frame
	Positional Mode = iota
	// Centroid matches poses to tracks by keypoint centroid distance
	Centroid
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case Positional:
		return "positional"
	case Centroid:
		return "centroid"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name back to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "positional":
		return Positional, nil
	case "centroid":
		return Centroid, nil
	}
	return Positional, fmt.Errorf("unknown identity mode %q", s)
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

// Track is a pose tagged with the identity of the stream it belongs to
type Track struct {
	ID   int
	Pose schlemmer.Pose
}

// track is the state of a live centroid track
type track struct {
	id       int
	centroid r2.Vec
	missed   int
}

// Tracker assigns stream identities to poses.  It is owned by the render
// loop and is not safe for concurrent use.
type Tracker struct {
	mode Mode
	// maxDistance is the largest centroid movement between frames still
	// considered the same person
	maxDistance float64
	// maxMissed is the number of frames a track survives without a match
	maxMissed int
	tracks    []*track
	nextID    int
	log       *zap.SugaredLogger
}

// NewTracker returns a tracker for the given mode.  MaxDistance and
// maxMissed only apply to Centroid mode.
func NewTracker(mode Mode, maxDistance float64, maxMissed int,
	log *zap.SugaredLogger) *Tracker {

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Tracker{
		mode:        mode,
		maxDistance: maxDistance,
		maxMissed:   maxMissed,
		log:         log,
	}
}

// Mode returns the association mode of the tracker
func (t *Tracker) Mode() Mode {
	return t.mode
}

// Live returns true while a centroid track with the id survives, including
// frames where it was not matched.  Positional identities never outlive
// their frame.
func (t *Tracker) Live(id int) bool {
	for _, tr := range t.tracks {
		if tr.id == id {
			return true
		}
	}
	return false
}

// Reset drops every live track
func (t *Tracker) Reset() {
	t.tracks = nil
	t.nextID = 0
}

// Update associates the poses of a new frame with stream identities.  In
// Positional mode the identity is the list index.  Returned tracks are in
// the order of the poses given.
func (t *Tracker) Update(poses []schlemmer.Pose) ([]Track, error) {

	out := make([]Track, len(poses))

	if t.mode == Positional {
		for i, p := range poses {
			out[i] = Track{ID: i, Pose: p}
		}
		return out, nil
	}

	// centroids of the detections, poses with no confident keypoint get no
	// centroid and always start a new track
	var cols []int
	var centroids []r2.Vec

	for i := range poses {
		if c, ok := poses[i].Centroid(); ok {
			cols = append(cols, i)
			centroids = append(centroids, c)
		}
	}

	cost := make([][]float64, len(t.tracks))

	for i, tr := range t.tracks {
		cost[i] = make([]float64, len(centroids))

		for j, c := range centroids {
			cost[i][j] = r2.Norm(r2.Sub(tr.centroid, c))
		}
	}

	res, err := assign(cost, len(t.tracks), len(centroids), t.maxDistance)

	if err != nil {
		return nil, fmt.Errorf("error assigning poses to tracks: %w", err)
	}

	assigned := make([]bool, len(poses))

	for _, m := range res.matches {
		tr := t.tracks[m.Row]
		tr.centroid = centroids[m.Col]
		tr.missed = 0

		idx := cols[m.Col]
		out[idx] = Track{ID: tr.id, Pose: poses[idx]}
		assigned[idx] = true
	}

	// age out tracks that found no detection
	kept := t.tracks[:0]
	unmatched := make(map[int]bool, len(res.unmatchedRows))

	for _, r := range res.unmatchedRows {
		unmatched[r] = true
	}

	for i, tr := range t.tracks {
		if unmatched[i] {
			tr.missed++

			if tr.missed > t.maxMissed {
				t.log.Debugw("Dropping pose track", "id", tr.id, "missed", tr.missed)
				continue
			}
		}
		kept = append(kept, tr)
	}

	t.tracks = kept

	// start new tracks for everything left
	for i := range poses {
		if assigned[i] {
			continue
		}

		id := t.nextID
		t.nextID++

		if c, ok := poses[i].Centroid(); ok {
			t.tracks = append(t.tracks, &track{id: id, centroid: c})
			t.log.Debugw("Starting pose track", "id", id)
		}

		out[i] = Track{ID: id, Pose: poses[i]}
	}

	return out, nil
}
