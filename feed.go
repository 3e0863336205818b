package schlemmer

import (
	"sync"
	"time"
)

// Snapshot is one published set of poses from the detector
type Snapshot struct {
	// Poses detected in the frame, in detector output order
	Poses []Pose
	// Seq increments with every publication
	Seq uint64
	// At is the time the poses were published
	At time.Time
}

// Feed hands pose lists from the detection goroutine to the render loop.
// The detector publishes whenever it has a result and the render loop reads
// the most recent one without waiting, so a reader may see the same
// snapshot for several frames.
type Feed struct {
	mu     sync.Mutex
	latest Snapshot
	now    func() time.Time
}

// NewFeed returns an empty pose feed
func NewFeed() *Feed {
	return &Feed{now: time.Now}
}

// Publish replaces the current snapshot with a copy of poses
func (f *Feed) Publish(poses []Pose) {

	clone := ClonePoses(poses)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.latest = Snapshot{
		Poses: clone,
		Seq:   f.latest.Seq + 1,
		At:    f.now(),
	}
}

// Latest returns the most recently published snapshot.  The returned poses
// are a copy the caller may modify.
func (f *Feed) Latest() Snapshot {
	f.mu.Lock()
	snap := f.latest
	f.mu.Unlock()

	snap.Poses = ClonePoses(snap.Poses)

	return snap
}
