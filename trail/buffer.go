package trail

import (
	"github.com/swdee/go-schlemmer/geometry"
)

// Snapshot is a set of sticks captured on one frame
type Snapshot struct {
	// Age is the number of ticks since capture
	Age    int
	Sticks []geometry.Stick
}

// Faded is a trail stick annotated with its fade factor, 1.0 when freshly
// captured falling linearly to 0 as it reaches the maximum age.  The stick
// keeps the connection index it was resolved from.
type Faded struct {
	geometry.Stick
	Fade float64
}

// Buffer keeps a time windowed history of segment snapshots used for
// drawing motion trails.  It is owned by the render loop and is not safe for
// concurrent use.
type Buffer struct {
	// maxAge is the number of ticks a snapshot survives
	maxAge int
	// interval is the number of frames between captures
	interval int
	// frames counts frames since the last capture
	frames int
	// history of captured snapshots, oldest first
	history []*Snapshot
}

// NewBuffer returns a new trail buffer capturing every interval frames and
// keeping snapshots for maxAge ticks
func NewBuffer(interval, maxAge int) *Buffer {
	b := &Buffer{}
	b.SetInterval(interval)
	b.SetMaxAge(maxAge)
	return b
}

// SetMaxAge changes the snapshot lifetime.  Stored snapshots keep their age
// so only future ticks are affected.
func (b *Buffer) SetMaxAge(maxAge int) {
	b.maxAge = maxAge
}

// SetInterval changes the capture cadence, values below 1 capture every frame
func (b *Buffer) SetInterval(interval int) {
	if interval < 1 {
		interval = 1
	}
	b.interval = interval
}

// Interval returns the capture cadence in frames
func (b *Buffer) Interval() int {
	return b.interval
}

// Len returns the number of stored snapshots
func (b *Buffer) Len() int {
	return len(b.history)
}

// Reset clears all history and the capture frame counter
func (b *Buffer) Reset() {
	b.history = nil
	b.frames = 0
}

// Capture adds a snapshot of the sticks to the history
func (b *Buffer) Capture(sticks []geometry.Stick) {

	snap := make([]geometry.Stick, len(sticks))
	copy(snap, sticks)

	b.history = append(b.history, &Snapshot{Sticks: snap})
}

// Offer counts a frame and captures the sticks when the frame counter
// reaches the capture interval.  Returns true if a capture was made.
func (b *Buffer) Offer(sticks []geometry.Stick) bool {

	b.frames++

	if b.frames < b.interval {
		return false
	}

	b.frames = 0
	b.Capture(sticks)

	return true
}

// Tick ages every snapshot by one, evicts those older than the maximum age
// and returns the surviving sticks oldest first with their fade factor
func (b *Buffer) Tick() []Faded {

	kept := b.history[:0]

	for _, snap := range b.history {
		snap.Age++

		if snap.Age > b.maxAge {
			continue
		}

		kept = append(kept, snap)
	}

	// release evicted snapshots held past the end of the kept slice
	for i := len(kept); i < len(b.history); i++ {
		b.history[i] = nil
	}

	b.history = kept

	var out []Faded

	for _, snap := range b.history {
		fade := 1 - float64(snap.Age)/float64(b.maxAge)

		for _, st := range snap.Sticks {
			out = append(out, Faded{Stick: st, Fade: fade})
		}
	}

	return out
}
