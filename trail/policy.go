package trail

import "fmt"

// Kind identifies a trail policy variant
type Kind int

const (
	// None draws no trails
	None Kind = iota
	// Decaying captures segments at an interval and fades them out
	Decaying
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Decaying:
		return "decaying"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a kind name back to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "none":
		return None, nil
	case "decaying":
		return Decaying, nil
	}
	return None, fmt.Errorf("unknown trail kind %q", s)
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Policy selects how a visualizer leaves trails behind the sticks
type Policy struct {
	Kind Kind `json:"kind"`
	// Interval is the number of frames between captures
	Interval int `json:"interval"`
	// MaxAge is the number of frames a captured snapshot stays visible
	MaxAge int `json:"maxAge"`
}

// NoTrail returns the policy that disables trails
func NoTrail() Policy {
	return Policy{Kind: None}
}

// DecayingTrail returns a policy capturing every interval frames and keeping
// snapshots for maxAge frames
func DecayingTrail(interval, maxAge int) Policy {
	return Policy{Kind: Decaying, Interval: interval, MaxAge: maxAge}
}

// Enabled returns true if the policy draws trails
func (p Policy) Enabled() bool {
	return p.Kind == Decaying
}

// Apply brings the buffer in line with the policy.  Switching to None clears
// the buffer so stale segments do not reappear once trails are re-enabled.
func (b *Buffer) Apply(p Policy) {

	if !p.Enabled() {
		if len(b.history) > 0 || b.frames > 0 {
			b.Reset()
		}
		return
	}

	b.SetInterval(p.Interval)
	b.SetMaxAge(p.MaxAge)
}
