package schlemmer

// Connection describes one stick drawn between two keypoints of a Pose
type Connection struct {
	// Lower is the keypoint index the stick is anchored to
	Lower int `json:"lower"`
	// Upper is the keypoint index giving the stick direction
	Upper int `json:"upper"`
	// Centered sticks straddle the midpoint of Lower and Upper instead of
	// starting at Lower
	Centered bool `json:"centered"`
	// LengthRatio is the stick length as a fraction of the base length
	LengthRatio float64 `json:"lengthRatio"`
}

// defaultConnections is the stick table used by the installation, arms
// first, then legs, then the shoulder and hip bars
var defaultConnections = [...]Connection{
	{Lower: LeftShoulder, Upper: LeftElbow, LengthRatio: 0.22},
	{Lower: LeftElbow, Upper: LeftWrist, LengthRatio: 0.2},
	{Lower: RightShoulder, Upper: RightElbow, LengthRatio: 0.22},
	{Lower: RightElbow, Upper: RightWrist, LengthRatio: 0.2},
	{Lower: LeftHip, Upper: LeftKnee, LengthRatio: 0.3},
	{Lower: LeftKnee, Upper: LeftAnkle, LengthRatio: 0.28},
	{Lower: RightHip, Upper: RightKnee, LengthRatio: 0.3},
	{Lower: RightKnee, Upper: RightAnkle, LengthRatio: 0.28},
	{Lower: LeftShoulder, Upper: RightShoulder, Centered: true, LengthRatio: 0.35},
	{Lower: LeftHip, Upper: RightHip, Centered: true, LengthRatio: 0.25},
}

// DefaultConnections returns a copy of the stick connection table
func DefaultConnections() []Connection {
	out := make([]Connection, len(defaultConnections))
	copy(out, defaultConnections[:])
	return out
}
