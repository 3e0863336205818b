package schlemmer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

/* skeleton keypoints
0: Nose
1: Left Eye
2: Right Eye
3: Left Ear
4: Right Ear
5: Left Shoulder
6: Right Shoulder
7: Left Wrist
8: Right Wrist
9: Left Elbow
10: Right Elbow
11: Left Hip
12: Right Hip
13: Left Knee
14: Right Knee
15: Left Ankle
16: Right Ankle
*/

const (
	Nose = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftWrist
	RightWrist
	LeftElbow
	RightElbow
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle

	// KeyPointsTotal is the number of keypoints in a skeleton
	KeyPointsTotal = 17
)

// ConfidenceThreshold is the score at or below which a keypoint is treated
// as absent by every stage of the pipeline
const ConfidenceThreshold = 0.1

// keyPointNames are indexed by keypoint number
var keyPointNames = [KeyPointsTotal]string{
	"nose", "left_eye", "right_eye", "left_ear", "right_ear",
	"left_shoulder", "right_shoulder", "left_wrist", "right_wrist",
	"left_elbow", "right_elbow", "left_hip", "right_hip",
	"left_knee", "right_knee", "left_ankle", "right_ankle",
}

// KeyPointName returns the name of the keypoint at the given index, or an
// empty string if the index is out of range
func KeyPointName(idx int) string {
	if idx < 0 || idx >= KeyPointsTotal {
		return ""
	}
	return keyPointNames[idx]
}

// KeyPoint is a single body landmark produced by the pose estimator
type KeyPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Confidence is the estimator score in the range [0,1]
	Confidence float64 `json:"confidence"`
	Name       string  `json:"name"`
}

// Valid returns true if the keypoint is confident enough to be used
func (k KeyPoint) Valid() bool {
	return k.Confidence > ConfidenceThreshold &&
		!math.IsNaN(k.X) && !math.IsNaN(k.Y) &&
		!math.IsInf(k.X, 0) && !math.IsInf(k.Y, 0)
}

// Vec returns the keypoint position as a vector
func (k KeyPoint) Vec() r2.Vec {
	return r2.Vec{X: k.X, Y: k.Y}
}

// Pose is the fixed length set of keypoints for one detected person.  Being
// an array, assigning a Pose copies it.
type Pose [KeyPointsTotal]KeyPoint

// NewPose returns a Pose with every keypoint named and zero confidence
func NewPose() Pose {
	var p Pose

	for i := range p {
		p[i].Name = keyPointNames[i]
	}

	return p
}

// Set places keypoint idx at the given coordinates and confidence
func (p *Pose) Set(idx int, x, y, confidence float64) {
	p[idx] = KeyPoint{
		X:          x,
		Y:          y,
		Confidence: confidence,
		Name:       keyPointNames[idx],
	}
}

// ValidCount returns the number of confident keypoints in the pose
func (p *Pose) ValidCount() int {
	count := 0

	for _, kp := range p {
		if kp.Valid() {
			count++
		}
	}

	return count
}

// Centroid returns the mean position of the confident keypoints.  False is
// returned when no keypoint is confident.
func (p *Pose) Centroid() (r2.Vec, bool) {

	var sum r2.Vec
	count := 0

	for _, kp := range p {
		if !kp.Valid() {
			continue
		}
		sum = r2.Add(sum, kp.Vec())
		count++
	}

	if count == 0 {
		return r2.Vec{}, false
	}

	return r2.Scale(1/float64(count), sum), true
}

// ClonePoses returns a structural copy of the pose list that shares no
// memory with the source
func ClonePoses(poses []Pose) []Pose {
	if poses == nil {
		return nil
	}

	out := make([]Pose, len(poses))
	copy(out, poses)

	return out
}
