/*
go-schlemmer turns live human pose estimation keypoints into stylized
geometric overlays for projection installations, in the spirit of Oskar
Schlemmer's stick costumes.

The root package holds the shared data model: the 17 point Pose,
the fixed stick connection table, calibration of the base stick length,
the pose feed handing detections to the render loop and the JSON lines pose
stream codec.  Processing stages live in sub packages:

  - config: tunable settings, validation, file loading and hot reload
  - filter: exponential keypoint smoothing and polygon region masking
  - geometry: resolving a pose into stick line segments
  - trail: time windowed history of segments with linear fade
  - spring: damped mass-spring curves that lag behind the sticks
  - tracker: optional nearest centroid identity assignment
  - render: drawing targets, coordinate transforms and palette
  - visualizer: the per frame pipeline and frame loop

See example code and usage in the example subdirectory.
*/
package schlemmer
