package camera

import "github.com/go-gl/mathgl/mgl64"

// State is a snapshot of the controller's spherical coordinates around the origin.
// Radius, Theta and Phi are the smoothed values used for rendering; the Target fields are
// the goal the smoothing step converges to.
type State struct {
	Radius float64
	Theta  float64
	Phi    float64

	TargetRadius float64
	TargetTheta  float64
	TargetPhi    float64
}

// CameraController defines the damped orbit controller that feeds the renderer.
// Gesture handlers only move the target coordinates; the current coordinates follow them through
// a first-order low-pass filter applied once per frame by Advance. Radius and polar angle are
// clamped after every mutation.
type CameraController interface {
	// Advance runs one reference frame of auto-rotation and smoothing and returns the pose to render.
	//
	// Parameters:
	//   - autoRotate: drift the target azimuth by the rotate rate
	//   - isDragging: suppresses auto-rotation while the user holds the view
	//
	// Returns:
	//   - position: world-space camera position
	//   - target: look-at point (always the origin)
	Advance(autoRotate, isDragging bool) (position, target mgl64.Vec3)

	// AdvanceBy is Advance generalized to a fractional number of reference frames, so a display
	// running faster or slower than the reference rate converges in the same wall time.
	//
	// Parameters:
	//   - frames: elapsed time expressed in reference frames; values <= 0 leave the state unchanged
	//   - autoRotate: drift the target azimuth by the rotate rate
	//   - isDragging: suppresses auto-rotation while the user holds the view
	//
	// Returns:
	//   - position: world-space camera position
	//   - target: look-at point (always the origin)
	AdvanceBy(frames float64, autoRotate, isDragging bool) (position, target mgl64.Vec3)

	// Rotate adds deltas to the target azimuth and polar angle. The polar angle is clamped immediately.
	//
	// Parameters:
	//   - dTheta: azimuth delta in radians
	//   - dPhi: polar angle delta in radians
	Rotate(dTheta, dPhi float64)

	// Zoom adds delta to the target radius and clamps it.
	//
	// Parameters:
	//   - delta: radius delta, positive moves away from the hole
	//
	// Returns:
	//   - float64: the new target radius
	Zoom(delta float64) float64

	// ZoomIn moves the target radius one zoom step closer.
	//
	// Returns:
	//   - float64: the new target radius
	ZoomIn() float64

	// ZoomOut moves the target radius one zoom step away.
	//
	// Returns:
	//   - float64: the new target radius
	ZoomOut() float64

	// TargetRadius returns the radius the camera is converging to.
	TargetRadius() float64

	// RadiusBounds returns the allowed radius interval.
	RadiusBounds() (min, max float64)

	// PhiBounds returns the allowed polar angle interval.
	PhiBounds() (min, max float64)

	// State returns a copy of the current and target coordinates.
	State() State

	// Position returns the camera position derived from the current (smoothed) coordinates.
	Position() mgl64.Vec3

	// Target returns the look-at point.
	Target() mgl64.Vec3
}
