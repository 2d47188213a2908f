package input

import "fmt"

// Target receives the camera-target deltas produced by the machine.
// camera.CameraController satisfies it.
type Target interface {
	// Rotate adds azimuth and polar deltas to the camera target, clamping the polar angle.
	Rotate(dTheta, dPhi float64)
	// Zoom adds a radius delta to the camera target and returns the clamped result.
	Zoom(delta float64) float64
}

// StatusListener receives short human-readable notifications such as the new zoom distance.
type StatusListener func(message string)

// InteractionStateMachine turns raw pointer, wheel and touch events into camera-target deltas.
// It never touches render state; all effects go through its Target.
type InteractionStateMachine interface {
	// Handle feeds one event through the transition table.
	//
	// Parameters:
	//   - ev: the event to process
	Handle(ev Event)

	// IsDragging reports whether a pointer or single finger is currently held.
	//
	// Returns:
	//   - bool: true while dragging
	IsDragging() bool

	// State returns a snapshot of the gesture bookkeeping.
	//
	// Returns:
	//   - State: the current state
	State() State

	// Reset drops any gesture in progress and returns to StateIdle.
	Reset()
}

// FormatDistance renders the zoom status notification for a target radius.
//
// Parameters:
//   - radius: the new target radius
//
// Returns:
//   - string: notification text
func FormatDistance(radius float64) string {
	return fmt.Sprintf("Distance: %.1f M", radius)
}
