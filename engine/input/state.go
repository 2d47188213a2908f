package input

import "github.com/go-gl/mathgl/mgl64"

// Mode is the gesture the machine is currently tracking.
type Mode uint8

const (
	StateIdle     Mode = iota // No pointer or finger held
	StateDragging             // One pointer or finger held, moves rotate the camera
	StatePinching             // Two fingers held, distance changes zoom the camera
)

// String returns a readable name for the mode.
func (m Mode) String() string {
	switch m {
	case StateDragging:
		return "dragging"
	case StatePinching:
		return "pinching"
	default:
		return "idle"
	}
}

// State is a snapshot of the gesture bookkeeping.
type State struct {
	Mode              Mode
	Dragging          bool
	LastPointer       mgl64.Vec2
	LastPinchDistance float64
	Touches           int
}
