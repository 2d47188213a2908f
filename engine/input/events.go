package input

import "github.com/go-gl/mathgl/mgl64"

// EventType identifies the kind of raw input delivered to the machine.
type EventType uint8

const (
	EventPointerDown EventType = iota // Primary button pressed at (X, Y)
	EventPointerMove                  // Pointer moved to (X, Y)
	EventPointerUp                    // Primary button released or pointer left the surface
	EventWheel                        // Wheel scrolled by Delta, positive moves away from the hole
	EventTouch                        // Active touch points changed, Points lists every finger still down
)

// Event is a delivery-agnostic input sample. Window, terminal and touch front ends translate
// their native events into these so the machine can be driven by synthetic sequences in tests.
type Event struct {
	Type   EventType
	X, Y   float64
	Delta  float64
	Points []mgl64.Vec2
}

// PointerDown builds an EventPointerDown at (x, y).
func PointerDown(x, y float64) Event { return Event{Type: EventPointerDown, X: x, Y: y} }

// PointerMove builds an EventPointerMove at (x, y).
func PointerMove(x, y float64) Event { return Event{Type: EventPointerMove, X: x, Y: y} }

// PointerUp builds an EventPointerUp.
func PointerUp() Event { return Event{Type: EventPointerUp} }

// Wheel builds an EventWheel with the given scroll delta.
func Wheel(delta float64) Event { return Event{Type: EventWheel, Delta: delta} }

// Touch builds an EventTouch from the fingers currently down.
func Touch(points ...mgl64.Vec2) Event { return Event{Type: EventTouch, Points: points} }
