package input

import (
	"math"
	"testing"

	"github.com/Barometer-2002/A-black-hole/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
)

// recordingTarget captures the deltas the machine emits.
type recordingTarget struct {
	rotations [][2]float64
	zooms     []float64
	radius    float64
}

func (r *recordingTarget) Rotate(dTheta, dPhi float64) {
	r.rotations = append(r.rotations, [2]float64{dTheta, dPhi})
}

func (r *recordingTarget) Zoom(delta float64) float64 {
	r.zooms = append(r.zooms, delta)
	r.radius += delta
	return r.radius
}

func TestPointerDragRotates(t *testing.T) {
	target := &recordingTarget{}
	m := NewInteractionStateMachine(target)

	m.Handle(PointerMove(5, 5))
	if len(target.rotations) != 0 {
		t.Fatalf("move without press rotated the camera: %v", target.rotations)
	}

	m.Handle(PointerDown(100, 100))
	if !m.IsDragging() || m.State().Mode != StateDragging {
		t.Fatalf("expected dragging after PointerDown, got %+v", m.State())
	}
	m.Handle(PointerMove(110, 95))
	m.Handle(PointerMove(110, 95))

	if len(target.rotations) != 2 {
		t.Fatalf("expected 2 rotations, got %d", len(target.rotations))
	}
	got := target.rotations[0]
	want := [2]float64{-10 * DefaultRotateSensitivity, 5 * DefaultRotateSensitivity}
	if math.Abs(got[0]-want[0]) > 1e-12 || math.Abs(got[1]-want[1]) > 1e-12 {
		t.Errorf("first rotation = %v, want %v", got, want)
	}
	if target.rotations[1] != [2]float64{0, 0} {
		t.Errorf("second rotation should be zero after anchor update, got %v", target.rotations[1])
	}

	m.Handle(PointerUp())
	if m.IsDragging() {
		t.Error("still dragging after PointerUp")
	}
	m.Handle(PointerMove(0, 0))
	if len(target.rotations) != 2 {
		t.Errorf("move after release rotated the camera")
	}
}

func TestWheelZoomsAndNotifies(t *testing.T) {
	var messages []string
	cc := camera.NewCameraController()
	m := NewInteractionStateMachine(cc, WithStatusListener(func(msg string) {
		messages = append(messages, msg)
	}))

	m.Handle(Wheel(120))
	m.Handle(Wheel(-0.5))
	m.Handle(Wheel(0))

	if r := cc.TargetRadius(); r != camera.DefaultRadius {
		t.Errorf("TargetRadius() = %v, want %v after out then in", r, camera.DefaultRadius)
	}
	want := []string{"Distance: 27.0 M", "Distance: 25.0 M"}
	if len(messages) != len(want) {
		t.Fatalf("messages = %v, want %v", messages, want)
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, messages[i], want[i])
		}
	}
}

func TestWheelClampsRadius(t *testing.T) {
	cc := camera.NewCameraController()
	m := NewInteractionStateMachine(cc)
	for i := 0; i < 100; i++ {
		m.Handle(Wheel(-1))
	}
	if r := cc.TargetRadius(); r != camera.DefaultMinRadius {
		t.Errorf("TargetRadius() = %v, want %v", r, camera.DefaultMinRadius)
	}
}

func TestHugeDragKeepsPhiInRange(t *testing.T) {
	cc := camera.NewCameraController()
	m := NewInteractionStateMachine(cc)
	minPhi, maxPhi := cc.PhiBounds()

	m.Handle(PointerDown(0, 0))
	for _, y := range []float64{1e7, -1e7, 3e9, -4e12} {
		m.Handle(PointerMove(0, y))
		phi := cc.State().TargetPhi
		if phi < minPhi || phi > maxPhi {
			t.Fatalf("TargetPhi %v left [%v, %v] after drag to y=%v", phi, minPhi, maxPhi, y)
		}
	}
}

func TestPinchZooms(t *testing.T) {
	target := &recordingTarget{radius: 25}
	var messages []string
	m := NewInteractionStateMachine(target, WithStatusListener(func(msg string) {
		messages = append(messages, msg)
	}))

	m.Handle(Touch(mgl64.Vec2{0, 0}, mgl64.Vec2{100, 0}))
	if s := m.State(); s.Mode != StatePinching || s.LastPinchDistance != 100 {
		t.Fatalf("state after two-finger start = %+v", s)
	}
	if len(target.zooms) != 0 {
		t.Fatalf("starting a pinch must not zoom, got %v", target.zooms)
	}

	// fingers spread by 40 pixels: zoom in by 40 * scale
	m.Handle(Touch(mgl64.Vec2{0, 0}, mgl64.Vec2{140, 0}))
	if len(target.zooms) != 1 || math.Abs(target.zooms[0]+40*DefaultPinchScale) > 1e-12 {
		t.Fatalf("zooms = %v, want [%v]", target.zooms, -40*DefaultPinchScale)
	}
	if m.State().LastPinchDistance != 140 {
		t.Errorf("pinch baseline not updated: %v", m.State().LastPinchDistance)
	}
	if len(messages) != 1 || messages[0] != "Distance: 23.0 M" {
		t.Errorf("messages = %v", messages)
	}
}

func TestTwoToOneFingerResetsBaseline(t *testing.T) {
	target := &recordingTarget{radius: 25}
	m := NewInteractionStateMachine(target)

	m.Handle(Touch(mgl64.Vec2{0, 0}, mgl64.Vec2{100, 0}))
	m.Handle(Touch(mgl64.Vec2{0, 0}, mgl64.Vec2{120, 0}))
	zooms := len(target.zooms)

	// lift the second finger: remaining finger becomes a fresh drag anchor
	m.Handle(Touch(mgl64.Vec2{300, 300}))
	if len(target.zooms) != zooms {
		t.Errorf("count change applied a pinch delta: %v", target.zooms)
	}
	if len(target.rotations) != 0 {
		t.Errorf("count change applied a rotation: %v", target.rotations)
	}
	if s := m.State(); s.Mode != StateDragging || s.LastPointer != (mgl64.Vec2{300, 300}) {
		t.Fatalf("state after 2->1 = %+v", s)
	}

	m.Handle(Touch(mgl64.Vec2{310, 300}))
	if len(target.rotations) != 1 {
		t.Fatalf("expected one rotation, got %v", target.rotations)
	}
	if math.Abs(target.rotations[0][0]+10*DefaultRotateSensitivity) > 1e-12 {
		t.Errorf("rotation used a stale anchor: %v", target.rotations[0])
	}

	// back to two fingers re-records the distance instead of zooming
	m.Handle(Touch(mgl64.Vec2{0, 0}, mgl64.Vec2{50, 0}))
	if len(target.zooms) != zooms {
		t.Errorf("1->2 transition zoomed: %v", target.zooms)
	}
	if m.IsDragging() {
		t.Error("pinching should clear the drag flag")
	}

	m.Handle(Touch())
	if s := m.State(); s.Mode != StateIdle || s.Dragging || s.Touches != 0 {
		t.Errorf("state after release = %+v", s)
	}
}
