package touch

import (
	"testing"
	"time"

	"github.com/Barometer-2002/A-black-hole/engine/renderer"
	"github.com/Barometer-2002/A-black-hole/engine/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

func newTestGame(t *testing.T, options ...GameBuilderOption) (*Game, scene.Simulation) {
	t.Helper()
	r := renderer.NewRenderer(renderer.BackendTypeCPU, nil, renderer.WithWorkers(2))
	t.Cleanup(r.Release)
	sim := scene.NewSimulation(scene.WithRenderer(r), scene.WithViewport(8, 6))
	return NewGame(sim, options...), sim
}

func TestPinchZooms(t *testing.T) {
	g, sim := newTestGame(t)

	steps := []Snapshot{
		{Touches: []mgl64.Vec2{{100, 100}, {200, 100}}},
		{Touches: []mgl64.Vec2{{80, 100}, {220, 100}}},
		{},
	}
	for _, s := range steps {
		if err := g.Apply(s); err != nil {
			t.Fatal(err)
		}
	}

	if got := sim.Camera().TargetRadius(); got != 23 {
		t.Errorf("radius = %v, want 23", got)
	}
	if text, _ := g.Status().Text(); text != "Distance: 23.0 M" {
		t.Errorf("status = %q", text)
	}
	if sim.Input().IsDragging() {
		t.Error("lifting every finger should end the gesture")
	}
}

func TestSingleFingerRotates(t *testing.T) {
	g, sim := newTestGame(t)
	before := sim.Camera().State().TargetTheta

	g.Apply(Snapshot{Touches: []mgl64.Vec2{{10, 10}}})
	g.Apply(Snapshot{Touches: []mgl64.Vec2{{60, 10}}})
	if !sim.Input().IsDragging() {
		t.Error("one finger should drag")
	}
	g.Apply(Snapshot{})

	if sim.Camera().State().TargetTheta == before {
		t.Error("finger drag did not rotate the camera")
	}
}

func TestFocusLossDropsGesture(t *testing.T) {
	g, sim := newTestGame(t)

	g.Apply(Snapshot{Touches: []mgl64.Vec2{{10, 10}}})
	g.Apply(Snapshot{Touches: []mgl64.Vec2{{40, 10}}})
	if !sim.Input().IsDragging() {
		t.Fatal("one finger should drag")
	}

	g.Apply(Snapshot{Touches: []mgl64.Vec2{{40, 10}}, Unfocused: true})
	if sim.Input().IsDragging() {
		t.Error("losing focus should end the drag")
	}

	// The next touch anchors where it lands instead of jumping from the old finger.
	before := sim.Camera().State().TargetTheta
	g.Apply(Snapshot{Touches: []mgl64.Vec2{{300, 10}}})
	if got := sim.Camera().State().TargetTheta; got != before {
		t.Errorf("first touch after focus loss rotated the camera: theta %v -> %v", before, got)
	}
}

func TestMouseFallback(t *testing.T) {
	g, sim := newTestGame(t)
	before := sim.Camera().State().TargetTheta

	g.Apply(Snapshot{MouseDown: true, Cursor: mgl64.Vec2{5, 5}})
	g.Apply(Snapshot{MouseDown: true, Cursor: mgl64.Vec2{45, 5}})
	g.Apply(Snapshot{Cursor: mgl64.Vec2{45, 5}})

	if sim.Camera().State().TargetTheta == before {
		t.Error("mouse drag did not rotate the camera")
	}
	if sim.Input().IsDragging() {
		t.Error("release should end the drag")
	}
}

func TestWheelAndKeys(t *testing.T) {
	g, sim := newTestGame(t)

	// scrolling up moves closer
	g.Apply(Snapshot{WheelY: 1})
	if got := sim.Camera().TargetRadius(); got != 23 {
		t.Errorf("radius after wheel = %v, want 23", got)
	}

	if err := g.Apply(Snapshot{Runes: []rune{'-', 'r'}}); err != nil {
		t.Fatal(err)
	}
	if got := sim.Camera().TargetRadius(); got != 26 {
		t.Errorf("radius after '-' = %v, want 26", got)
	}
	if sim.AutoRotate() {
		t.Error("'r' should turn auto-rotate off")
	}

	if err := g.Apply(Snapshot{Runes: []rune{'q'}}); err != ebiten.Termination {
		t.Errorf("'q' err = %v", err)
	}
	if err := g.Apply(Snapshot{Escape: true}); err != ebiten.Termination {
		t.Errorf("Esc err = %v", err)
	}
}

func TestUpdateAdvancesClock(t *testing.T) {
	now := time.Unix(100, 0)
	g, sim := newTestGame(t, WithClock(func() time.Time { return now }))

	now = now.Add(500 * time.Millisecond)
	g.advance()

	if got := sim.Time(); got < 0.499 || got > 0.501 {
		t.Errorf("time = %v, want 0.5", got)
	}
}

func TestLayoutSetsViewport(t *testing.T) {
	g, sim := newTestGame(t)
	if w, h := g.Layout(320, 240); w != 320 || h != 240 {
		t.Errorf("layout = %dx%d", w, h)
	}
	if w, h := sim.Viewport(); w != 320 || h != 240 {
		t.Errorf("viewport = %dx%d", w, h)
	}
}
