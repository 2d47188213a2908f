package scene

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/input"
	"github.com/Barometer-2002/A-black-hole/engine/renderer"
)

type statusLog struct {
	mu       sync.Mutex
	messages []string
}

func (l *statusLog) add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *statusLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

func newTestSimulation(t *testing.T, options ...SimulationBuilderOption) (Simulation, *statusLog) {
	t.Helper()
	log := &statusLog{}
	r := renderer.NewRenderer(renderer.BackendTypeCPU, nil, renderer.WithWorkers(2))
	t.Cleanup(r.Release)
	opts := append([]SimulationBuilderOption{
		WithRenderer(r),
		WithViewport(8, 6),
		WithStatusListener(log.add),
	}, options...)
	return NewSimulation(opts...), log
}

func TestZoomCommandsNotify(t *testing.T) {
	sim, log := newTestSimulation(t)

	if got := sim.ZoomIn(); got != 22 {
		t.Errorf("ZoomIn = %v, want 22", got)
	}
	if got := sim.ZoomOut(); got != 25 {
		t.Errorf("ZoomOut = %v, want 25", got)
	}
	if got := sim.Zoom(100); got != 60 {
		t.Errorf("Zoom(100) = %v, want the 60 clamp", got)
	}

	want := []string{"Distance: 22.0 M", "Distance: 25.0 M", "Distance: 60.0 M"}
	got := log.all()
	if len(got) != len(want) {
		t.Fatalf("messages = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAutoRotate(t *testing.T) {
	sim, log := newTestSimulation(t)
	if !sim.AutoRotate() {
		t.Fatal("auto-rotate should default to on")
	}

	before := sim.Camera().State().TargetTheta
	sim.Advance(1)
	if after := sim.Camera().State().TargetTheta; after <= before {
		t.Errorf("target theta %v -> %v, expected drift", before, after)
	}

	sim.SetAutoRotate(false)
	before = sim.Camera().State().TargetTheta
	sim.Advance(10)
	if after := sim.Camera().State().TargetTheta; after != before {
		t.Errorf("target theta moved with auto-rotate off: %v -> %v", before, after)
	}
	if msgs := log.all(); len(msgs) != 1 || msgs[0] != "Auto Rotate: OFF" {
		t.Errorf("messages = %q", msgs)
	}
}

func TestDragSuppressesAutoRotate(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.Input().Handle(input.PointerDown(10, 10))

	before := sim.Camera().State().TargetTheta
	sim.Advance(5)
	if after := sim.Camera().State().TargetTheta; after != before {
		t.Errorf("auto-rotate drifted during a drag: %v -> %v", before, after)
	}

	sim.Input().Handle(input.PointerMove(60, 10))
	if after := sim.Camera().State().TargetTheta; after >= before {
		t.Errorf("dragging right should decrease theta: %v -> %v", before, after)
	}
}

func TestSetParamsTakesEffectAtAdvance(t *testing.T) {
	sim, _ := newTestSimulation(t)
	p := common.DefaultSimulationParams()
	p.Exposure = 1.5
	p.DopplerPower = 50

	sim.SetParams(p)
	if got := sim.Params().Exposure; got != common.DefaultSimulationParams().Exposure {
		t.Errorf("params changed before Advance: exposure = %v", got)
	}

	frame := sim.Advance(1)
	if frame.Params.Exposure != 1.5 {
		t.Errorf("frame exposure = %v, want 1.5", frame.Params.Exposure)
	}
	if frame.Params.DopplerPower != 5 {
		t.Errorf("doppler power = %v, want the clamp at 5", frame.Params.DopplerPower)
	}
	if math.Abs(frame.Time-1/ReferenceFrameRate) > 1e-12 {
		t.Errorf("time = %v", frame.Time)
	}
}

func TestHandleAction(t *testing.T) {
	sim, _ := newTestSimulation(t)

	for _, a := range []common.Action{common.ActionHueUp, common.ActionHueUp, common.ActionExposureDown} {
		if !sim.HandleAction(a) {
			t.Errorf("action %v not handled", a)
		}
	}
	for _, a := range []common.Action{common.ActionCapture, common.ActionQuit, common.ActionNone} {
		if sim.HandleAction(a) {
			t.Errorf("action %v should be left to the host", a)
		}
	}

	p := sim.Advance(0).Params
	if math.Abs(p.HueShift-0.1) > 1e-9 {
		t.Errorf("hue = %v, want 0.1", p.HueShift)
	}
	if math.Abs(p.Exposure-(common.DefaultSimulationParams().Exposure-ExposureStep)) > 1e-9 {
		t.Errorf("exposure = %v", p.Exposure)
	}

	sim.HandleAction(common.ActionToggleAutoRotate)
	if sim.AutoRotate() {
		t.Error("toggle should switch auto-rotate off")
	}
}

func TestFrameUsesPixelRatio(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.SetPixelRatio(0.5)
	f := sim.Frame()
	if f.Width != 4 || f.Height != 3 {
		t.Errorf("frame = %dx%d, want 4x3", f.Width, f.Height)
	}
	sim.SetPixelRatio(100)
	if sim.PixelRatio() != MaxPixelRatio {
		t.Errorf("ratio = %v", sim.PixelRatio())
	}
}

func TestCaptureHighResolutionFrame(t *testing.T) {
	sim, log := newTestSimulation(t)
	sim.Advance(1)

	img, err := sim.CaptureHighResolutionFrame(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("capture = %v, want 32x24", b)
	}
	if sim.PixelRatio() != 1 {
		t.Errorf("pixel ratio after capture = %v, want 1", sim.PixelRatio())
	}
	if f := sim.Frame(); f.Width != 8 || f.Height != 6 {
		t.Errorf("interactive frame = %dx%d", f.Width, f.Height)
	}
	if msgs := log.all(); len(msgs) != 1 || msgs[0] != StatusCapturing {
		t.Errorf("messages = %q", msgs)
	}
}

func TestCaptureLeavesInteractiveFrameAlone(t *testing.T) {
	var sim Simulation
	var during []common.Frame
	sim, _ = newTestSimulation(t, WithStatusListener(func(msg string) {
		if msg == StatusCapturing {
			during = append(during, sim.Frame())
			sim.SetPixelRatio(0.5)
		}
	}))

	img, err := sim.CaptureHighResolutionFrame(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(during) != 1 {
		t.Fatalf("capture status seen %d times, want 1", len(during))
	}
	if f := during[0]; f.Width != 8 || f.Height != 6 {
		t.Errorf("interactive frame during capture = %dx%d, want 8x6", f.Width, f.Height)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("capture = %v, want 32x24", b)
	}
	if got := sim.PixelRatio(); got != 0.5 {
		t.Errorf("pixel ratio set during capture = %v, want 0.5 kept", got)
	}
}

func TestCaptureCancelled(t *testing.T) {
	sim, log := newTestSimulation(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sim.CaptureHighResolutionFrame(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(log.all()) != 0 {
		t.Errorf("cancelled capture emitted %q", log.all())
	}
}

func TestCaptureInProgress(t *testing.T) {
	sim, _ := newTestSimulation(t)
	sim.(*simulation).capturing.Store(true)
	if _, err := sim.CaptureHighResolutionFrame(context.Background()); !errors.Is(err, ErrCaptureInProgress) {
		t.Errorf("err = %v", err)
	}
}

func TestCaptureWithoutRenderer(t *testing.T) {
	sim := NewSimulation(WithViewport(4, 4))
	if _, err := sim.CaptureHighResolutionFrame(context.Background()); !errors.Is(err, ErrNoRenderer) {
		t.Errorf("err = %v", err)
	}
	if sim.PixelRatio() != 1 {
		t.Errorf("pixel ratio = %v", sim.PixelRatio())
	}
}

func TestSaveHighResolutionFrame(t *testing.T) {
	sim, log := newTestSimulation(t, WithViewport(4, 3))
	dir := t.TempDir()

	path, err := sim.SaveHighResolutionFrame(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("path = %s", path)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("stat %s: %v", path, err)
	}
	msgs := log.all()
	if len(msgs) != 2 || msgs[1] != StatusSaved {
		t.Errorf("messages = %q", msgs)
	}
}

func TestStatusBoard(t *testing.T) {
	now := time.Unix(100, 0)
	b := NewStatusBoard(StatusTitle, time.Second)
	b.now = func() time.Time { return now }

	if text, active := b.Text(); text != StatusTitle || active {
		t.Errorf("initial = %q %v", text, active)
	}
	b.Show("Distance: 22.0 M")
	if text, active := b.Text(); text != "Distance: 22.0 M" || !active {
		t.Errorf("after Show = %q %v", text, active)
	}
	now = now.Add(2 * time.Second)
	if text, _ := b.Text(); text != StatusTitle {
		t.Errorf("after timeout = %q", text)
	}
}

func TestCaptureFileName(t *testing.T) {
	got := CaptureFileName(time.UnixMilli(1700000000123))
	if got != "BlackHole_Schwarzschild_GR_1700000000123.png" {
		t.Errorf("got %q", got)
	}
}
