package camera

import (
	"math"
	"testing"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/go-gl/mathgl/mgl64"
)

func TestZoomInThenOutRestoresTarget(t *testing.T) {
	cc := NewCameraController()
	start := cc.TargetRadius()

	in := cc.ZoomIn()
	if in != start-DefaultZoomStep {
		t.Errorf("ZoomIn() = %v, want %v", in, start-DefaultZoomStep)
	}
	out := cc.ZoomOut()
	if out != start {
		t.Errorf("ZoomOut() after ZoomIn() = %v, want %v", out, start)
	}
}

func TestRepeatedZoomInStopsAtMinimum(t *testing.T) {
	cc := NewCameraController()
	for i := 0; i < 50; i++ {
		if r := cc.ZoomIn(); r < DefaultMinRadius {
			t.Fatalf("ZoomIn() #%d = %v, below minimum %v", i, r, DefaultMinRadius)
		}
	}
	if r := cc.TargetRadius(); r != DefaultMinRadius {
		t.Errorf("TargetRadius() = %v, want %v", r, DefaultMinRadius)
	}
	for i := 0; i < 50; i++ {
		cc.ZoomOut()
	}
	if r := cc.TargetRadius(); r != DefaultMaxRadius {
		t.Errorf("TargetRadius() = %v, want %v", r, DefaultMaxRadius)
	}
}

func TestRotateClampsPhi(t *testing.T) {
	tests := []struct {
		name    string
		dPhi    float64
		wantPhi float64
	}{
		{"huge positive", 1e9, math.Pi - DefaultPhiMargin},
		{"huge negative", -1e9, DefaultPhiMargin},
		{"small", 0.2, math.Pi/2 + 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController()
			cc.Rotate(0, tt.dPhi)
			got := cc.State().TargetPhi
			if math.Abs(got-tt.wantPhi) > 1e-12 {
				t.Errorf("TargetPhi = %v, want %v", got, tt.wantPhi)
			}
			// clamping an already clamped value is a no-op
			cc.Rotate(0, 0)
			if again := cc.State().TargetPhi; again != got {
				t.Errorf("TargetPhi changed on zero rotate: %v -> %v", got, again)
			}
		})
	}
}

func TestAdvanceConvergesWithoutOvershoot(t *testing.T) {
	cc := NewCameraController()
	cc.Zoom(100)
	prev := cc.State().Radius
	for i := 0; i < 300; i++ {
		cc.Advance(false, false)
		r := cc.State().Radius
		if r < prev {
			t.Fatalf("radius decreased at frame %d: %v -> %v", i, prev, r)
		}
		if r > DefaultMaxRadius {
			t.Fatalf("radius overshot target at frame %d: %v", i, r)
		}
		prev = r
	}
	if math.Abs(prev-DefaultMaxRadius) > 1e-6 {
		t.Errorf("radius after 300 frames = %v, want ~%v", prev, DefaultMaxRadius)
	}
}

func TestAdvanceSingleFrameSmoothing(t *testing.T) {
	cc := NewCameraController()
	cc.Zoom(10)
	cc.Advance(false, false)
	want := DefaultRadius + 10*DefaultSmoothing
	if got := cc.State().Radius; math.Abs(got-want) > 1e-12 {
		t.Errorf("radius after one frame = %v, want %v", got, want)
	}
}

func TestAdvanceByMatchesRepeatedFrames(t *testing.T) {
	a := NewCameraController()
	b := NewCameraController()
	a.Zoom(20)
	b.Zoom(20)

	a.AdvanceBy(2, false, false)
	b.Advance(false, false)
	b.Advance(false, false)

	if math.Abs(a.State().Radius-b.State().Radius) > 1e-9 {
		t.Errorf("AdvanceBy(2) radius %v, two Advance() radius %v", a.State().Radius, b.State().Radius)
	}
}

func TestAutoRotateSuppressedWhileDragging(t *testing.T) {
	cc := NewCameraController()
	cc.Advance(true, true)
	if theta := cc.State().TargetTheta; theta != 0 {
		t.Errorf("TargetTheta while dragging = %v, want 0", theta)
	}
	cc.Advance(true, false)
	if theta := cc.State().TargetTheta; math.Abs(theta-DefaultRotateRate) > 1e-15 {
		t.Errorf("TargetTheta after auto-rotate = %v, want %v", theta, DefaultRotateRate)
	}
}

func TestAdvanceReturnsCartesianPose(t *testing.T) {
	cc := NewCameraController(WithTheta(0.3), WithPhi(1.1), WithRadius(12))
	pos, target := cc.Advance(false, false)
	want := common.SphericalToCartesian(12, 0.3, 1.1)
	if !pos.ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("position = %v, want %v", pos, want)
	}
	if target != (mgl64.Vec3{}) {
		t.Errorf("target = %v, want origin", target)
	}
}

func TestConstructorClampsOptions(t *testing.T) {
	cc := NewCameraController(WithRadius(500), WithPhi(0))
	s := cc.State()
	if s.Radius != DefaultMaxRadius || s.TargetRadius != DefaultMaxRadius {
		t.Errorf("radius not clamped: %+v", s)
	}
	if s.Phi != DefaultPhiMargin || s.TargetPhi != DefaultPhiMargin {
		t.Errorf("phi not clamped: %+v", s)
	}
}

func TestBoundsOptions(t *testing.T) {
	cc := NewCameraController(WithRadiusBounds(5, 30), WithPhiBounds(0.5, 2.5))

	if lo, hi := cc.RadiusBounds(); lo != 5 || hi != 30 {
		t.Errorf("RadiusBounds() = (%v, %v), want (5, 30)", lo, hi)
	}
	if lo, hi := cc.PhiBounds(); lo != 0.5 || hi != 2.5 {
		t.Errorf("PhiBounds() = (%v, %v), want (0.5, 2.5)", lo, hi)
	}
	if got := cc.Zoom(100); got != 30 {
		t.Errorf("Zoom(100) = %v, want the upper bound 30", got)
	}
	if got := cc.Zoom(-100); got != 5 {
		t.Errorf("Zoom(-100) = %v, want the lower bound 5", got)
	}
}
