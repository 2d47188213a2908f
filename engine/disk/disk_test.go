package disk

import (
	"math"
	"testing"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

var down = mgl64.Vec3{0, -1, 0}

func TestRadialFadeFallsTowardEdges(t *testing.T) {
	s := NewShader()
	inner, outer := s.Bounds()
	mid := (inner + outer) / 2
	const eps = 1e-3

	if !(s.RadialFade(inner+eps) < s.RadialFade(mid)) {
		t.Errorf("fade at inner edge %v not below middle %v", s.RadialFade(inner+eps), s.RadialFade(mid))
	}
	if !(s.RadialFade(outer-eps) < s.RadialFade(mid)) {
		t.Errorf("fade at outer edge %v not below middle %v", s.RadialFade(outer-eps), s.RadialFade(mid))
	}

	prev := 0.0
	for r := inner; r <= inner+InnerFadeWidth; r += 0.01 {
		f := s.RadialFade(r)
		if f < prev {
			t.Fatalf("inner fade not monotonic at r=%v", r)
		}
		prev = f
	}
	prev = 1.0
	for r := outer - OuterFadeWidth; r < outer; r += 0.05 {
		f := s.RadialFade(r)
		if f > prev {
			t.Fatalf("outer fade not monotonic at r=%v", r)
		}
		prev = f
	}
}

func TestIntensityEdgesBelowMiddle(t *testing.T) {
	s := NewShader()
	p := common.DefaultSimulationParams()
	inner, outer := s.Bounds()
	mid := (inner + outer) / 2
	const eps = 1e-3

	checked := 0
	for i := 0; i < 16; i++ {
		a := float64(i) * math.Pi / 8
		at := func(r float64) float64 {
			v, _ := s.Intensity(mgl64.Vec3{r * math.Cos(a), 0, r * math.Sin(a)}, down, p, 0)
			return v
		}
		middle := at(mid)
		if middle <= 0 {
			continue
		}
		checked++
		if lo := at(inner + eps); !(lo < middle) {
			t.Errorf("angle %v: inner-edge intensity %v not below middle %v", a, lo, middle)
		}
		if hi := at(outer - eps); !(hi < middle) {
			t.Errorf("angle %v: outer-edge intensity %v not below middle %v", a, hi, middle)
		}
	}
	if checked == 0 {
		t.Fatal("no angle produced a positive mid-disk intensity")
	}
}

func TestContains(t *testing.T) {
	s := NewShader()
	tests := []struct {
		name     string
		pos      mgl64.Vec3
		expected bool
	}{
		{"mid plane", mgl64.Vec3{8, 0, 0}, true},
		{"inside thickness", mgl64.Vec3{0, 0.15, 8}, true},
		{"above thickness", mgl64.Vec3{8, 0.2, 0}, false},
		{"inside inner radius", mgl64.Vec3{2.9, 0, 0}, false},
		{"at outer radius", mgl64.Vec3{14, 0, 0}, false},
		{"at inner radius", mgl64.Vec3{3, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Contains(tt.pos); got != tt.expected {
				t.Errorf("Contains(%v) = %v, want %v", tt.pos, got, tt.expected)
			}
		})
	}
}

func TestDopplerBeaming(t *testing.T) {
	term, boost := doppler(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, 3)
	if term != 0 || boost != 1 {
		t.Errorf("on-axis doppler = (%v, %v), want neutral (0, 1)", term, boost)
	}

	s := NewShader()
	p := common.DefaultSimulationParams()
	pos := mgl64.Vec3{8.5, 0, 0}
	approaching, tA := s.Intensity(pos, mgl64.Vec3{0, 0, 1}, p, 0)
	side, tS := s.Intensity(pos, mgl64.Vec3{1, 0, 0}, p, 0)
	receding, tR := s.Intensity(pos, mgl64.Vec3{0, 0, -1}, p, 0)

	if tA != 1 || tS != 0 || tR != -1 {
		t.Fatalf("doppler terms = %v, %v, %v, want 1, 0, -1", tA, tS, tR)
	}
	if !(approaching > side && side > receding) {
		t.Errorf("beaming order wrong: approaching %v, side %v, receding %v", approaching, side, receding)
	}
}

func TestShadeHueShift(t *testing.T) {
	s := NewShader()
	pos := mgl64.Vec3{8.5, 0, 0}
	dir := mgl64.Vec3{0, 0, 1}

	plain := common.DefaultSimulationParams()
	plain.DopplerColorShift = 0
	shifted := plain
	shifted.DopplerColorShift = 0.15

	a := s.Shade(pos, dir, plain, 0)
	b := s.Shade(pos, dir, shifted, 0)
	if !a.Emits() || !b.Emits() {
		t.Fatalf("expected emission at %v: %+v %+v", pos, a, b)
	}
	if a.Alpha != b.Alpha {
		t.Errorf("hue shift changed alpha: %v vs %v", a.Alpha, b.Alpha)
	}

	hA, _, vA := colorful.Color{R: a.Color[0], G: a.Color[1], B: a.Color[2]}.Hsv()
	hB, _, vB := colorful.Color{R: b.Color[0], G: b.Color[1], B: b.Color[2]}.Hsv()
	if d := hB - hA; math.Abs(d-0.15*360) > 1e-6 {
		t.Errorf("hue moved by %v degrees, want %v", d, 0.15*360)
	}
	if math.Abs(vA-vB) > 1e-9 {
		t.Errorf("hue shift changed value: %v vs %v", vA, vB)
	}
}

func TestShadeOutsideDiskIsEmpty(t *testing.T) {
	s := NewShader()
	got := s.Shade(mgl64.Vec3{30, 0, 0}, down, common.DefaultSimulationParams(), 0)
	if got != (Sample{}) {
		t.Errorf("Shade outside disk = %+v, want zero sample", got)
	}
}

func TestTemperatureGradient(t *testing.T) {
	cool := temperature(0.05)
	hot := temperature(2)
	if cool[1] != 0 || cool[0] <= 0 {
		t.Errorf("dim samples should be pure red, got %v", cool)
	}
	if !hot.ApproxEqualThreshold(mgl64.Vec3{2.3, 1.5, 0.8}, 1e-12) {
		t.Errorf("saturated gradient = %v, want (2.3, 1.5, 0.8)", hot)
	}
}
