package geodesic

import (
	"math"
	"testing"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

func deflection(a, b mgl64.Vec3) float64 {
	return math.Acos(common.Clamp(a.Normalize().Dot(b.Normalize()), -1, 1))
}

func TestZeroMassRaysAreStraight(t *testing.T) {
	m := NewMarcher(WithMass(0))
	p := common.DefaultSimulationParams()

	dirs := []mgl64.Vec3{
		{-1, 0, 0},
		{1, 0, 0},
		{-1, 0.2, 0.1},
		{-0.3, -1, 0.4},
		{0, 0, 1},
	}
	for _, radius := range []float64{60, 75, 120} {
		for _, d := range dirs {
			origin := mgl64.Vec3{radius, 0, 0}
			res := m.March(common.Ray{Origin: origin, Direction: d}, p, 0)

			if !res.SeesBackground() {
				t.Errorf("r=%v dir=%v: termination %v, want escape", radius, d, res.Termination)
			}
			if !res.Direction.ApproxEqualThreshold(d.Normalize(), 1e-12) {
				t.Errorf("r=%v dir=%v: direction changed to %v", radius, d, res.Direction)
			}
			offset := res.Position.Sub(origin)
			if offset.Len() > 0 && offset.Normalize().Cross(d.Normalize()).Len() > 1e-9 {
				t.Errorf("r=%v dir=%v: end point %v off the straight line", radius, d, res.Position)
			}
			if res.Alpha != 0 || res.DiskSamples != 0 {
				t.Errorf("r=%v dir=%v: massless hole should have no disk, got alpha %v", radius, d, res.Alpha)
			}
		}
	}
}

func TestLensingVanishesWithMass(t *testing.T) {
	p := common.DefaultSimulationParams()
	ray := common.Ray{Origin: mgl64.Vec3{20, 60, 0}, Direction: mgl64.Vec3{0, -1, 0}}

	prev := math.Inf(1)
	for _, mass := range []float64{1, 0.1, 0.001} {
		res := NewMarcher(WithMass(mass)).March(ray, p, 0)
		if res.Termination != Escaped {
			t.Fatalf("mass %v: termination %v, want escaped", mass, res.Termination)
		}
		bend := deflection(ray.Direction, res.Direction)
		if !(bend < prev) {
			t.Errorf("mass %v: deflection %v not below %v", mass, bend, prev)
		}
		prev = bend
	}
	if prev > 1e-3 {
		t.Errorf("deflection at mass 0.001 = %v, want < 1e-3", prev)
	}
}

func TestSmallImpactParameterIsCaptured(t *testing.T) {
	m := NewMarcher()
	p := common.DefaultSimulationParams()
	maxSteps, _ := m.Limits()

	type aim struct{ radius, b float64 }
	var cases []aim
	for _, radius := range []float64{2.5, 3, 10, 25, 40, 60} {
		for _, b := range []float64{0, 0.5, 1, 1.5} {
			cases = append(cases, aim{radius, b})
		}
	}
	// Offsets up to 4 M still fall inside the shadow from the usual viewing distances.
	for _, radius := range []float64{10, 25, 60} {
		for _, b := range []float64{2, 3, 4} {
			cases = append(cases, aim{radius, b})
		}
	}
	cases = append(cases, aim{2.5, 2})

	for _, c := range cases {
		origin := mgl64.Vec3{0, c.radius, 0}
		target := mgl64.Vec3{c.b, 0, 0}
		res := m.March(common.Ray{Origin: origin, Direction: target.Sub(origin)}, p, 0)

		if res.Termination != Captured {
			t.Errorf("r=%v b=%v: termination %v after %d steps, want captured", c.radius, c.b, res.Termination, res.Steps)
			continue
		}
		if res.Steps >= maxSteps {
			t.Errorf("r=%v b=%v: captured only at the step cap", c.radius, c.b)
		}
		if res.Alpha != 1 {
			t.Errorf("r=%v b=%v: captured alpha %v, want 1", c.radius, c.b, res.Alpha)
		}
		if res.SeesBackground() {
			t.Errorf("r=%v b=%v: captured ray must not see the background", c.radius, c.b)
		}
	}
}

func TestOutwardRayEscapes(t *testing.T) {
	res := NewMarcher().March(common.Ray{Origin: mgl64.Vec3{25, 5, 0}, Direction: mgl64.Vec3{1, 0.2, 0}}, common.DefaultSimulationParams(), 0)
	if res.Termination != Escaped {
		t.Fatalf("termination %v, want escaped", res.Termination)
	}
	if r := res.Position.Len(); r <= DefaultMaxDistance {
		t.Errorf("escaped at r=%v, want beyond %v", r, DefaultMaxDistance)
	}
}

func TestStepCapTreatedAsEscape(t *testing.T) {
	res := NewMarcher(WithMaxSteps(5)).March(common.Ray{Origin: mgl64.Vec3{25, 0, 0}, Direction: mgl64.Vec3{0, 1, 0}}, common.DefaultSimulationParams(), 0)
	if res.Termination != MaxStepsReached {
		t.Fatalf("termination %v, want max-steps", res.Termination)
	}
	if res.Steps != 5 || !res.SeesBackground() {
		t.Errorf("steps %d, sees background %v", res.Steps, res.SeesBackground())
	}
}

func defaultView() camera.View {
	pos, target := camera.NewCameraController().Advance(false, false)
	return camera.NewView(common.Frame{
		Width:        101,
		Height:       101,
		Position:     pos,
		Target:       target,
		ScreenOffset: mgl64.Vec2{0, camera.DefaultScreenOffsetY},
	})
}

func TestCentrePixelIsCaptured(t *testing.T) {
	view := defaultView()
	if !view.Origin.ApproxEqualThreshold(mgl64.Vec3{25, 0, 0}, 1e-9) {
		t.Fatalf("default camera at %v, want (25, 0, 0)", view.Origin)
	}

	res := NewMarcher().March(view.PixelRay(50, 50), common.DefaultSimulationParams(), 0)
	if res.Termination != Captured {
		t.Errorf("centre pixel termination %v after %d steps, want captured", res.Termination, res.Steps)
	}
}

func TestDiskPixelShowsDopplerHue(t *testing.T) {
	view := defaultView()
	// an in-plane ray right of centre: misses the shadow, runs through the disk band on the
	// side whose material moves along the ray
	ray := view.Ray(0.45, 0)
	m := NewMarcher()

	plain := common.DefaultSimulationParams()
	plain.DopplerColorShift = 0
	shifted := plain
	shifted.DopplerColorShift = 0.15

	a := m.March(ray, plain, 0)
	b := m.March(ray, shifted, 0)

	for _, res := range []MarchResult{a, b} {
		if res.Termination == Captured {
			t.Fatalf("disk pixel was captured; it should clear the photon sphere")
		}
		if res.Alpha <= 0 || res.DiskSamples == 0 {
			t.Fatalf("disk pixel has no disk contribution: %+v", res)
		}
		if res.MeanDopplerTerm() <= 0 {
			t.Fatalf("disk pixel mean doppler term %v, want approaching side (> 0)", res.MeanDopplerTerm())
		}
	}
	if a.Alpha != b.Alpha {
		t.Errorf("colour shift changed alpha: %v vs %v", a.Alpha, b.Alpha)
	}

	hA, _, _ := colorful.Color{R: a.Color[0], G: a.Color[1], B: a.Color[2]}.Hsv()
	hB, _, _ := colorful.Color{R: b.Color[0], G: b.Color[1], B: b.Color[2]}.Hsv()
	if !(hB > hA) {
		t.Errorf("approaching-side hue %v not shifted past unshifted hue %v", hB, hA)
	}
}

func TestAlphaStaysInUnitRange(t *testing.T) {
	view := defaultView()
	m := NewMarcher()
	p := common.DefaultSimulationParams()
	p.LuminosityScale = 5
	for x := 0; x < 101; x += 10 {
		res := m.March(view.PixelRay(x, 50), p, 0)
		if res.Alpha < 0 || res.Alpha > 1 {
			t.Errorf("pixel %d alpha %v outside [0, 1]", x, res.Alpha)
		}
	}
}
