package geodesic

import (
	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/disk"
	"github.com/go-gl/mathgl/mgl64"
)

// Integrator defaults.
const (
	DefaultMass         = 1.0
	DefaultMaxSteps     = 1000
	DefaultMaxDistance  = 150.0
	DefaultMinStep      = 0.005
	DefaultStepScale    = 0.01
	DefaultBendGuard    = 0.1
	DefaultBendStrength = 1.5
	SaturationAlpha     = 0.99
)

type marcherImpl struct {
	mass        float64
	maxSteps    int
	maxDistance float64
	minStep     float64
	stepScale   float64
	bendGuard   float64
	bendGain    float64

	disk disk.Shader
}

var _ Marcher = &marcherImpl{}

// NewMarcher creates a ray marcher for a unit-mass hole with the default disk.
// When no disk shader is supplied, one scaled to the configured mass is created.
//
// Parameters:
//   - options: functional options to configure the integrator
//
// Returns:
//   - Marcher: the newly created marcher
func NewMarcher(options ...MarcherBuilderOption) Marcher {
	m := &marcherImpl{
		mass:        DefaultMass,
		maxSteps:    DefaultMaxSteps,
		maxDistance: DefaultMaxDistance,
		minStep:     DefaultMinStep,
		stepScale:   DefaultStepScale,
		bendGuard:   DefaultBendGuard,
		bendGain:    DefaultBendStrength,
	}
	for _, option := range options {
		option(m)
	}
	if m.disk == nil {
		m.disk = disk.NewShader(disk.WithMass(m.mass))
	}
	return m
}

func (m *marcherImpl) Mass() float64 {
	return m.mass
}

func (m *marcherImpl) SchwarzschildRadius() float64 {
	return 2 * m.mass
}

func (m *marcherImpl) Limits() (int, float64) {
	return m.maxSteps, m.maxDistance
}

// bend returns the direction after one step of the two-term acceleration model:
// Newtonian M/r² plus the 3M²/r⁴ correction, pulling toward the origin.
func (m *marcherImpl) bend(pos, dir mgl64.Vec3, r, h float64) mgl64.Vec3 {
	if m.mass == 0 || r <= m.bendGuard*2*m.mass || r == 0 {
		return dir
	}
	r2 := r * r
	k := (m.mass/r2 + 3*m.mass*m.mass/(r2*r2)) * h * m.bendGain
	return dir.Add(pos.Mul(-k / r)).Normalize()
}

func (m *marcherImpl) March(ray common.Ray, params common.SimulationParams, t float64) MarchResult {
	rs := m.SchwarzschildRadius()
	pos := ray.Origin
	dir := ray.Direction.Normalize()

	var res MarchResult
	for i := 0; i < m.maxSteps; i++ {
		r := pos.Len()
		switch {
		case r < rs:
			res.Alpha = 1
			res.Termination = Captured
		case res.Alpha >= SaturationAlpha:
			res.Termination = Saturated
		case r > m.maxDistance:
			res.Termination = Escaped
		}
		if res.Termination != Marching {
			res.Steps = i
			res.Position, res.Direction = pos, dir
			return res
		}

		h := max(m.minStep, r*m.stepScale)
		dir = m.bend(pos, dir, r, h)
		pos = pos.Add(dir.Mul(h))

		if !m.disk.Contains(pos) {
			continue
		}
		s := m.disk.Shade(pos, dir, params, t)
		if !s.Emits() {
			continue
		}
		res.Color = res.Color.Add(s.Color.Mul(s.Alpha * (1 - res.Alpha)))
		res.Alpha = min(res.Alpha+s.Alpha, 1)
		res.EmittedAlpha += s.Alpha
		res.DopplerWeight += s.Alpha * s.DopplerTerm
		res.DiskSamples++
	}

	res.Termination = MaxStepsReached
	res.Steps = m.maxSteps
	res.Position, res.Direction = pos, dir
	return res
}
