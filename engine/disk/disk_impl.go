package disk

import (
	"math"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Disk geometry and emission constants, radii in units of mass.
const (
	InnerRadius      = 3.0
	OuterRadius      = 14.0
	BaseThickness    = 0.1
	ThicknessSlope   = 0.01
	InnerFadeWidth   = 0.2
	OuterFadeWidth   = 3.0
	AlphaCoupling    = 0.25
	EmissionCutoff   = 0.01
	VelocityEpsilon  = 1e-5
	orbitSpeedFactor = 4.0
	orbitPhaseRate   = 0.15
	warpScale        = 0.5
	warpDriftA       = 0.06
	warpDriftB       = 0.04
	warpStrength     = 3.5
)

var (
	edgeColor = mgl64.Vec3{0.3, 0.0, 0.0}
	mainColor = mgl64.Vec3{1.0, 0.5, 0.0}
	hotColor  = mgl64.Vec3{1.0, 1.0, 0.8}
)

type shaderImpl struct {
	inner, outer  float64
	baseThickness float64
	slope         float64
	alphaCoupling float64
	cutoff        float64
}

var _ Shader = &shaderImpl{}

// NewShader creates a disk shader for a unit-mass hole unless overridden by options.
//
// Parameters:
//   - options: functional options to configure geometry and emission
//
// Returns:
//   - Shader: the newly created shader
func NewShader(options ...ShaderBuilderOption) Shader {
	s := &shaderImpl{
		inner:         InnerRadius,
		outer:         OuterRadius,
		baseThickness: BaseThickness,
		slope:         ThicknessSlope,
		alphaCoupling: AlphaCoupling,
		cutoff:        EmissionCutoff,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *shaderImpl) Bounds() (float64, float64) {
	return s.inner, s.outer
}

func (s *shaderImpl) Thickness(r float64) float64 {
	return s.baseThickness + s.slope*r
}

func (s *shaderImpl) Contains(pos mgl64.Vec3) bool {
	r := pos.Len()
	return math.Abs(pos[1]) < s.Thickness(r) && r >= s.inner && r < s.outer
}

func (s *shaderImpl) RadialFade(r float64) float64 {
	return common.Smoothstep(s.inner, s.inner+InnerFadeWidth, r) *
		common.Smoothstep(s.outer, s.outer-OuterFadeWidth, r)
}

func (s *shaderImpl) Density(pos mgl64.Vec3, t float64) float64 {
	r := pos.Len()
	if r <= 0 {
		return 0
	}
	angle := math.Atan2(pos[2], pos[0])
	speed := orbitSpeedFactor / math.Sqrt(r)
	sin, cos := math.Sincos(angle + t*speed*orbitPhaseRate)
	u, v := cos*r, sin*r

	wu := common.FBM(u*warpScale+t*warpDriftA, v*warpScale+t*warpDriftA, t)
	wv := common.FBM(u*warpScale-t*warpDriftB, v*warpScale-t*warpDriftB, t)
	cloud := common.FBM(u+wu*warpStrength, v*2+wv*warpStrength, t)
	return common.Smoothstep(0.1, 0.9, cloud)
}

// doppler returns the beaming term and the brightness multiplier at pos.
// Inside the velocity epsilon the orbital direction is undefined and the result is neutral.
func doppler(pos, dir mgl64.Vec3, power float64) (float64, float64) {
	rxz := math.Hypot(pos[0], pos[2])
	if rxz <= VelocityEpsilon {
		return 0, 1
	}
	vel := mgl64.Vec3{-pos[2], 0, pos[0]}.Mul(1 / rxz)
	term := vel.Dot(dir)
	return term, math.Pow(1+term, power)
}

func (s *shaderImpl) Intensity(pos, dir mgl64.Vec3, p common.SimulationParams, t float64) (float64, float64) {
	r := pos.Len()
	h := math.Abs(pos[1])
	radial := s.RadialFade(r)
	vertical := common.Smoothstep(s.Thickness(r), 0, h)
	if radial == 0 || vertical == 0 {
		return 0, 0
	}
	term, boost := doppler(pos, dir, p.DopplerPower)
	return s.Density(pos, t) * radial * vertical * boost * p.LuminosityScale, term
}

func (s *shaderImpl) Shade(pos, dir mgl64.Vec3, p common.SimulationParams, t float64) Sample {
	if !s.Contains(pos) {
		return Sample{}
	}
	intensity, term := s.Intensity(pos, dir, p, t)
	if intensity <= s.cutoff {
		return Sample{Intensity: intensity, DopplerTerm: term}
	}
	return Sample{
		Color:       shiftHue(temperature(intensity), term*p.DopplerColorShift+p.HueShift),
		Alpha:       intensity * s.alphaCoupling,
		Intensity:   intensity,
		DopplerTerm: term,
	}
}

// temperature maps intensity to the three-band gradient: a dim red edge, an orange body and a
// near-white core that only appears for bright samples.
func temperature(t float64) mgl64.Vec3 {
	c := edgeColor.Mul(common.Smoothstep(0, 0.2, t))
	c = c.Add(mainColor.Mul(common.Smoothstep(0.1, 0.6, t)))
	return c.Add(hotColor.Mul(common.Smoothstep(0.5, 1.5, t)))
}

// shiftHue rotates the hue of c by turns (1 = full circle). Values above 1 are preserved.
func shiftHue(c mgl64.Vec3, turns float64) mgl64.Vec3 {
	if turns == 0 {
		return c
	}
	h, sat, val := colorful.Color{R: c[0], G: c[1], B: c[2]}.Hsv()
	hue := common.Mod(h/360+turns, 1)
	if hue >= 1 {
		hue = 0
	}
	out := colorful.Hsv(hue*360, sat, val)
	return mgl64.Vec3{out.R, out.G, out.B}
}
