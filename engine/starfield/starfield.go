package starfield

import (
	"math"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Generator evaluates the background seen by rays that leave the scene. The result depends only
// on the ray direction and time, so it has no parallax and no seams under pure rotation.
type Generator interface {
	// Sample returns the linear background radiance in direction dir.
	//
	// Parameters:
	//   - dir: unit direction of the escaping ray
	//   - t: animation time in seconds, drives twinkle and nebula drift
	//
	// Returns:
	//   - mgl64.Vec3: non-negative radiance
	Sample(dir mgl64.Vec3, t float64) mgl64.Vec3
}

// Starfield tuning.
const (
	DefaultStarScale  = 60.0
	detailFrequency   = 12.0
	cloudFrequency    = 3.5
	nebulaGain        = 0.5
	twinkleRate       = 6.0
	twinklePhase      = 15.0
	twinkleDepth      = 0.1
	brightStarCut     = 0.998
	mediumStarCut     = 0.980
	faintStarCut      = 0.95
	faintStarStrength = 0.3
)

var (
	detailTint = mgl64.Vec3{0.05, 0.1, 0.2}
	cloudTint  = mgl64.Vec3{0.2, 0.05, 0.1}

	warmStarA = mgl64.Vec3{1.0, 0.95, 0.8}
	warmStarB = mgl64.Vec3{1.0, 0.7, 0.5}
	coolStarA = mgl64.Vec3{0.7, 0.8, 1.0}
	coolStarB = mgl64.Vec3{0.8, 0.4, 0.3}
)

type generatorImpl struct {
	scale      float64
	starsOnly  bool
	nebulaOnly bool
}

var _ Generator = &generatorImpl{}

// NewGenerator creates the procedural starfield.
//
// Parameters:
//   - options: functional options to configure the generator
//
// Returns:
//   - Generator: the newly created generator
func NewGenerator(options ...GeneratorBuilderOption) Generator {
	g := &generatorImpl{scale: DefaultStarScale}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *generatorImpl) Sample(dir mgl64.Vec3, t float64) mgl64.Vec3 {
	var out mgl64.Vec3
	if !g.starsOnly {
		out = out.Add(nebula(dir, t))
	}
	if !g.nebulaOnly {
		out = out.Add(g.star(dir, t))
	}
	return out
}

// triplanar blends fbm samples taken on the three axis-aligned planes by the normalized absolute
// direction components.
func triplanar(dir mgl64.Vec3, freq, t float64) float64 {
	wx, wy, wz := math.Abs(dir[0]), math.Abs(dir[1]), math.Abs(dir[2])
	sum := wx + wy + wz
	if sum == 0 {
		return 0
	}
	nx := common.FBM(dir[1]*freq, dir[2]*freq, t)
	ny := common.FBM(dir[0]*freq, dir[2]*freq, t)
	nz := common.FBM(dir[0]*freq, dir[1]*freq, t)
	return (nx*wx + ny*wy + nz*wz) / sum
}

func nebula(dir mgl64.Vec3, t float64) mgl64.Vec3 {
	detail := math.Pow(triplanar(dir, detailFrequency, t), 4)
	cloud := math.Pow(triplanar(dir, cloudFrequency, t)*0.9, 3)
	n := detailTint.Mul(detail * 0.04).Add(cloudTint.Mul(cloud * 0.03))
	return common.ClampVec3(n, 0, 1).Mul(nebulaGain)
}

// star voxelizes the direction and draws one of three star classes from the voxel hash.
func (g *generatorImpl) star(dir mgl64.Vec3, t float64) mgl64.Vec3 {
	p := dir.Mul(g.scale)
	id := mgl64.Vec3{math.Floor(p[0]), math.Floor(p[1]), math.Floor(p[2])}
	local := p.Sub(id).Sub(mgl64.Vec3{0.5, 0.5, 0.5})
	d := local.Len()

	r := common.Hash31(id)
	twinkle := math.Sin(t*twinkleRate+r*twinklePhase)*twinkleDepth + (1 - twinkleDepth)

	switch {
	case r > brightStarCut:
		s := common.Smoothstep(0.4, 0.02, d)
		gain := common.Mix(1, 2, common.Fract(r*7))
		return mgl64.Vec3{1, 1, 1}.Mul(gain * s * r * twinkle)
	case r > mediumStarCut:
		s := common.Smoothstep(0.4, 0.10, d)
		return common.MixVec3(warmStarA, warmStarB, common.Fract(r*11)).Mul(s * r * twinkle)
	case r > faintStarCut:
		s := common.Smoothstep(0.4, 0.20, d)
		return common.MixVec3(coolStarA, coolStarB, common.Fract(r*15)).Mul(s * r * faintStarStrength)
	}
	return mgl64.Vec3{}
}
