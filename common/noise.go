package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FBMOctaves is the number of noise layers summed by FBM.
const FBMOctaves = 6

const (
	fbmRotation    = 0.7
	fbmLacunarity  = 2.5
	fbmOctaveShift = 1.3
	fbmTimeDrift   = 0.01
)

var fbmSin, fbmCos = math.Sincos(fbmRotation)

// Hash2 maps a 2D lattice point to a deterministic pseudo-random value in [0, 1).
//
// Parameters:
//   - x, y: lattice coordinates
//
// Returns:
//   - float64: hash value in [0, 1)
func Hash2(x, y float64) float64 {
	x = Fract(x * 123.34)
	y = Fract(y * 456.21)
	d := x*(x+45.32) + y*(y+45.32)
	x += d
	y += d
	return Fract(x * y)
}

// Hash31 maps a 3D lattice cell to a deterministic pseudo-random value in [0, 1).
// Used to pick the star class of a voxel.
//
// Parameters:
//   - p: integer-valued cell coordinates
//
// Returns:
//   - float64: hash value in [0, 1)
func Hash31(p mgl64.Vec3) float64 {
	x := Fract(p[0]*0.3183+0.1) * 17
	y := Fract(p[1]*0.3183+0.1) * 17
	z := Fract(p[2]*0.3183+0.1) * 17
	return Fract(x * y * z * (x + y + z))
}

// ValueNoise evaluates smooth value noise at (x, y), bilinearly blending the Hash2 values of the
// four surrounding lattice corners with a cubic fade.
//
// Parameters:
//   - x, y: sample coordinates
//
// Returns:
//   - float64: noise value in [0, 1)
func ValueNoise(x, y float64) float64 {
	ix, iy := math.Floor(x), math.Floor(y)
	fx, fy := x-ix, y-iy
	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	a := Hash2(ix, iy)
	b := Hash2(ix+1, iy)
	c := Hash2(ix, iy+1)
	d := Hash2(ix+1, iy+1)
	return Mix(Mix(a, b, ux), Mix(c, d, ux), uy)
}

// FBM sums FBMOctaves layers of ValueNoise with halving amplitude. Between layers the sample
// point is rotated by a fixed angle and scaled, and every layer drifts slowly with time t.
//
// Parameters:
//   - x, y: sample coordinates
//   - t: animation time in seconds
//
// Returns:
//   - float64: fractal noise value, bounded by [0, 1)
func FBM(x, y, t float64) float64 {
	v, a := 0.0, 0.5
	for i := range FBMOctaves {
		shift := float64(i)*fbmOctaveShift + t*fbmTimeDrift
		v += a * ValueNoise(x+shift, y+shift)
		x, y = (fbmCos*x-fbmSin*y)*fbmLacunarity, (fbmSin*x+fbmCos*y)*fbmLacunarity
		a *= 0.5
	}
	return v
}
