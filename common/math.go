package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Clamp restricts x to the closed interval [lo, hi].
//
// Parameters:
//   - x: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float64: x limited to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Smoothstep performs Hermite interpolation between 0 and 1 as x moves from edge0 to edge1.
// Reversed edges (edge0 > edge1) produce a falling curve, which the disk fades rely on.
//
// Parameters:
//   - edge0: value of x that maps to 0
//   - edge1: value of x that maps to 1
//   - x: the input value
//
// Returns:
//   - float64: the smoothed value in [0, 1]
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Mix linearly interpolates between a and b by t.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - float64: a + (b - a) * t
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MixVec3 linearly interpolates each component of a and b by t.
//
// Parameters:
//   - a: vector at t = 0
//   - b: vector at t = 1
//   - t: interpolation factor
//
// Returns:
//   - mgl64.Vec3: the interpolated vector
func MixVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Fract returns the fractional part of x, always in [0, 1) for finite x.
//
// Parameters:
//   - x: the input value
//
// Returns:
//   - float64: x - floor(x)
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Mod returns x modulo y with the sign of y, matching shader mod semantics.
//
// Parameters:
//   - x: the dividend
//   - y: the divisor
//
// Returns:
//   - float64: x - y * floor(x / y)
func Mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// ClampVec3 restricts every component of v to [lo, hi].
//
// Parameters:
//   - v: the vector to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - mgl64.Vec3: the clamped vector
func ClampVec3(v mgl64.Vec3, lo, hi float64) mgl64.Vec3 {
	return mgl64.Vec3{Clamp(v[0], lo, hi), Clamp(v[1], lo, hi), Clamp(v[2], lo, hi)}
}

// SphericalToCartesian converts polar-angle spherical coordinates around the origin to a
// Y-up Cartesian point: x = r sinφ cosθ, y = r cosφ, z = r sinφ sinθ.
//
// Parameters:
//   - radius: distance from the origin
//   - theta: azimuth around the Y axis in radians
//   - phi: polar angle measured from +Y in radians
//
// Returns:
//   - mgl64.Vec3: the Cartesian point
func SphericalToCartesian(radius, theta, phi float64) mgl64.Vec3 {
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return mgl64.Vec3{
		radius * sinPhi * cosTheta,
		radius * cosPhi,
		radius * sinPhi * sinTheta,
	}
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
