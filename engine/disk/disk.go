package disk

import (
	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Sample is the emission of one disk sample point.
type Sample struct {
	// Color is the hue-shifted emission color.
	Color mgl64.Vec3
	// Alpha is the opacity contributed by this sample.
	Alpha float64
	// Intensity is the unclamped emissive intensity the color and alpha derive from.
	Intensity float64
	// DopplerTerm is dot(orbital velocity, ray direction), in [-1, 1]; 0 on the rotation axis.
	DopplerTerm float64
}

// Emits reports whether the sample contributes anything.
func (s Sample) Emits() bool {
	return s.Alpha > 0
}

// Shader evaluates the emissive accretion disk: a thin turbulent band in the y = 0 plane rotating
// around the Y axis with Keplerian-like angular speed, brightened on the side moving along the ray.
type Shader interface {
	// Contains reports whether pos lies inside the disk volume.
	//
	// Parameters:
	//   - pos: world-space sample position
	//
	// Returns:
	//   - bool: true when |y| < thickness(r) and inner <= r < outer
	Contains(pos mgl64.Vec3) bool

	// Shade evaluates color and alpha at a point inside the disk.
	// Points outside the disk, and points whose intensity does not exceed the emission
	// threshold, return the zero Sample.
	//
	// Parameters:
	//   - pos: world-space sample position
	//   - dir: unit ray direction at the sample
	//   - params: the frame's parameter snapshot
	//   - t: animation time in seconds
	//
	// Returns:
	//   - Sample: the contribution of this point
	Shade(pos, dir mgl64.Vec3, params common.SimulationParams, t float64) Sample

	// Intensity returns the emissive intensity and Doppler term at pos without the color stage.
	Intensity(pos, dir mgl64.Vec3, params common.SimulationParams, t float64) (intensity, dopplerTerm float64)

	// Density returns the animated turbulence density in [0, 1] at pos.
	Density(pos mgl64.Vec3, t float64) float64

	// RadialFade returns the smooth falloff toward the inner and outer edges at radius r.
	RadialFade(r float64) float64

	// Thickness returns the half-height of the disk at radius r.
	Thickness(r float64) float64

	// Bounds returns the inner and outer radius.
	Bounds() (inner, outer float64)
}
