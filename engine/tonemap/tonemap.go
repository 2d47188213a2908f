// Package tonemap resolves a marched ray into a display color: background blending by
// transmittance, exposure, the ACES filmic curve and gamma encoding.
package tonemap

import (
	"image/color"
	"math"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/go-gl/mathgl/mgl64"
)

// OpaqueAlpha is the accumulated alpha at which a ray is considered fully covered.
const OpaqueAlpha = 0.99

// Gamma is the display encoding exponent.
const Gamma = 2.2

// ACES fit coefficients.
const (
	acesA = 2.51
	acesB = 0.03
	acesC = 2.43
	acesD = 0.59
	acesE = 0.14

	// above this the curve is already past 1 and the polynomial would overflow
	acesSaturation = 1e4
)

// Composite blends the background behind accumulated disk emission, weighted by the remaining
// transmittance. Rays at or above OpaqueAlpha ignore the background.
//
// Parameters:
//   - c: accumulated front-to-back color
//   - alpha: accumulated alpha
//   - background: starfield radiance in the ray's final direction
//
// Returns:
//   - mgl64.Vec3: the linear HDR color
func Composite(c mgl64.Vec3, alpha float64, background mgl64.Vec3) mgl64.Vec3 {
	if alpha >= OpaqueAlpha {
		return c
	}
	return c.Add(background.Mul(1 - alpha))
}

// ACES applies the filmic curve x(ax+b)/(x(cx+d)+e) and clamps to [0, 1].
// NaN and negative input map to 0, very large input to 1.
func ACES(x float64) float64 {
	switch {
	case math.IsNaN(x) || x <= 0:
		return 0
	case x >= acesSaturation:
		return 1
	}
	return common.Clamp((x*(acesA*x+acesB))/(x*(acesC*x+acesD)+acesE), 0, 1)
}

// ToneMap applies exposure, the ACES curve and gamma encoding per channel.
//
// Parameters:
//   - c: linear HDR color
//   - exposure: linear multiplier applied before the curve
//
// Returns:
//   - mgl64.Vec3: display color with every channel in [0, 1]
func ToneMap(c mgl64.Vec3, exposure float64) mgl64.Vec3 {
	var out mgl64.Vec3
	for i := range 3 {
		out[i] = math.Pow(ACES(c[i]*exposure), 1/Gamma)
	}
	return out
}

// Resolve runs Composite then ToneMap.
//
// Parameters:
//   - c: accumulated color
//   - alpha: accumulated alpha
//   - background: starfield radiance
//   - exposure: linear exposure multiplier
//
// Returns:
//   - mgl64.Vec3: display color in [0, 1]
func Resolve(c mgl64.Vec3, alpha float64, background mgl64.Vec3, exposure float64) mgl64.Vec3 {
	return ToneMap(Composite(c, alpha, background), exposure)
}

// Encode quantizes a display color to 8-bit opaque RGBA.
//
// Parameters:
//   - c: display color, channels are clamped to [0, 1]
//
// Returns:
//   - color.RGBA: the quantized color
func Encode(c mgl64.Vec3) color.RGBA {
	q := func(v float64) uint8 {
		if math.IsNaN(v) {
			return 0
		}
		return uint8(math.Round(common.Clamp(v, 0, 1) * 255))
	}
	return color.RGBA{R: q(c[0]), G: q(c[1]), B: q(c[2]), A: 255}
}
