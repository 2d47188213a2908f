// package common contains common types that are used throughout this renderer. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl64"
)

// Frame is the immutable per-frame snapshot handed from the simulation to a renderer.
// Everything the per-pixel pass reads lives here, so no simulation state is shared while it runs.
type Frame struct {
	// Width and Height are the viewport resolution in pixels.
	Width, Height int
	// Position is the world-space camera position.
	Position mgl64.Vec3
	// Target is the look-at point.
	Target mgl64.Vec3
	// Params is the parameter snapshot for this frame.
	Params SimulationParams
	// Time is the elapsed time in seconds driving noise phases and disk rotation.
	Time float64
	// ScreenOffset shifts normalized screen coordinates before ray construction.
	// A negative Y places the hole above the centre of the image.
	ScreenOffset mgl64.Vec2
}

// Aspect returns the width / height ratio of the frame, or 1 for a degenerate viewport.
func (f Frame) Aspect() float64 {
	if f.Width <= 0 || f.Height <= 0 {
		return 1
	}
	return float64(f.Width) / float64(f.Height)
}

// Scaled returns a copy of the frame with the resolution multiplied by factor.
//
// Parameters:
//   - factor: resolution multiplier, values below 1 are treated as 1
//
// Returns:
//   - Frame: the scaled frame
func (f Frame) Scaled(factor int) Frame {
	if factor < 1 {
		factor = 1
	}
	f.Width *= factor
	f.Height *= factor
	return f
}

// PixelStagingData holds RGBA pixel data for a frame texture pending GPU upload.
type PixelStagingData struct {
	// Pixels is the RGBA byte slice, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the texture width in pixels.
	Width uint32
	// Height is the texture height in pixels.
	Height uint32
	// Stride is the number of bytes between the starts of two rows.
	Stride uint32
}

// NewPixelStagingData wraps an RGBA image for upload without copying its pixels.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - PixelStagingData: staging view of img
//   - error: error if img is nil or empty
func NewPixelStagingData(img *image.RGBA) (PixelStagingData, error) {
	if img == nil {
		return PixelStagingData{}, fmt.Errorf("image is nil")
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return PixelStagingData{}, fmt.Errorf("image has empty bounds %v", b)
	}
	return PixelStagingData{
		Pixels: img.Pix,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
		Stride: uint32(img.Stride),
	}, nil
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero fields are filled with linear/clamp defaults through OrDefault.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail.
	LodMinClamp, LodMaxClamp float32
}

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}
