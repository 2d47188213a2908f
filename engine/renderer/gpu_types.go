package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Barometer-2002/A-black-hole/common"
)

// GPUFrameUniformSource is the canonical WGSL definition of the FrameUniform struct.
// Matches GPUFrameUniform layout exactly (48 bytes).
//
//go:embed assets/frame_uniform.wgsl
var GPUFrameUniformSource string

//go:embed assets/blackhole.wgsl
var kernelSource string

//go:embed assets/present.wgsl
var presentSource string

// GPUFrameUniform carries the per-frame scalars of the kernel: resolution, time, mass and the
// parameter snapshot. BloomStrength is forwarded for post effects and not used by the kernel.
// Size: 48 bytes.
type GPUFrameUniform struct {
	Resolution        [2]float32 // offset  0
	Time              float32    // offset  8
	Mass              float32    // offset 12
	DopplerPower      float32    // offset 16
	DopplerColorShift float32    // offset 20
	LuminosityScale   float32    // offset 24
	HueShift          float32    // offset 28
	Exposure          float32    // offset 32
	BloomStrength     float32    // offset 36
	_pad              [2]float32 // offset 40: padding to 48 bytes
}

// NewGPUFrameUniform packs a frame into its GPU layout.
//
// Parameters:
//   - frame: the frame snapshot
//   - mass: the hole mass in geometric units
//
// Returns:
//   - GPUFrameUniform: the packed uniform
func NewGPUFrameUniform(frame common.Frame, mass float64) GPUFrameUniform {
	p := frame.Params
	return GPUFrameUniform{
		Resolution:        [2]float32{float32(frame.Width), float32(frame.Height)},
		Time:              float32(frame.Time),
		Mass:              float32(mass),
		DopplerPower:      float32(p.DopplerPower),
		DopplerColorShift: float32(p.DopplerColorShift),
		LuminosityScale:   float32(p.LuminosityScale),
		HueShift:          float32(p.HueShift),
		Exposure:          float32(p.Exposure),
		BloomStrength:     float32(p.BloomStrength),
	}
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	fields := []float32{
		g.Resolution[0], g.Resolution[1], g.Time, g.Mass,
		g.DopplerPower, g.DopplerColorShift, g.LuminosityScale, g.HueShift,
		g.Exposure, g.BloomStrength,
	}
	for i, f := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
