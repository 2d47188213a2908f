package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of a View.
// The basis is computed on the CPU so both kernels share the pole fallback.
// Size: 64 bytes (std430 / WGSL aligned).
type GPUCameraUniform struct {
	Position [3]float32 // offset  0: ray origin (vec3<f32>)
	Aspect   float32    // offset 12: width / height
	Forward  [3]float32 // offset 16: view direction (vec3<f32>)
	OffsetX  float32    // offset 28: horizontal screen offset
	Right    [3]float32 // offset 32: right axis (vec3<f32>)
	OffsetY  float32    // offset 44: vertical screen offset
	Up       [3]float32 // offset 48: up axis (vec3<f32>)
	_pad     float32    // offset 60: padding to 64 bytes
}

// NewGPUCameraUniform packs a View into its GPU layout.
//
// Parameters:
//   - v: the per-frame view
//
// Returns:
//   - GPUCameraUniform: the packed uniform
func NewGPUCameraUniform(v View) GPUCameraUniform {
	return GPUCameraUniform{
		Position: [3]float32{float32(v.Origin[0]), float32(v.Origin[1]), float32(v.Origin[2])},
		Aspect:   float32(v.Aspect),
		Forward:  [3]float32{float32(v.Forward[0]), float32(v.Forward[1]), float32(v.Forward[2])},
		OffsetX:  float32(v.Offset[0]),
		Right:    [3]float32{float32(v.Right[0]), float32(v.Right[1]), float32(v.Right[2])},
		OffsetY:  float32(v.Offset[1]),
		Up:       [3]float32{float32(v.Up[0]), float32(v.Up[1]), float32(v.Up[2])},
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(offset int, v [3]float32, w float32) {
		for i := range 3 {
			binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v[i]))
		}
		binary.LittleEndian.PutUint32(buf[offset+12:], math.Float32bits(w))
	}
	put(0, g.Position, g.Aspect)
	put(16, g.Forward, g.OffsetX)
	put(32, g.Right, g.OffsetY)
	put(48, g.Up, 0)
	return buf
}
