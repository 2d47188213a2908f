package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// RendererBackendType selects how frames are produced and where they end up.
type RendererBackendType int

const (
	// BackendTypeCPU traces frames on the CPU worker pool and returns them as images. No surface is needed.
	BackendTypeCPU RendererBackendType = iota

	// BackendTypeWGPU runs the geodesic kernel per fragment on the GPU and presents to the surface.
	BackendTypeWGPU

	// BackendTypeCPUPresent traces frames on the CPU and presents them through a WGPU texture.
	BackendTypeCPUPresent
)

var backendNames = map[RendererBackendType]string{
	BackendTypeCPU:        "cpu",
	BackendTypeWGPU:       "gpu",
	BackendTypeCPUPresent: "present",
}

// String returns the flag name of the backend type.
func (t RendererBackendType) String() string {
	if name, ok := backendNames[t]; ok {
		return name
	}
	return fmt.Sprintf("RendererBackendType(%d)", int(t))
}

// NeedsSurface reports whether the backend draws into a window surface.
func (t RendererBackendType) NeedsSurface() bool {
	return t == BackendTypeWGPU || t == BackendTypeCPUPresent
}

// ParseBackendType converts a flag value ("cpu", "gpu" or "present") to a backend type.
//
// Parameters:
//   - s: the flag value, case-insensitive
//
// Returns:
//   - RendererBackendType: the parsed backend
//   - error: error if s names no backend
func ParseBackendType(s string) (RendererBackendType, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for t, name := range backendNames {
		if name == want {
			return t, nil
		}
	}
	return BackendTypeCPU, fmt.Errorf("unknown renderer backend %q (want cpu, gpu or present)", s)
}

// PresentMode controls how rendered frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync synchronizes frame presentation with the display refresh rate.
	// Eliminates tearing but caps FPS to the monitor's refresh rate.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical sync.
	// Allows unlimited FPS but may cause screen tearing.
	PresentModeUncapped
)

var (
	// ErrNoSurface is returned by Draw on a backend that has no window surface.
	ErrNoSurface = errors.New("renderer: backend has no surface")

	// ErrInvalidFrameSize is returned when a frame has a non-positive resolution.
	ErrInvalidFrameSize = errors.New("renderer: invalid frame size")
)
