package scene

import (
	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/camera"
	"github.com/Barometer-2002/A-black-hole/engine/input"
	"github.com/Barometer-2002/A-black-hole/engine/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// SimulationBuilderOption is a functional option for configuring a Simulation.
// Use the With* functions to create options.
type SimulationBuilderOption func(s *simulation)

// WithCameraController replaces the default camera controller.
//
// Parameters:
//   - cc: the controller to drive
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithCameraController(cc camera.CameraController) SimulationBuilderOption {
	return func(s *simulation) {
		s.camera = cc
	}
}

// WithRenderer attaches the renderer used by captures.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SimulationBuilderOption {
	return func(s *simulation) {
		s.renderer = r
	}
}

// WithParams sets the initial parameter set. It is clamped.
//
// Parameters:
//   - p: the parameters
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithParams(p common.SimulationParams) SimulationBuilderOption {
	return func(s *simulation) {
		s.params = p
	}
}

// WithAutoRotate sets the initial auto-rotation state. Defaults to on.
func WithAutoRotate(on bool) SimulationBuilderOption {
	return func(s *simulation) {
		s.autoRotate = on
	}
}

// WithViewport sets the initial viewport size in display units.
//
// Parameters:
//   - width: viewport width
//   - height: viewport height
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithViewport(width, height int) SimulationBuilderOption {
	return func(s *simulation) {
		s.width, s.height = max(width, 1), max(height, 1)
	}
}

// WithPixelRatio sets the initial render pixels per display unit.
func WithPixelRatio(ratio float64) SimulationBuilderOption {
	return func(s *simulation) {
		s.pixelRatio = common.Clamp(ratio, MinPixelRatio, MaxPixelRatio)
	}
}

// WithScreenOffset sets the normalized screen offset applied before ray construction.
// A negative Y lifts the hole above the centre of the image.
func WithScreenOffset(offset mgl64.Vec2) SimulationBuilderOption {
	return func(s *simulation) {
		s.screenOffset = offset
	}
}

// WithTime sets the initial simulation clock in seconds.
func WithTime(t float64) SimulationBuilderOption {
	return func(s *simulation) {
		s.time = t
	}
}

// WithInteractionOptions forwards options to the interaction machine, for example custom wheel
// and pinch scales.
//
// Parameters:
//   - options: interaction machine options
//
// Returns:
//   - SimulationBuilderOption: option function to apply
func WithInteractionOptions(options ...input.InteractionBuilderOption) SimulationBuilderOption {
	return func(s *simulation) {
		s.inputOptions = append(s.inputOptions, options...)
	}
}

// WithStatusListener registers a status listener at construction.
func WithStatusListener(listener input.StatusListener) SimulationBuilderOption {
	return func(s *simulation) {
		s.listeners = append(s.listeners, listener)
	}
}
