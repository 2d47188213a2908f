package engine

import (
	"image"

	"github.com/Barometer-2002/A-black-hole/engine/scene"
	"github.com/Barometer-2002/A-black-hole/engine/window"
)

// EngineBuilderOption configures an Engine at construction.
type EngineBuilderOption func(*engine)

// WithProfiling turns the once-per-second statistics log on or off.
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profiling.Store(enabled)
	}
}

// WithTickRate sets how many times per second the simulation advances. Values <= 0 keep 60.
//
// Parameters:
//   - fps: simulation steps per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps > 0 {
			e.tickPeriod.Store(int64(periodOf(fps)))
		}
	}
}

// WithWindow attaches an open window. Its input, resize and title are wired to the simulation.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithSimulation sets the simulation to run. Attach its renderer before building the engine.
func WithSimulation(s scene.Simulation) EngineBuilderOption {
	return func(e *engine) {
		e.simulation = s
	}
}

// WithFrameCallback receives every image traced by a renderer without a surface. The callback
// owns the image.
func WithFrameCallback(callback func(img *image.RGBA)) EngineBuilderOption {
	return func(e *engine) {
		e.onFrame = callback
	}
}

// WithCaptureDir sets where key-triggered captures are written. Defaults to the working directory.
func WithCaptureDir(dir string) EngineBuilderOption {
	return func(e *engine) {
		e.captureDir = dir
	}
}

// WithRenderFrameLimit caps the render loop.
//
// Parameters:
//   - fps: frames per second, 0 or less for uncapped (default)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.framePeriod.Store(int64(periodOf(fps)))
	}
}
