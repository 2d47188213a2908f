package renderer

import (
	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/camera"
	"github.com/Barometer-2002/A-black-hole/engine/geodesic"
	"github.com/Barometer-2002/A-black-hole/engine/starfield"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithWorkers sets the size of the CPU trace worker pool. Values below 1 select DefaultWorkers.
//
// Parameters:
//   - n: the number of workers
//
// Returns:
//   - RendererBuilderOption: a function that applies the worker option to a renderer
func WithWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.workers = n
	}
}

// WithMarcher replaces the default geodesic marcher.
//
// Parameters:
//   - m: the marcher to trace with
//
// Returns:
//   - RendererBuilderOption: a function that applies the marcher option to a renderer
func WithMarcher(m geodesic.Marcher) RendererBuilderOption {
	return func(r *renderer) {
		r.marcher = m
	}
}

// WithStarfield replaces the default background generator.
//
// Parameters:
//   - g: the generator sampled by escaped rays
//
// Returns:
//   - RendererBuilderOption: a function that applies the starfield option to a renderer
func WithStarfield(g starfield.Generator) RendererBuilderOption {
	return func(r *renderer) {
		r.stars = g
	}
}

// WithViewOptions passes options to every camera.View the renderer builds.
func WithViewOptions(options ...camera.ViewOption) RendererBuilderOption {
	return func(r *renderer) {
		r.viewOptions = append(r.viewOptions, options...)
	}
}

// WithFrameSampler configures how the present backend samples the traced frame.
// Use a nearest filter for a crisp upscale of low render scales.
//
// Parameters:
//   - s: the sampler configuration
//
// Returns:
//   - RendererBuilderOption: a function that applies the sampler option to a renderer
func WithFrameSampler(s common.SamplerStagingData) RendererBuilderOption {
	return func(r *renderer) {
		r.sampler = s
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer requests the fallback (software) adapter from WebGPU.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the adapter option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
