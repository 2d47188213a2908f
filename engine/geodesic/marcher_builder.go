package geodesic

import "github.com/Barometer-2002/A-black-hole/engine/disk"

// MarcherBuilderOption is a functional option for configuring a Marcher.
type MarcherBuilderOption func(*marcherImpl)

// WithMass sets the hole mass. A mass of 0 disables bending and, unless a disk shader is
// supplied, collapses the default disk to nothing.
//
// Parameters:
//   - mass: mass in geometric units (r_s = 2M)
//
// Returns:
//   - MarcherBuilderOption: functional option to set the mass
func WithMass(mass float64) MarcherBuilderOption {
	return func(m *marcherImpl) {
		m.mass = mass
	}
}

// WithMaxSteps sets the hard cap on integration steps per ray.
//
// Parameters:
//   - steps: maximum number of steps
//
// Returns:
//   - MarcherBuilderOption: functional option to set the step cap
func WithMaxSteps(steps int) MarcherBuilderOption {
	return func(m *marcherImpl) {
		m.maxSteps = steps
	}
}

// WithMaxDistance sets the radius beyond which a ray counts as escaped.
//
// Parameters:
//   - dist: escape radius
//
// Returns:
//   - MarcherBuilderOption: functional option to set the escape radius
func WithMaxDistance(dist float64) MarcherBuilderOption {
	return func(m *marcherImpl) {
		m.maxDistance = dist
	}
}

// WithStepSize configures the adaptive step h = max(minStep, r*scale).
//
// Parameters:
//   - minStep: smallest step length
//   - scale: step length per unit radius
//
// Returns:
//   - MarcherBuilderOption: functional option to set the step model
func WithStepSize(minStep, scale float64) MarcherBuilderOption {
	return func(m *marcherImpl) {
		m.minStep = minStep
		m.stepScale = scale
	}
}

// WithBending configures the bending model.
//
// Parameters:
//   - guard: bending is skipped below guard * r_s
//   - gain: multiplier on the per-step deflection
//
// Returns:
//   - MarcherBuilderOption: functional option to set the bending model
func WithBending(guard, gain float64) MarcherBuilderOption {
	return func(m *marcherImpl) {
		m.bendGuard = guard
		m.bendGain = gain
	}
}

// WithDiskShader replaces the accretion disk evaluated along the ray.
//
// Parameters:
//   - shader: the disk shader to use
//
// Returns:
//   - MarcherBuilderOption: functional option to set the disk shader
func WithDiskShader(shader disk.Shader) MarcherBuilderOption {
	return func(m *marcherImpl) {
		m.disk = shader
	}
}
