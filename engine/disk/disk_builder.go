package disk

// ShaderBuilderOption is a functional option for configuring a Shader.
type ShaderBuilderOption func(*shaderImpl)

// WithMass scales the disk radii to a hole of the given mass.
//
// Parameters:
//   - mass: hole mass in geometric units
//
// Returns:
//   - ShaderBuilderOption: functional option to scale the disk
func WithMass(mass float64) ShaderBuilderOption {
	return func(s *shaderImpl) {
		s.inner = InnerRadius * mass
		s.outer = OuterRadius * mass
	}
}

// WithRadii sets the inner and outer disk radius directly.
//
// Parameters:
//   - inner: radius where emission starts
//   - outer: radius where emission ends
//
// Returns:
//   - ShaderBuilderOption: functional option to set the radii
func WithRadii(inner, outer float64) ShaderBuilderOption {
	return func(s *shaderImpl) {
		s.inner = inner
		s.outer = outer
	}
}

// WithThickness sets the half-height model thickness(r) = base + slope*r.
//
// Parameters:
//   - base: half-height at r = 0
//   - slope: growth per unit radius
//
// Returns:
//   - ShaderBuilderOption: functional option to set the thickness model
func WithThickness(base, slope float64) ShaderBuilderOption {
	return func(s *shaderImpl) {
		s.baseThickness = base
		s.slope = slope
	}
}

// WithAlphaCoupling sets the factor converting intensity to opacity.
//
// Parameters:
//   - k: opacity per unit intensity
//
// Returns:
//   - ShaderBuilderOption: functional option to set the coupling
func WithAlphaCoupling(k float64) ShaderBuilderOption {
	return func(s *shaderImpl) {
		s.alphaCoupling = k
	}
}
