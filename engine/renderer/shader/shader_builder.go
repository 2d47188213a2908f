package shader

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithVertexEntryPoint overrides the vertex entry point name.
//
// Parameters:
//   - name: the WGSL function name of the vertex stage
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithVertexEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexEntryPoint = name
	}
}

// WithFragmentEntryPoint overrides the fragment entry point name.
//
// Parameters:
//   - name: the WGSL function name of the fragment stage
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithFragmentEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.fragmentEntryPoint = name
	}
}

// WithPreProcessor sets the pre-processor used to expand directives.
// Use this to register extra includes before the shader is built.
//
// Parameters:
//   - pp: the pre-processor
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithPreProcessor(pp PreProcessor) ShaderBuilderOption {
	return func(s *shader) {
		s.pp = pp
	}
}
