package shader

import (
	"fmt"
	"os"
)

// ShaderType identifies which programmable stages a shader module provides.
type ShaderType int

const (
	// ShaderTypeFullscreen is a module providing both a fullscreen-triangle vertex entry point and a fragment entry point.
	ShaderTypeFullscreen ShaderType = iota

	// ShaderTypeFragment is a fragment-only module paired with a vertex module elsewhere.
	ShaderTypeFragment
)

// Default entry points used by every fullscreen module.
const (
	DefaultVertexEntryPoint   = "vs_main"
	DefaultFragmentEntryPoint = "fs_main"
)

// shader is the implementation of the Shader interface.
// It holds the pre-processed WGSL source and the entry points needed for pipeline creation.
type shader struct {
	key                string
	source             string
	shaderType         ShaderType
	vertexEntryPoint   string
	fragmentEntryPoint string

	pp PreProcessor
}

// Shader defines the interface for a loaded and pre-processed WGSL shader module.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// Type returns which stages the module provides.
	//
	// Returns:
	//   - ShaderType: the shader type
	Type() ShaderType

	// VertexEntryPoint returns the name of the vertex entry point.
	//
	// Returns:
	//   - string: the vertex entry point name
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment entry point.
	//
	// Returns:
	//   - string: the fragment entry point name
	FragmentEntryPoint() string
}

var _ Shader = &shader{}

// NewShader creates a Shader from raw WGSL source. The source is run through the pre-processor
// so @bh: directives are expanded before the module reaches the GPU.
//
// Parameters:
//   - key: unique identifier for the shader
//   - shaderType: which stages the module provides
//   - source: raw WGSL source containing optional @bh: directives
//   - options: functional options for entry points and the pre-processor
//
// Returns:
//   - Shader: the processed shader
//   - error: error if a directive could not be expanded
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		key:                key,
		shaderType:         shaderType,
		vertexEntryPoint:   DefaultVertexEntryPoint,
		fragmentEntryPoint: DefaultFragmentEntryPoint,
	}
	for _, option := range options {
		option(s)
	}
	if s.pp == nil {
		s.pp = NewPreProcessor()
	}

	processed, err := s.pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", key, err)
	}
	s.source = processed
	return s, nil
}

// LoadShader reads a WGSL file from disk and creates a Shader from it.
//
// Parameters:
//   - key: unique identifier for the shader
//   - shaderType: which stages the module provides
//   - path: the WGSL file path
//   - options: functional options forwarded to NewShader
//
// Returns:
//   - Shader: the processed shader
//   - error: error if the file cannot be read or processed
func LoadShader(key string, shaderType ShaderType, path string, options ...ShaderBuilderOption) (Shader, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader %s: %w", path, err)
	}
	return NewShader(key, shaderType, string(src), options...)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Type() ShaderType {
	return s.shaderType
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}
