package pipeline

import (
	"github.com/Barometer-2002/A-black-hole/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption declares part of a pipeline before registration.
type PipelineBuilderOption func(*pipeline)

// WithShader sets the expanded module providing both vs_main and fs_main.
func WithShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.shader = s
	}
}

// WithBindGroupLayout declares the layout of group. Groups must be contiguous from 0.
//
// Parameters:
//   - group: the bind group index
//   - desc: the layout, usually KernelLayout or PresentLayout
func WithBindGroupLayout(group int, desc wgpu.BindGroupLayoutDescriptor) PipelineBuilderOption {
	return func(p *pipeline) {
		p.layoutDescriptors[group] = desc
	}
}
