package pipeline

import (
	"github.com/Barometer-2002/A-black-hole/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Keys of the pipelines the renderer registers.
const (
	// KeyKernel is the pipeline running the geodesic kernel per fragment.
	KeyKernel = "blackhole_kernel"

	// KeyPresent is the pipeline sampling a CPU-traced frame texture onto the surface.
	KeyPresent = "frame_present"
)

type pipeline struct {
	pipelineKey string

	// shader provides both the vertex and the fragment entry points.
	shader shader.Shader

	// layoutDescriptors are declared on the Go side, keyed by group index.
	layoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor

	// renderPipeline is nil until the backend registers the pipeline.
	renderPipeline *wgpu.RenderPipeline
	// bindGroupLayouts are created alongside the render pipeline, keyed by group index.
	bindGroupLayouts map[int]*wgpu.BindGroupLayout
}

// Pipeline describes a fullscreen render pipeline: one shader module and a fixed set of bind group
// layouts. Fullscreen passes draw one triangle list without vertex buffers, depth or blending.
type Pipeline interface {
	// PipelineKey returns the key the renderer caches this pipeline under.
	PipelineKey() string

	// Shader returns the module providing the vertex and fragment entry points.
	//
	// Returns:
	//   - shader.Shader: the shader, or nil if not set
	Shader() shader.Shader

	// BindGroupLayoutDescriptors returns the layout descriptors keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: the descriptors
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupLayout returns the created layout for a group, or nil before registration.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout or nil
	BindGroupLayout(group int) *wgpu.BindGroupLayout

	// RenderPipeline returns the created render pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the render pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the created pipeline and its bind group layouts.
	//
	// Parameters:
	//   - rp: the WebGPU render pipeline
	//   - layouts: the created bind group layouts keyed by group index
	SetRenderPipeline(rp *wgpu.RenderPipeline, layouts map[int]*wgpu.BindGroupLayout)

	// Release releases the GPU pipeline and layouts.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline declares a fullscreen pipeline. The backend creates the GPU objects on registration.
//
// Parameters:
//   - pipelineKey: the cache key, KeyKernel or KeyPresent
//   - opts: shader and bind group layout options
//
// Returns:
//   - Pipeline: the declared pipeline
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		layoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// KernelLayout returns the bind group layout of the geodesic kernel:
// binding 0 is the camera uniform, binding 1 the frame uniform.
//
// Parameters:
//   - cameraSize: byte size of the camera uniform
//   - frameSize: byte size of the frame uniform
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the group 0 descriptor
func KernelLayout(cameraSize, frameSize uint64) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: KeyKernel + " Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: cameraSize},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: frameSize},
			},
		},
	}
}

// PresentLayout returns the bind group layout of the presentation pass:
// binding 0 is the frame texture, binding 1 its filtering sampler.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the group 0 descriptor
func PresentLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: KeyPresent + " Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	}
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return p.layoutDescriptors
}

func (p *pipeline) BindGroupLayout(group int) *wgpu.BindGroupLayout {
	return p.bindGroupLayouts[group]
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline, layouts map[int]*wgpu.BindGroupLayout) {
	p.renderPipeline = rp
	p.bindGroupLayouts = layouts
}

func (p *pipeline) Release() {
	for g, l := range p.bindGroupLayouts {
		if l != nil {
			l.Release()
		}
		delete(p.bindGroupLayouts, g)
	}
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
