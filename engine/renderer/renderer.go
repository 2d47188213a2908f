package renderer

import (
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/camera"
	"github.com/Barometer-2002/A-black-hole/engine/geodesic"
	"github.com/Barometer-2002/A-black-hole/engine/renderer/bind_group_provider"
	"github.com/Barometer-2002/A-black-hole/engine/renderer/pipeline"
	"github.com/Barometer-2002/A-black-hole/engine/renderer/shader"
	"github.com/Barometer-2002/A-black-hole/engine/starfield"
	"github.com/cogentcore/webgpu/wgpu"
)

// IncludeFrame is the pre-processor include name of the FrameUniform struct.
const IncludeFrame = "frame"

// Surface is the window side of a presenting renderer. window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	cpu         cpuRendererBackend
	gpu         wgpuRendererBackend

	pipelineCache map[string]pipeline.Pipeline
	uniforms      bind_group_provider.BindGroupProvider
	frameTexture  bind_group_provider.BindGroupProvider

	stats FrameStats

	// Pre-creation config collected from builder options
	workers              int
	marcher              geodesic.Marcher
	stars                starfield.Generator
	viewOptions          []camera.ViewOption
	sampler              common.SamplerStagingData
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer turns frame snapshots into pixels.
//
// Every backend can trace frames on the CPU through Render. Backends with a surface also Draw:
// the WGPU backend runs the geodesic kernel per fragment, the present backend uploads the CPU
// trace as a texture and samples it onto the surface.
type Renderer interface {
	// Backend returns the backend type the renderer was created with.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	Backend() RendererBackendType

	// Marcher returns the geodesic marcher shared by the CPU tracer and the kernel constants.
	//
	// Returns:
	//   - geodesic.Marcher: the marcher
	Marcher() geodesic.Marcher

	// Render traces a frame on the CPU worker pool.
	//
	// Parameters:
	//   - frame: the frame snapshot
	//
	// Returns:
	//   - *image.RGBA: the traced frame
	//   - error: ErrInvalidFrameSize for a non-positive resolution
	Render(frame common.Frame) (*image.RGBA, error)

	// Draw renders a frame to the surface and presents it.
	//
	// Parameters:
	//   - frame: the frame snapshot
	//
	// Returns:
	//   - error: ErrNoSurface on the CPU backend, or the backend error
	Draw(frame common.Frame) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	// A no-op on the CPU backend and for non-positive sizes.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode switches the surface present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Stats returns the statistics of the last rendered frame.
	//
	// Returns:
	//   - FrameStats: the last frame statistics
	Stats() FrameStats

	// Release stops the worker pool and releases all GPU objects.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type and options.
// Setup failures on the GPU path panic, the same as window creation.
//
// Parameters:
//   - backendType: the type of backend to use for rendering
//   - surface: the window to present to; may be nil for BackendTypeCPU
//   - options: a variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: a new Renderer instance configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		backendType:   backendType,
		pipelineCache: make(map[string]pipeline.Pipeline),
	}
	for _, opt := range options {
		opt(r)
	}
	if r.marcher == nil {
		r.marcher = geodesic.NewMarcher()
	}
	if r.stars == nil {
		r.stars = starfield.NewGenerator()
	}

	r.cpu = newCPURendererBackend(r.workers, r.marcher, r.stars, r.viewOptions)
	log.Printf("[Renderer] %s backend, %d trace workers", backendType, r.cpu.Workers())

	if !backendType.NeedsSurface() {
		return r
	}
	if surface == nil {
		panic(fmt.Sprintf("renderer: the %s backend needs a surface", backendType))
	}

	r.gpu = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter)
	if r.pendingPresentMode != nil {
		r.gpu.SetPresentMode(*r.pendingPresentMode)
	}
	r.gpu.ConfigureSurface(surface.Width(), surface.Height())

	if err := r.initPipelines(); err != nil {
		panic(err)
	}
	return r
}

// initPipelines builds the one pipeline the backend draws with, plus its bind group resources.
func (r *renderer) initPipelines() error {
	pp := shader.NewPreProcessor()
	pp.Register(IncludeFrame, GPUFrameUniformSource)

	switch r.backendType {
	case BackendTypeWGPU:
		s, err := shader.NewShader(pipeline.KeyKernel, shader.ShaderTypeFullscreen, kernelSource, shader.WithPreProcessor(pp))
		if err != nil {
			return err
		}
		var cam camera.GPUCameraUniform
		var fu GPUFrameUniform
		layout := pipeline.KernelLayout(uint64(cam.Size()), uint64(fu.Size()))
		p := pipeline.NewPipeline(pipeline.KeyKernel,
			pipeline.WithShader(s),
			pipeline.WithBindGroupLayout(0, layout),
		)
		if err := r.gpu.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register %s: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p

		r.uniforms = bind_group_provider.NewBindGroupProvider("Kernel Uniforms")
		if err := r.gpu.InitUniformBuffer(r.uniforms, 0, uint64(cam.Size())); err != nil {
			return err
		}
		if err := r.gpu.InitUniformBuffer(r.uniforms, 1, uint64(fu.Size())); err != nil {
			return err
		}
		return r.gpu.InitBindGroup(r.uniforms, p.BindGroupLayout(0), layout)

	case BackendTypeCPUPresent:
		s, err := shader.NewShader(pipeline.KeyPresent, shader.ShaderTypeFullscreen, presentSource, shader.WithPreProcessor(pp))
		if err != nil {
			return err
		}
		p := pipeline.NewPipeline(pipeline.KeyPresent,
			pipeline.WithShader(s),
			pipeline.WithBindGroupLayout(0, pipeline.PresentLayout()),
		)
		if err := r.gpu.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register %s: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p

		// The texture and bind group are created on the first Draw, once the frame size is known.
		r.frameTexture = bind_group_provider.NewBindGroupProvider("Frame Texture")
		return r.gpu.InitSampler(r.frameTexture, 1, r.sampler)
	}
	return nil
}

func (r *renderer) Backend() RendererBackendType {
	return r.backendType
}

func (r *renderer) Marcher() geodesic.Marcher {
	return r.marcher
}

func (r *renderer) Render(frame common.Frame) (*image.RGBA, error) {
	img, stats, err := r.cpu.Render(frame)
	if err != nil {
		return nil, err
	}
	r.setStats(stats)
	return img, nil
}

func (r *renderer) Draw(frame common.Frame) error {
	switch r.backendType {
	case BackendTypeWGPU:
		return r.drawKernel(frame)
	case BackendTypeCPUPresent:
		return r.drawTraced(frame)
	default:
		return ErrNoSurface
	}
}

func (r *renderer) drawKernel(frame common.Frame) error {
	if frame.Width <= 0 || frame.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidFrameSize, frame.Width, frame.Height)
	}
	start := time.Now()

	cam := camera.NewGPUCameraUniform(camera.NewView(frame, r.viewOptions...))
	fu := NewGPUFrameUniform(frame, r.marcher.Mass())
	// Fragment positions are surface pixels, whatever the frame resolution was.
	w, h := r.gpu.SurfaceSize()
	fu.Resolution = [2]float32{float32(w), float32(h)}

	r.gpu.WriteBuffers([]bind_group_provider.BufferWrite{
		bind_group_provider.NewBufferWrite(r.uniforms, 0, &cam),
		bind_group_provider.NewBufferWrite(r.uniforms, 1, &fu),
	})
	if err := r.gpu.DrawFrame(r.pipelineCache[pipeline.KeyKernel], []bind_group_provider.BindGroupProvider{r.uniforms}); err != nil {
		return err
	}

	r.setStats(FrameStats{Width: w, Height: h, Duration: time.Since(start)})
	return nil
}

func (r *renderer) drawTraced(frame common.Frame) error {
	img, stats, err := r.cpu.Render(frame)
	if err != nil {
		return err
	}
	staging, err := common.NewPixelStagingData(img)
	if err != nil {
		return err
	}
	recreated, err := r.gpu.InitFrameTexture(r.frameTexture, 0, staging)
	if err != nil {
		return err
	}
	p := r.pipelineCache[pipeline.KeyPresent]
	if recreated {
		if err := r.gpu.InitBindGroup(r.frameTexture, p.BindGroupLayout(0), pipeline.PresentLayout()); err != nil {
			return err
		}
	}

	if err := r.gpu.DrawFrame(p, []bind_group_provider.BindGroupProvider{r.frameTexture}); err != nil {
		return err
	}

	r.setStats(stats)
	return nil
}

func (r *renderer) Resize(width, height int) {
	if r.gpu == nil || width <= 0 || height <= 0 {
		return
	}
	r.gpu.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	r.pendingPresentMode = &mode
	r.mu.Unlock()

	if r.gpu == nil {
		return
	}
	r.gpu.SetPresentMode(mode)
	r.gpu.ConfigureSurface(r.gpu.SurfaceSize())
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) setStats(stats FrameStats) {
	r.mu.Lock()
	r.stats = stats
	r.mu.Unlock()
}

func (r *renderer) Release() {
	r.cpu.Release()
	if r.gpu == nil {
		return
	}
	if r.uniforms != nil {
		r.uniforms.Release()
	}
	if r.frameTexture != nil {
		r.frameTexture.Release()
	}
	for _, p := range r.pipelineCache {
		p.Release()
	}
	r.gpu.Release()
}
