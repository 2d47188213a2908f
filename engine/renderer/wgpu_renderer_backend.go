package renderer

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"slices"
	"sync"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/renderer/bind_group_provider"
	"github.com/Barometer-2002/A-black-hole/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// frameTextureFormat is the format of CPU-traced frame textures. Pixels arrive gamma-encoded,
// so the texture is linear Unorm and sampling does not decode them again.
const frameTextureFormat = wgpu.TextureFormatRGBA8Unorm

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	surfaceWidth         int
	surfaceHeight        int
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
}

type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the surface for a framebuffer size. Call it after every
	// resize and present mode change.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	ConfigureSurface(width, height int)

	// SurfaceSize returns the size the surface was last configured with.
	SurfaceSize() (int, int)

	// SetPresentMode sets the surface present mode. Takes effect at the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline compiles the pipeline's shader into one module, creates its bind group
	// layouts and the render pipeline, and stores them on p.
	//
	// Parameters:
	//   - p: the fullscreen pipeline to register
	//
	// Returns:
	//   - error: error if the shader is missing or any GPU object fails to create
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitUniformBuffer creates a uniform buffer for the binding if the provider has none.
	//
	// Parameters:
	//   - provider: the provider receiving the buffer
	//   - binding: the binding index
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - error: error if buffer creation fails
	InitUniformBuffer(provider bind_group_provider.BindGroupProvider, binding int, size uint64) error

	// InitFrameTexture uploads a frame into the provider's texture at binding, creating the texture
	// first when the provider has none or its size differs.
	//
	// Parameters:
	//   - provider: the provider holding the frame texture
	//   - binding: the texture binding index
	//   - staging: the pixels to upload
	//
	// Returns:
	//   - bool: true when a new texture was created and bind groups referencing it must be rebuilt
	//   - error: error if texture or view creation fails
	InitFrameTexture(provider bind_group_provider.BindGroupProvider, binding int, staging common.PixelStagingData) (bool, error)

	// InitSampler creates a sampler for the binding. Zero fields default to clamp-to-edge and linear filtering.
	//
	// Parameters:
	//   - provider: the provider receiving the sampler
	//   - binding: the sampler binding index
	//   - staging: the sampler configuration
	//
	// Returns:
	//   - error: error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, staging common.SamplerStagingData) error

	// InitBindGroup (re)creates the provider's bind group from the resources it already holds.
	//
	// Parameters:
	//   - provider: the provider whose resources are bound
	//   - layout: the created bind group layout
	//   - descriptor: the layout descriptor naming the bindings
	//
	// Returns:
	//   - error: error if a binding has no resource or bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers queues buffer uploads. Writes whose provider has no buffer at the binding are skipped.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// DrawFrame acquires the surface texture, draws one fullscreen triangle with the pipeline and
	// bind groups in group order, submits and presents.
	//
	// Parameters:
	//   - p: a registered pipeline
	//   - bindGroups: providers with built bind groups, index = group
	//
	// Returns:
	//   - error: error if the pipeline is not registered or the surface cannot be acquired
	DrawFrame(p pipeline.Pipeline, bindGroups []bind_group_provider.BindGroupProvider) error

	// Release releases the device, adapter, surface and instance.
	Release()
}

var _ wgpuRendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w
}

// pickSurfaceFormat prefers a linear 8-bit format. The kernel and the CPU tracer both write
// gamma-encoded colour, which an sRGB surface would encode a second time.
func pickSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatRGBA8Unorm {
			return f
		}
	}
	return formats[0]
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	format := pickSurfaceFormat(capabilities.Formats)
	if b.surfaceFormat == nil {
		log.Printf("[Renderer] surface format %v", format)
	}
	b.surfaceFormat = &format
	b.surfaceWidth, b.surfaceHeight = width, height

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	// View is set per frame to the swapchain view.
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1.0},
			},
		},
	}
}

func (b *wgpuRendererBackendImpl) SurfaceSize() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surfaceWidth, b.surfaceHeight
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := p.Shader()
	if s == nil {
		return fmt.Errorf("pipeline %q has no shader", p.PipelineKey())
	}
	if b.surfaceFormat == nil {
		return errors.New("surface must be configured before registering pipelines")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: s.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.Source(),
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	descriptors := p.BindGroupLayoutDescriptors()
	groups := make([]int, 0, len(descriptors))
	for g := range descriptors {
		groups = append(groups, g)
	}
	slices.Sort(groups)

	layouts := make(map[int]*wgpu.BindGroupLayout, len(groups))
	ordered := make([]*wgpu.BindGroupLayout, 0, len(groups))
	for i, g := range groups {
		if g != i {
			return fmt.Errorf("pipeline %q: bind groups must be contiguous from 0, missing group %d", p.PipelineKey(), i)
		}
		desc := descriptors[g]
		layout, layoutErr := b.device.CreateBindGroupLayout(&desc)
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		layouts[g] = layout
		ordered = append(ordered, layout)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: ordered,
	})
	if err != nil {
		return err
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.VertexEntryPoint(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created, layouts)
	return nil
}

func (b *wgpuRendererBackendImpl) InitUniformBuffer(provider bind_group_provider.BindGroupProvider, binding int, size uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if provider.Buffer(binding) != nil {
		return nil
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("%s Buffer %d", provider.Label(), binding),
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	provider.SetBuffer(binding, buf)
	return nil
}

func (b *wgpuRendererBackendImpl) InitFrameTexture(provider bind_group_provider.BindGroupProvider, binding int, staging common.PixelStagingData) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, w, h := provider.Texture(binding)
	created := false
	if tex == nil || w != staging.Width || h != staging.Height {
		var err error
		tex, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:     provider.Label() + " Texture",
			Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
			Dimension: wgpu.TextureDimension2D,
			Size: wgpu.Extent3D{
				Width:              staging.Width,
				Height:             staging.Height,
				DepthOrArrayLayers: 1,
			},
			Format:        frameTextureFormat,
			MipLevelCount: 1,
			SampleCount:   1,
		})
		if err != nil {
			return false, err
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			tex.Release()
			return false, err
		}
		provider.SetTexture(binding, tex, view, staging.Width, staging.Height)
		created = true
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		staging.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  staging.Stride,
			RowsPerImage: staging.Height,
		},
		&wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
	)
	return created, nil
}

func (b *wgpuRendererBackendImpl) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, staging common.SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " Sampler",
		AddressModeU:  common.OrDefault(staging.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.OrDefault(staging.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.OrDefault(staging.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.OrDefault(staging.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.OrDefault(staging.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   common.OrDefault(staging.LodMinClamp, 0.0),
		LodMaxClamp:   common.OrDefault(staging.LodMaxClamp, 1.0),
		MaxAnisotropy: 1,
	})
	if err != nil {
		return err
	}
	if old := provider.Sampler(binding); old != nil {
		old.Release()
	}
	provider.SetSampler(binding, samp)
	return nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, descriptor wgpu.BindGroupLayoutDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if layout == nil {
		return fmt.Errorf("%s: bind group layout is not created", provider.Label())
	}

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		binding := int(entry.Binding)

		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			tv := provider.TextureView(binding)
			if tv == nil {
				return fmt.Errorf("%s: texture binding %d has no view", provider.Label(), binding)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, TextureView: tv}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			samp := provider.Sampler(binding)
			if samp == nil {
				return fmt.Errorf("%s: sampler binding %d has no sampler", provider.Label(), binding)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, Sampler: samp}
		default:
			buf := provider.Buffer(binding)
			if buf == nil {
				return fmt.Errorf("%s: buffer binding %d has no buffer", provider.Label(), binding)
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			}
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.ReleaseBindGroup()
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, 0, w.Data)
	}
}

// releaser is any GPU handle of the current frame.
type releaser interface{ Release() }

func (b *wgpuRendererBackendImpl) DrawFrame(p pipeline.Pipeline, bindGroups []bind_group_provider.BindGroupProvider) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p.RenderPipeline() == nil {
		return fmt.Errorf("pipeline %s is not registered", p.PipelineKey())
	}

	// Handles are released in reverse order of acquisition once the frame is done.
	var held []releaser
	defer func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Release()
		}
	}()

	target, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	held = append(held, target)

	view, err := target.CreateView(nil)
	if err != nil {
		return fmt.Errorf("surface view: %w", err)
	}
	held = append(held, view)

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	held = append(held, encoder)

	b.renderPassDescriptor.ColorAttachments[0].View = view
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetPipeline(p.RenderPipeline())
	for group, provider := range bindGroups {
		pass.SetBindGroup(uint32(group), provider.BindGroup(), nil)
	}
	pass.Draw(3, 1, 0, 0)
	pass.End()

	commands, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish frame: %w", err)
	}
	held = append(held, commands)

	b.queue.Submit(commands)
	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
