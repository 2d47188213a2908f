package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// slot is everything bound at one binding index. Only one of buffer, view and sampler is set
// for a given binding; texture backs view and is kept so it can be released and resized.
type slot struct {
	buffer        *wgpu.Buffer
	texture       *wgpu.Texture
	view          *wgpu.TextureView
	width, height uint32
	sampler       *wgpu.Sampler
}

func (s *slot) releaseTexture() {
	if s.view != nil {
		s.view.Release()
		s.view = nil
	}
	if s.texture != nil {
		s.texture.Release()
		s.texture = nil
	}
	s.width, s.height = 0, 0
}

func (s *slot) release() {
	s.releaseTexture()
	if s.sampler != nil {
		s.sampler.Release()
		s.sampler = nil
	}
	if s.buffer != nil {
		s.buffer.Release()
		s.buffer = nil
	}
}

type bindGroupProvider struct {
	label     string
	bindGroup *wgpu.BindGroup
	slots     map[int]*slot
}

// BindGroupProvider owns the GPU objects of one bind group: the uniform buffers of the kernel, or
// the frame texture and its sampler for presentation. The backend creates the objects and the
// bind group; drawing only reads BindGroup().
type BindGroupProvider interface {
	// Release releases the bind group and every object at every binding.
	Release()

	// ReleaseBindGroup drops only the bind group so it can be rebuilt after a binding changed.
	ReleaseBindGroup()

	// Label returns the debug label given to GPU objects created for this provider.
	Label() string

	// BindGroup returns the bind group, or nil before InitBindGroup ran.
	BindGroup() *wgpu.BindGroup

	// Buffer returns the uniform buffer at binding, or nil.
	Buffer(binding int) *wgpu.Buffer

	// Texture returns the texture at binding with the extent it was created with.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Texture: the texture or nil
	//   - uint32, uint32: its width and height, zero when unset
	Texture(binding int) (*wgpu.Texture, uint32, uint32)

	// TextureView returns the view bound at binding, or nil.
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler at binding, or nil.
	Sampler(binding int) *wgpu.Sampler

	// SetBindGroup stores the bind group built from the current bindings.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer stores a uniform buffer at binding.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTexture replaces the texture and view at binding, releasing the previous pair.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tex: the texture
	//   - view: a view of tex
	//   - width, height: the extent of tex
	SetTexture(binding int, tex *wgpu.Texture, view *wgpu.TextureView, width, height uint32)

	// SetSampler stores a sampler at binding.
	SetSampler(binding int, s *wgpu.Sampler)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a provider with no GPU objects.
//
// Parameters:
//   - label: debug label for every GPU object created for this provider
//   - options: functional options to pre-populate bindings
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label: label,
		slots: make(map[int]*slot),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// at returns the slot for binding, creating it on first use.
func (p *bindGroupProvider) at(binding int) *slot {
	s, ok := p.slots[binding]
	if !ok {
		s = &slot{}
		p.slots[binding] = s
	}
	return s
}

// peek returns the slot for binding or an empty one without storing it.
func (p *bindGroupProvider) peek(binding int) *slot {
	if s, ok := p.slots[binding]; ok {
		return s
	}
	return &slot{}
}

func (p *bindGroupProvider) Label() string { return p.label }
func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup { return p.bindGroup }

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.peek(binding).buffer
}

func (p *bindGroupProvider) Texture(binding int) (*wgpu.Texture, uint32, uint32) {
	s := p.peek(binding)
	return s.texture, s.width, s.height
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.peek(binding).view
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.peek(binding).sampler
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.at(binding).buffer = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, view *wgpu.TextureView, width, height uint32) {
	s := p.at(binding)
	s.releaseTexture()
	s.texture, s.view = tex, view
	s.width, s.height = width, height
}

func (p *bindGroupProvider) SetSampler(binding int, smp *wgpu.Sampler) {
	p.at(binding).sampler = smp
}

func (p *bindGroupProvider) ReleaseBindGroup() {
	if p.bindGroup == nil {
		return
	}
	p.bindGroup.Release()
	p.bindGroup = nil
}

func (p *bindGroupProvider) Release() {
	p.ReleaseBindGroup()
	for binding, s := range p.slots {
		s.release()
		delete(p.slots, binding)
	}
}
