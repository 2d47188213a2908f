package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption pre-populates a provider at construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBuffer binds an existing uniform buffer, for buffers shared between providers.
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.at(binding).buffer = buf
	}
}

// WithSampler binds an existing sampler.
func WithSampler(binding int, s *wgpu.Sampler) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.at(binding).sampler = s
	}
}
