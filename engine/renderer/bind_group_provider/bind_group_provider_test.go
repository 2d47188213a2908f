package bind_group_provider

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

type fixedUniform []byte

func (f fixedUniform) Marshal() []byte { return f }

func TestNewBindGroupProviderIsEmpty(t *testing.T) {
	p := NewBindGroupProvider("frame")
	if p.Label() != "frame" {
		t.Errorf("label = %q", p.Label())
	}
	if p.BindGroup() != nil || p.Buffer(0) != nil || p.TextureView(0) != nil || p.Sampler(1) != nil {
		t.Error("fresh provider should hold no GPU objects")
	}
	if tex, w, h := p.Texture(0); tex != nil || w != 0 || h != 0 {
		t.Errorf("Texture(0) = %v %d×%d", tex, w, h)
	}
	// releasing an empty provider is a no-op
	p.Release()
}

func TestOptionsPopulateBindings(t *testing.T) {
	buf, smp := &wgpu.Buffer{}, &wgpu.Sampler{}
	p := NewBindGroupProvider("shared", WithBuffer(0, buf), WithSampler(2, smp))
	if p.Buffer(0) != buf {
		t.Error("WithBuffer did not bind the buffer")
	}
	if p.Sampler(2) != smp {
		t.Error("WithSampler did not bind the sampler")
	}
	if p.Buffer(2) != nil || p.Sampler(0) != nil {
		t.Error("bindings leaked across indices")
	}
	// peeking must not create slots
	p.TextureView(7)
	if n := len(p.(*bindGroupProvider).slots); n != 2 {
		t.Errorf("slots = %d, want 2", n)
	}
}

func TestNewBufferWrite(t *testing.T) {
	p := NewBindGroupProvider("uniforms")
	w := NewBufferWrite(p, 1, fixedUniform{1, 2, 3, 4})
	if w.Provider != p || w.Binding != 1 || len(w.Data) != 4 || w.Data[3] != 4 {
		t.Errorf("write = %+v", w)
	}
}
