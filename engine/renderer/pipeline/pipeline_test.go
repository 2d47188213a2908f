package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline(KeyPresent, WithBindGroupLayout(0, PresentLayout()))

	if p.PipelineKey() != KeyPresent {
		t.Errorf("key = %q", p.PipelineKey())
	}
	if p.RenderPipeline() != nil || p.BindGroupLayout(0) != nil {
		t.Error("GPU objects must be nil before registration")
	}
	if n := len(p.BindGroupLayoutDescriptors()); n != 1 {
		t.Errorf("%d layout descriptors, want 1", n)
	}
}

func TestKernelLayout(t *testing.T) {
	desc := KernelLayout(64, 48)
	if len(desc.Entries) != 2 {
		t.Fatalf("%d entries, want 2", len(desc.Entries))
	}
	for i, size := range []uint64{64, 48} {
		e := desc.Entries[i]
		if e.Binding != uint32(i) || e.Buffer.Type != wgpu.BufferBindingTypeUniform || e.Buffer.MinBindingSize != size {
			t.Errorf("entry %d = %+v", i, e)
		}
	}
}

func TestPresentLayout(t *testing.T) {
	desc := PresentLayout()
	if desc.Entries[0].Texture.SampleType != wgpu.TextureSampleTypeFloat {
		t.Error("binding 0 should be a float texture")
	}
	if desc.Entries[1].Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Error("binding 1 should be a filtering sampler")
	}
}
