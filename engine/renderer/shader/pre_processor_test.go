package shader

import (
	"strings"
	"testing"
)

func TestProcessIncludesOnce(t *testing.T) {
	pp := NewPreProcessor()
	pp.Register("extra", "struct Extra {\n    v: f32,\n};\n")

	src := "// @bh:include camera\n  // @bh:include extra\n// @bh:include camera\nfn f() {}"
	out, err := pp.Process(src)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if n := strings.Count(out, "struct CameraUniform"); n != 1 {
		t.Errorf("camera struct emitted %d times, want 1", n)
	}
	if !strings.Contains(out, "struct Extra") {
		t.Error("registered include missing from output")
	}
	if strings.Contains(out, "@bh:") {
		t.Errorf("directive left in output:\n%s", out)
	}
	if !strings.HasSuffix(out, "fn f() {}") {
		t.Errorf("trailing source altered:\n%s", out)
	}
}

func TestProcessConstants(t *testing.T) {
	out, err := NewPreProcessor().Process("// @bh:constants")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for _, want := range []string{
		"const MAX_STEPS: i32 = 1000;",
		"const MAX_DIST: f32 = 150.0;",
		"const MIN_STEP: f32 = 0.005;",
		"const SATURATION_ALPHA: f32 = 0.99;",
		"const DISK_INNER: f32 = 3.0;",
		"const FBM_OCTAVES: i32 = 6;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestProcessRejectsUnknown(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown include", "// @bh:include nope"},
		{"unknown directive", "// @bh:define X 1"},
		{"include without name", "// @bh:include"},
		{"empty directive", "// @bh:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPreProcessor().Process(tt.src); err == nil {
				t.Errorf("Process(%q) succeeded, want error", tt.src)
			}
		})
	}
}

func TestNewShaderExpandsSource(t *testing.T) {
	s, err := NewShader("present", ShaderTypeFullscreen, "// @bh:include fullscreen\n@fragment\nfn fs_main() {}")
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if !strings.Contains(s.Source(), "fn vs_main") {
		t.Error("fullscreen vertex stage not injected")
	}
	if s.VertexEntryPoint() != DefaultVertexEntryPoint || s.FragmentEntryPoint() != DefaultFragmentEntryPoint {
		t.Errorf("entry points %q/%q", s.VertexEntryPoint(), s.FragmentEntryPoint())
	}

	if _, err := NewShader("bad", ShaderTypeFragment, "// @bh:include missing"); err == nil {
		t.Error("NewShader with unknown include succeeded")
	}
}

func TestConstantWGSL(t *testing.T) {
	tests := []struct {
		c        Constant
		expected string
	}{
		{Constant{Name: "A", Value: 2}, "const A: f32 = 2.0;"},
		{Constant{Name: "B", Value: 0.00001}, "const B: f32 = 0.00001;"},
		{Constant{Name: "C", Value: 7, Integer: true}, "const C: i32 = 7;"},
	}
	for _, tt := range tests {
		if got := tt.c.WGSL(); got != tt.expected {
			t.Errorf("WGSL() = %q, want %q", got, tt.expected)
		}
	}
}
