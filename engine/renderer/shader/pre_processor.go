// pre_processor.go implements the WGSL pre-processor. It scans shader source for
// @bh: directives written as line comments and replaces them with generated WGSL:
//
//	// @bh:include <name>   injects a registered WGSL snippet (uniform structs, the fullscreen vertex stage)
//	// @bh:constants        injects const declarations mirroring the CPU integrator and disk constants
//
// Keeping the constants on the Go side means the GPU kernel and the CPU backend cannot drift apart.
package shader

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/camera"
	"github.com/Barometer-2002/A-black-hole/engine/disk"
	"github.com/Barometer-2002/A-black-hole/engine/geodesic"
	"github.com/Barometer-2002/A-black-hole/engine/starfield"
	"github.com/Barometer-2002/A-black-hole/engine/tonemap"
)

// FullscreenSource is the vertex stage shared by every fullscreen pass.
// It emits one oversized triangle covering the viewport with uv in [0, 1], y growing downward.
//
//go:embed assets/fullscreen.wgsl
var FullscreenSource string

const directivePrefix = "// @bh:"

// Directive names understood by the pre-processor.
const (
	DirectiveInclude   = "include"
	DirectiveConstants = "constants"
)

// Include names registered by default.
const (
	IncludeCamera     = "camera"
	IncludeFullscreen = "fullscreen"
)

// Constant is a named scalar emitted as a WGSL const declaration.
type Constant struct {
	Name    string
	Value   float64
	Integer bool
}

// WGSL renders the constant as a WGSL const declaration.
//
// Returns:
//   - string: e.g. "const MAX_STEPS: i32 = 1000;"
func (c Constant) WGSL() string {
	if c.Integer {
		return fmt.Sprintf("const %s: i32 = %d;", c.Name, int64(c.Value))
	}
	lit := strconv.FormatFloat(c.Value, 'f', -1, 64)
	if !strings.Contains(lit, ".") {
		lit += ".0"
	}
	return fmt.Sprintf("const %s: f32 = %s;", c.Name, lit)
}

// DefaultConstants returns the constants shared between the CPU backend and the WGSL kernel.
// Disk radii are per unit mass; the kernel scales them by the mass in the frame uniform.
//
// Returns:
//   - []Constant: the constants in emission order
func DefaultConstants() []Constant {
	return []Constant{
		{Name: "MAX_STEPS", Value: geodesic.DefaultMaxSteps, Integer: true},
		{Name: "MAX_DIST", Value: geodesic.DefaultMaxDistance},
		{Name: "MIN_STEP", Value: geodesic.DefaultMinStep},
		{Name: "STEP_SCALE", Value: geodesic.DefaultStepScale},
		{Name: "BEND_GUARD", Value: geodesic.DefaultBendGuard},
		{Name: "BEND_STRENGTH", Value: geodesic.DefaultBendStrength},
		{Name: "SATURATION_ALPHA", Value: geodesic.SaturationAlpha},
		{Name: "DISK_INNER", Value: disk.InnerRadius},
		{Name: "DISK_OUTER", Value: disk.OuterRadius},
		{Name: "DISK_THICKNESS", Value: disk.BaseThickness},
		{Name: "DISK_SLOPE", Value: disk.ThicknessSlope},
		{Name: "DISK_INNER_FADE", Value: disk.InnerFadeWidth},
		{Name: "DISK_OUTER_FADE", Value: disk.OuterFadeWidth},
		{Name: "ALPHA_COUPLING", Value: disk.AlphaCoupling},
		{Name: "EMISSION_CUTOFF", Value: disk.EmissionCutoff},
		{Name: "VELOCITY_EPSILON", Value: disk.VelocityEpsilon},
		{Name: "STAR_SCALE", Value: starfield.DefaultStarScale},
		{Name: "OPAQUE_ALPHA", Value: tonemap.OpaqueAlpha},
		{Name: "GAMMA", Value: tonemap.Gamma},
		{Name: "FBM_OCTAVES", Value: common.FBMOctaves, Integer: true},
	}
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includes maps include names to WGSL snippets.
	includes map[string]string

	// constants is emitted in order for every @bh:constants directive.
	constants []Constant
}

// PreProcessor expands @bh: directives in WGSL source.
type PreProcessor interface {
	// Process expands every directive in source. Each include is emitted at most once per call,
	// so two snippets may both include the same struct.
	//
	// Parameters:
	//   - source: the raw WGSL source
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: an error naming the line of an unknown directive or include
	Process(source string) (string, error)

	// Register adds or replaces an include snippet.
	//
	// Parameters:
	//   - name: the include name used after @bh:include
	//   - source: the WGSL snippet
	Register(name, source string)

	// Constants returns the constants emitted for @bh:constants.
	//
	// Returns:
	//   - []Constant: the constants in emission order
	Constants() []Constant
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the camera uniform and the fullscreen vertex stage
// registered, emitting DefaultConstants for @bh:constants.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		includes: map[string]string{
			IncludeCamera:     camera.GPUCameraUniformSource,
			IncludeFullscreen: FullscreenSource,
		},
		constants: DefaultConstants(),
	}
}

func (p *preProcessor) Register(name, source string) {
	p.includes[name] = source
}

func (p *preProcessor) Constants() []Constant {
	return append([]Constant(nil), p.constants...)
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	included := make(map[string]bool)
	var out strings.Builder

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		directive, ok := strings.CutPrefix(trimmed, directivePrefix)
		if !ok {
			out.WriteString(line)
			if i < len(lines)-1 {
				out.WriteByte('\n')
			}
			continue
		}

		fields := strings.Fields(directive)
		if len(fields) == 0 {
			return "", fmt.Errorf("line %d: empty directive", i+1)
		}
		switch fields[0] {
		case DirectiveInclude:
			if len(fields) != 2 {
				return "", fmt.Errorf("line %d: include takes exactly one name", i+1)
			}
			name := fields[1]
			src, known := p.includes[name]
			if !known {
				return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
			}
			if included[name] {
				continue
			}
			included[name] = true
			out.WriteString(strings.TrimRight(src, "\n"))
			out.WriteByte('\n')
		case DirectiveConstants:
			for _, c := range p.constants {
				out.WriteString(c.WGSL())
				out.WriteByte('\n')
			}
		default:
			return "", fmt.Errorf("line %d: unknown directive %q", i+1, fields[0])
		}
	}
	return out.String(), nil
}
