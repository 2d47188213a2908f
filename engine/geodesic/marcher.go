package geodesic

import (
	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Termination is the state a ray march ended in.
type Termination uint8

const (
	Marching        Termination = iota // Still integrating; never returned by March
	Captured                           // Crossed the Schwarzschild radius
	Saturated                          // Accumulated alpha reached the opacity threshold
	Escaped                            // Left the MaxDistance sphere
	MaxStepsReached                    // Hit the step cap; treated as escaped
)

// String returns a readable name for the termination state.
func (t Termination) String() string {
	switch t {
	case Captured:
		return "captured"
	case Saturated:
		return "saturated"
	case Escaped:
		return "escaped"
	case MaxStepsReached:
		return "max-steps"
	default:
		return "marching"
	}
}

// MarchResult is the accumulator state of one ray at the end of its march.
type MarchResult struct {
	Termination Termination
	// Steps is the number of integration steps taken.
	Steps int
	// Color is the front-to-back accumulated disk emission.
	Color mgl64.Vec3
	// Alpha is the accumulated opacity; 1 for captured rays.
	Alpha float64
	// DiskSamples counts the steps whose disk sample contributed emission.
	DiskSamples int
	// Position and Direction are the final ray state; Direction selects the background sample.
	Position  mgl64.Vec3
	Direction mgl64.Vec3
	// EmittedAlpha is the summed alpha of all disk samples, before any capture.
	EmittedAlpha float64
	// DopplerWeight is the alpha-weighted sum of the Doppler terms of contributing samples.
	DopplerWeight float64
}

// SeesBackground reports whether the background should be blended behind the ray.
func (r MarchResult) SeesBackground() bool {
	return r.Termination == Escaped || r.Termination == MaxStepsReached
}

// MeanDopplerTerm returns the alpha-weighted mean beaming term of the disk samples, or 0 when
// the ray never crossed emitting disk material.
func (r MarchResult) MeanDopplerTerm() float64 {
	if r.EmittedAlpha == 0 {
		return 0
	}
	return r.DopplerWeight / r.EmittedAlpha
}

// Marcher integrates light rays through the approximate Schwarzschild field.
// Each March call is independent and safe to run concurrently with others.
type Marcher interface {
	// March integrates one ray until it is captured, saturates, escapes, or reaches the step cap.
	//
	// Parameters:
	//   - ray: primary ray with unit direction
	//   - params: the frame's parameter snapshot
	//   - t: animation time in seconds
	//
	// Returns:
	//   - MarchResult: the final accumulator state
	March(ray common.Ray, params common.SimulationParams, t float64) MarchResult

	// Mass returns the hole mass in geometric units.
	Mass() float64

	// SchwarzschildRadius returns 2M.
	SchwarzschildRadius() float64

	// Limits returns the step cap and escape distance.
	Limits() (maxSteps int, maxDistance float64)
}
