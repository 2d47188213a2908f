package common

import (
	"fmt"
	"math"
)

// SimulationParams holds the artistic tuning values sampled once per frame by the shading stages.
// It is passed by value so a frame always sees one consistent snapshot.
type SimulationParams struct {
	// DopplerPower is the exponent applied to the (1 + beaming term) brightness factor. Range [1, 5].
	DopplerPower float64
	// DopplerColorShift scales the hue rotation driven by the beaming term. Range [0, 0.5].
	DopplerColorShift float64
	// LuminosityScale multiplies disk emission. Range [0.5, 5].
	LuminosityScale float64
	// HueShift is a global hue offset applied to disk color, in turns. Range [0, 1].
	HueShift float64
	// Exposure is the linear multiplier applied before tone mapping. Range [0.1, 2].
	Exposure float64
	// BloomStrength is forwarded to the presentation layer untouched. Range [0, 5].
	BloomStrength float64
}

// ParamRange is the inclusive domain of one SimulationParams field.
type ParamRange struct {
	Min, Max float64
}

var (
	DopplerPowerRange      = ParamRange{1, 5}
	DopplerColorShiftRange = ParamRange{0, 0.5}
	LuminosityScaleRange   = ParamRange{0.5, 5}
	HueShiftRange          = ParamRange{0, 1}
	ExposureRange          = ParamRange{0.1, 2}
	BloomStrengthRange     = ParamRange{0, 5}
)

// DefaultSimulationParams returns the stock tuning of the renderer.
//
// Returns:
//   - SimulationParams: the default parameter set
func DefaultSimulationParams() SimulationParams {
	return SimulationParams{
		DopplerPower:      3.0,
		DopplerColorShift: 0.15,
		LuminosityScale:   0.6,
		HueShift:          0.0,
		Exposure:          0.6,
		BloomStrength:     1.2,
	}
}

// Clamped returns a copy of p with every field forced into its documented range.
// NaN fields fall back to the default value; infinities clamp to the nearest bound.
//
// Returns:
//   - SimulationParams: the sanitized copy
func (p SimulationParams) Clamped() SimulationParams {
	d := DefaultSimulationParams()
	return SimulationParams{
		DopplerPower:      DopplerPowerRange.apply(p.DopplerPower, d.DopplerPower),
		DopplerColorShift: DopplerColorShiftRange.apply(p.DopplerColorShift, d.DopplerColorShift),
		LuminosityScale:   LuminosityScaleRange.apply(p.LuminosityScale, d.LuminosityScale),
		HueShift:          HueShiftRange.apply(p.HueShift, d.HueShift),
		Exposure:          ExposureRange.apply(p.Exposure, d.Exposure),
		BloomStrength:     BloomStrengthRange.apply(p.BloomStrength, d.BloomStrength),
	}
}

// Validate reports the first field that lies outside its range.
//
// Returns:
//   - error: nil when every field is within range
func (p SimulationParams) Validate() error {
	checks := []struct {
		name  string
		value float64
		rng   ParamRange
	}{
		{"dopplerPower", p.DopplerPower, DopplerPowerRange},
		{"dopplerColorShift", p.DopplerColorShift, DopplerColorShiftRange},
		{"luminosityScale", p.LuminosityScale, LuminosityScaleRange},
		{"hueShift", p.HueShift, HueShiftRange},
		{"exposure", p.Exposure, ExposureRange},
		{"bloomStrength", p.BloomStrength, BloomStrengthRange},
	}
	for _, c := range checks {
		if !IsFinite(c.value) || c.value < c.rng.Min || c.value > c.rng.Max {
			return fmt.Errorf("%s %v outside [%v, %v]", c.name, c.value, c.rng.Min, c.rng.Max)
		}
	}
	return nil
}

func (r ParamRange) apply(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return Clamp(v, r.Min, r.Max)
}
