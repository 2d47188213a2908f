package renderer

import (
	"time"

	"github.com/Barometer-2002/A-black-hole/engine/geodesic"
)

// FrameStats summarizes one rendered frame. Termination counts are only filled by CPU tracing;
// GPU frames report their size and duration.
type FrameStats struct {
	Width, Height int

	Captured  int
	Saturated int
	Escaped   int
	MaxSteps  int

	// TotalSteps is the sum of integration steps over all traced pixels.
	TotalSteps int
	// DiskPixels counts pixels that picked up any disk emission.
	DiskPixels int

	Duration time.Duration
}

// Pixels returns the number of pixels in the frame.
func (s FrameStats) Pixels() int {
	return s.Width * s.Height
}

// Traced returns the number of pixels with a recorded termination.
func (s FrameStats) Traced() int {
	return s.Captured + s.Saturated + s.Escaped + s.MaxSteps
}

// MeanSteps returns the average integration steps per traced pixel, or 0 when nothing was traced.
func (s FrameStats) MeanSteps() float64 {
	n := s.Traced()
	if n == 0 {
		return 0
	}
	return float64(s.TotalSteps) / float64(n)
}

func (s *FrameStats) add(res geodesic.MarchResult) {
	switch res.Termination {
	case geodesic.Captured:
		s.Captured++
	case geodesic.Saturated:
		s.Saturated++
	case geodesic.Escaped:
		s.Escaped++
	case geodesic.MaxStepsReached:
		s.MaxSteps++
	}
	s.TotalSteps += res.Steps
	if res.DiskSamples > 0 {
		s.DiskPixels++
	}
}

func (s *FrameStats) merge(o FrameStats) {
	s.Captured += o.Captured
	s.Saturated += o.Saturated
	s.Escaped += o.Escaped
	s.MaxSteps += o.MaxSteps
	s.TotalSteps += o.TotalSteps
	s.DiskPixels += o.DiskPixels
}
