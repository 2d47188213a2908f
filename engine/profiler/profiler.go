package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/Barometer-2002/A-black-hole/engine/renderer"
)

// Profiler aggregates render statistics and logs one summary line per interval. It is owned
// by the render loop and not safe for concurrent use.
type Profiler struct {
	interval time.Duration
	since    time.Time
	frames   int

	trace renderer.FrameStats
	busy  time.Duration

	mem     runtime.MemStats
	prevGC  uint32
	prevTot uint64

	logf func(format string, args ...any)
	now  func() time.Time
}

// NewProfiler returns a Profiler that logs once per second through the standard logger.
//
// Returns:
//   - *Profiler: the new profiler
func NewProfiler() *Profiler {
	return &Profiler{
		interval: time.Second,
		since:    time.Now(),
		logf:     log.Printf,
		now:      time.Now,
	}
}

// Record folds one frame's statistics into the running interval.
//
// Parameters:
//   - stats: what the renderer reported for the frame
func (p *Profiler) Record(stats renderer.FrameStats) {
	t := &p.trace
	t.Width, t.Height = stats.Width, stats.Height
	t.Captured += stats.Captured
	t.Saturated += stats.Saturated
	t.Escaped += stats.Escaped
	t.MaxSteps += stats.MaxSteps
	t.TotalSteps += stats.TotalSteps
	t.DiskPixels += stats.DiskPixels
	p.busy += stats.Duration
}

// Tick counts a frame. Once the interval has passed it logs frame rate, trace cost and memory
// use, then starts a new interval.
//
// Returns:
//   - bool: whether a line was logged
func (p *Profiler) Tick() bool {
	p.frames++
	now := p.now()
	window := now.Sub(p.since)
	if window < p.interval {
		return false
	}

	p.logf("[Profiler] FPS: %.2f | %s | %s", float64(p.frames)/window.Seconds(), p.traceLine(), p.memLine(window))

	p.frames = 0
	p.since = now
	p.trace = renderer.FrameStats{}
	p.busy = 0
	return true
}

func (p *Profiler) traceLine() string {
	var ms float64
	if p.frames > 0 {
		ms = float64(p.busy.Microseconds()) / 1000 / float64(p.frames)
	}
	t := p.trace
	n := t.Traced()
	if n == 0 {
		// GPU frames carry no per-pixel counts
		return fmt.Sprintf("%dx%d | Frame: %.2f ms", t.Width, t.Height, ms)
	}
	share := func(k int) float64 { return 100 * float64(k) / float64(n) }
	return fmt.Sprintf("%dx%d | Frame: %.2f ms | Steps: %.1f avg | Captured %.1f%% Escaped %.1f%% Saturated %.1f%% Capped %.1f%%",
		t.Width, t.Height, ms, t.MeanSteps(),
		share(t.Captured), share(t.Escaped), share(t.Saturated), share(t.MaxSteps))
}

const mib = 1 << 20

// memLine reports live heap, allocation churn over the window and GC pauses since the last line.
func (p *Profiler) memLine(window time.Duration) string {
	m := &p.mem
	runtime.ReadMemStats(m)

	rate := float64(m.TotalAlloc-p.prevTot) / mib / window.Seconds()

	// PauseNs holds the most recent 256 pauses.
	var last, worst uint64
	if m.NumGC > 0 {
		last = m.PauseNs[(m.NumGC-1)%256] / 1000
		from := p.prevGC
		if m.NumGC-from > 256 {
			from = m.NumGC - 256
		}
		for i := from; i < m.NumGC; i++ {
			worst = max(worst, m.PauseNs[i%256]/1000)
		}
	}
	p.prevGC, p.prevTot = m.NumGC, m.TotalAlloc

	return fmt.Sprintf("Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		float64(m.Alloc)/mib, rate, m.NumGC, last, worst, float64(m.Sys)/mib)
}
