package renderer

import (
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
	"time"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/camera"
	"github.com/Barometer-2002/A-black-hole/engine/geodesic"
	"github.com/Barometer-2002/A-black-hole/engine/starfield"
	"github.com/Barometer-2002/A-black-hole/engine/tonemap"
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl64"
)

// Worker pool sizing for CPU tracing.
const (
	// rowQueueSize bounds the pending row tasks; SubmitTask blocks beyond it until workers drain.
	rowQueueSize = 256
	// workerIdleTimeout is handed to the pool for idle worker shutdown.
	workerIdleTimeout = 1 * time.Second
)

// DefaultWorkers leaves one core for the frame loop and the window thread.
func DefaultWorkers() int {
	return max(runtime.NumCPU()-1, 1)
}

type cpuRendererBackendImpl struct {
	mu *sync.Mutex

	// pool holds reusable goroutines; one task traces one image row.
	pool    worker.DynamicWorkerPool
	workers int

	marcher     geodesic.Marcher
	stars       starfield.Generator
	viewOptions []camera.ViewOption
}

type cpuRendererBackend interface {
	// Render traces every pixel of the frame and returns the tone-mapped image.
	// Frames are rendered one at a time; concurrent callers are serialized.
	//
	// Parameters:
	//   - frame: the frame snapshot
	//
	// Returns:
	//   - *image.RGBA: the frame, opaque, row 0 at the top
	//   - FrameStats: termination and step statistics
	//   - error: ErrInvalidFrameSize for a non-positive resolution
	Render(frame common.Frame) (*image.RGBA, FrameStats, error)

	// Workers returns the worker pool size.
	Workers() int

	// Release stops the worker pool.
	Release()
}

var _ cpuRendererBackend = &cpuRendererBackendImpl{}

func newCPURendererBackend(workers int, marcher geodesic.Marcher, stars starfield.Generator, viewOptions []camera.ViewOption) cpuRendererBackend {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &cpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		pool:        worker.NewDynamicWorkerPool(workers, rowQueueSize, workerIdleTimeout),
		workers:     workers,
		marcher:     marcher,
		stars:       stars,
		viewOptions: viewOptions,
	}
}

func (b *cpuRendererBackendImpl) Workers() int {
	return b.workers
}

func (b *cpuRendererBackendImpl) Render(frame common.Frame) (*image.RGBA, FrameStats, error) {
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, FrameStats{}, fmt.Errorf("%w: %dx%d", ErrInvalidFrameSize, frame.Width, frame.Height)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	view := camera.NewView(frame, b.viewOptions...)
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	rows := make([]FrameStats, frame.Height)

	// The pool's Wait blocks until workers idle out, so a WaitGroup is the per-frame barrier.
	var wg sync.WaitGroup
	for y := range frame.Height {
		wg.Add(1)
		row := y
		b.pool.SubmitTask(worker.Task{
			ID: row,
			Do: func() (any, error) {
				defer wg.Done()
				b.traceRow(img, view, frame, row, &rows[row])
				return nil, nil
			},
		})
	}
	wg.Wait()

	stats := FrameStats{Width: frame.Width, Height: frame.Height}
	for _, r := range rows {
		stats.merge(r)
	}
	stats.Duration = time.Since(start)
	return img, stats, nil
}

// traceRow writes one image row. Rows are disjoint slices of img.Pix, so workers never share memory.
func (b *cpuRendererBackendImpl) traceRow(img *image.RGBA, view camera.View, frame common.Frame, y int, stats *FrameStats) {
	off := img.PixOffset(0, y)
	for x := range frame.Width {
		c, res := b.tracePixel(view, frame, x, y)
		img.Pix[off+0] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
		img.Pix[off+3] = c.A
		off += 4
		stats.add(res)
	}
}

// tracePixel marches the primary ray of pixel (x, y), fills the background from the starfield
// along the escape direction and tone-maps the result.
func (b *cpuRendererBackendImpl) tracePixel(view camera.View, frame common.Frame, x, y int) (color.RGBA, geodesic.MarchResult) {
	res := b.marcher.March(view.PixelRay(x, y), frame.Params, frame.Time)

	var background mgl64.Vec3
	if res.SeesBackground() {
		background = b.stars.Sample(res.Direction, frame.Time)
	}
	return tonemap.Encode(tonemap.Resolve(res.Color, res.Alpha, background, frame.Params.Exposure)), res
}

func (b *cpuRendererBackendImpl) Release() {
	b.pool.Stop()
}
