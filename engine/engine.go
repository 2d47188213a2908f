package engine

import (
	"context"
	"errors"
	"image"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/input"
	"github.com/Barometer-2002/A-black-hole/engine/profiler"
	"github.com/Barometer-2002/A-black-hole/engine/scene"
	"github.com/Barometer-2002/A-black-hole/engine/window"
)

const defaultTickRate = 60.0

type engine struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	window     window.Window
	simulation scene.Simulation
	status     *scene.StatusBoard
	lastTitle  string
	captureDir string

	profiler  *profiler.Profiler
	profiling atomic.Bool

	// Periods in nanoseconds; the loops pick up changes on their next iteration.
	tickPeriod  atomic.Int64
	framePeriod atomic.Int64

	onTick   func(deltaTime float32)
	onRender func(deltaTime float32)
	onFrame  func(img *image.RGBA)
}

// Engine runs a Simulation: a fixed-rate loop advances the camera and the clock, a render loop
// draws the latest snapshot, and an optional window feeds input and shows status in its title.
type Engine interface {
	// Window returns the attached window, or nil for a headless engine.
	Window() window.Window

	// Simulation returns the simulation the engine advances and renders.
	Simulation() scene.Simulation

	// Status returns the status board fed by simulation notifications.
	Status() *scene.StatusBoard

	// EnableProfiler starts logging frame and trace statistics once per second.
	EnableProfiler()

	// DisableProfiler stops the statistics log.
	DisableProfiler()

	// SetTickRate sets how many times per second the simulation advances.
	//
	// Parameters:
	//   - fps: steps per second, 60 when <= 0
	SetTickRate(fps float64)

	// SetTickCallback registers a function called after every simulation step.
	//
	// Parameters:
	//   - callback: receives the step length in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers a function called after every rendered frame.
	//
	// Parameters:
	//   - callback: receives the time since the previous frame in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit caps the render loop.
	//
	// Parameters:
	//   - fps: frames per second, 0 or less for uncapped
	SetRenderFrameLimit(fps float64)

	// HandleKey applies the command bound to a key. Captures run in the background and quit
	// stops the engine.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	HandleKey(keyCode int)

	// Run blocks until the window closes or Quit is called.
	Run()

	// Quit stops the loops and asks the window to close. Idempotent.
	Quit()
}

// NewEngine creates an Engine. Without WithSimulation a default Simulation is created. An
// attached window has its input, resize and title wired to the simulation.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &engine{
		ctx:        ctx,
		cancel:     cancel,
		profiler:   profiler.NewProfiler(),
		status:     scene.NewStatusBoard(scene.StatusTitle, scene.DefaultStatusTimeout),
		captureDir: ".",
	}
	e.tickPeriod.Store(int64(periodOf(defaultTickRate)))

	for _, opt := range options {
		opt(e)
	}
	if e.simulation == nil {
		e.simulation = scene.NewSimulation()
	}
	e.simulation.OnStatus(e.status.Show)

	if e.window != nil {
		e.attach(e.window)
	}
	return e
}

// periodOf converts a rate to a period; rates <= 0 give 0.
func periodOf(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

// attach routes window events into the simulation.
func (e *engine) attach(w window.Window) {
	sim := e.simulation
	fsm := sim.Input()

	sim.SetViewport(w.Width(), w.Height())
	w.SetResizeCallback(func(width, height int) {
		if r := sim.Renderer(); r != nil {
			r.Resize(width, height)
		}
		sim.SetViewport(width, height)
	})
	w.SetPointerDownCallback(func(x, y float64) { fsm.Handle(input.PointerDown(x, y)) })
	w.SetPointerMoveCallback(func(x, y float64) { fsm.Handle(input.PointerMove(x, y)) })
	w.SetPointerUpCallback(func(_, _ float64) { fsm.Handle(input.PointerUp()) })
	w.SetScrollCallback(func(delta float64) { fsm.Handle(input.Wheel(delta)) })
	w.SetFocusLostCallback(fsm.Reset)
	w.SetKeyDownCallback(e.HandleKey)

	// SetTitle is only legal on the message loop thread.
	w.SetUpdateCallback(func() {
		if text, _ := e.status.Text(); text != e.lastTitle {
			e.lastTitle = text
			w.SetTitle(text)
		}
	})
}

func (e *engine) Window() window.Window { return e.window }
func (e *engine) Simulation() scene.Simulation { return e.simulation }
func (e *engine) Status() *scene.StatusBoard { return e.status }
func (e *engine) EnableProfiler() { e.profiling.Store(true) }
func (e *engine) DisableProfiler() { e.profiling.Store(false) }
func (e *engine) SetTickCallback(cb func(float32)) { e.onTick = cb }
func (e *engine) SetRenderCallback(cb func(float32)) { e.onRender = cb }

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = defaultTickRate
	}
	e.tickPeriod.Store(int64(periodOf(fps)))
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.framePeriod.Store(int64(periodOf(fps)))
}

func (e *engine) HandleKey(keyCode int) {
	action := common.ActionForKey(keyCode)
	if e.simulation.HandleAction(action) {
		return
	}
	switch action {
	case common.ActionCapture:
		go func() {
			if _, err := e.simulation.SaveHighResolutionFrame(e.ctx, e.captureDir); err != nil {
				log.Printf("[Capture] failed: %v", err)
			}
		}()
	case common.ActionQuit:
		e.Quit()
	}
}

func (e *engine) Run() {
	e.wg.Add(2)
	go e.stepLoop()
	go e.renderLoop()

	if e.window != nil {
		// The message loop owns this thread until the window closes.
		e.window.ProcessMessages()
		e.cancel()
	}
	e.wg.Wait()
}

func (e *engine) Quit() {
	e.cancel()
	if e.window != nil {
		e.window.RequestClose()
	}
}

// stepLoop advances the simulation at the tick rate, converting wall time to reference frames.
func (e *engine) stepLoop() {
	defer e.wg.Done()

	period := time.Duration(e.tickPeriod.Load())
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-e.ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			e.simulation.Advance(dt.Seconds() * scene.ReferenceFrameRate)
			if e.onTick != nil {
				e.onTick(float32(dt.Seconds()))
			}
			if p := time.Duration(e.tickPeriod.Load()); p != period {
				period = p
				ticker.Reset(p)
			}
		}
	}
}

// renderLoop draws the latest snapshot as fast as the renderer allows, or at the frame limit.
// A panic in the renderer stops the engine instead of the process.
func (e *engine) renderLoop() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render loop stopped by panic: %v", r)
			e.cancel()
		}
	}()

	last := time.Now()
	var lastErr string

	for e.ctx.Err() == nil {
		start := time.Now()
		dt := start.Sub(last)
		last = start

		period := time.Duration(e.framePeriod.Load())
		switch err := e.renderFrame(); {
		case errors.Is(err, scene.ErrNoRenderer):
			// Nothing to draw; idle at the tick rate until a renderer is attached.
			if period <= 0 {
				period = time.Duration(e.tickPeriod.Load())
			}
		case err != nil:
			// One log line per distinct failure, not per frame
			if msg := err.Error(); msg != lastErr {
				log.Printf("[Engine] frame failed: %v", err)
				lastErr = msg
			}
		default:
			lastErr = ""
		}

		if e.onRender != nil {
			e.onRender(float32(dt.Seconds()))
		}
		if e.profiling.Load() {
			e.profiler.Tick()
		}

		if wait := period - time.Since(start); wait > 0 {
			select {
			case <-e.ctx.Done():
			case <-time.After(wait):
			}
		}
	}
}

// renderFrame draws the current snapshot to the surface, or hands the traced image to the
// frame callback when the renderer has no surface. It returns scene.ErrNoRenderer when
// there is nothing to draw with.
func (e *engine) renderFrame() error {
	r := e.simulation.Renderer()
	if r == nil {
		return scene.ErrNoRenderer
	}
	frame := e.simulation.Frame()

	if r.Backend().NeedsSurface() {
		if err := r.Draw(frame); err != nil {
			return err
		}
	} else {
		img, err := r.Render(frame)
		if err != nil {
			return err
		}
		if e.onFrame != nil {
			e.onFrame(img)
		}
	}
	if e.profiling.Load() {
		e.profiler.Record(r.Stats())
	}
	return nil
}
