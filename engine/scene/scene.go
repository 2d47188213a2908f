package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/camera"
	"github.com/Barometer-2002/A-black-hole/engine/input"
	"github.com/Barometer-2002/A-black-hole/engine/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// Simulation defaults.
const (
	// ReferenceFrameRate converts Advance frames to seconds of simulation time.
	ReferenceFrameRate = 60.0
	// CapturePixelRatio is the sampling density of a high-resolution capture.
	CapturePixelRatio = 4.0
	// MaxPixelRatio bounds the interactive sampling density.
	MaxPixelRatio = 4.0
	// MinPixelRatio bounds the interactive sampling density from below.
	MinPixelRatio = 0.1

	HueStep      = 0.05
	ExposureStep = 0.1
)

// ErrCaptureInProgress is returned when a capture is requested while another one runs.
var ErrCaptureInProgress = errors.New("scene: capture already in progress")

// ErrNoRenderer is returned by captures on a Simulation without a renderer.
var ErrNoRenderer = errors.New("scene: no renderer attached")

// Simulation owns the camera, the interaction machine, the parameter set and the clock, and
// hands immutable frame snapshots to a renderer. It is the command surface a host drives.
// Thread-safe for concurrent access.
type Simulation interface {
	// Rotate adds azimuth and polar deltas (radians) to the camera target.
	//
	// Parameters:
	//   - dTheta: azimuth delta
	//   - dPhi: polar angle delta, clamped
	Rotate(dTheta, dPhi float64)

	// Zoom adds a radius delta to the camera target and notifies the new distance.
	//
	// Parameters:
	//   - delta: radius delta, positive moves away
	//
	// Returns:
	//   - float64: the new target radius
	Zoom(delta float64) float64

	// ZoomIn moves the camera target one step closer and notifies the new distance.
	ZoomIn() float64

	// ZoomOut moves the camera target one step away and notifies the new distance.
	ZoomOut() float64

	// SetAutoRotate switches the azimuthal drift on or off and notifies the change.
	//
	// Parameters:
	//   - on: true to enable
	SetAutoRotate(on bool)

	// AutoRotate reports whether auto-rotation is on.
	AutoRotate() bool

	// SetParams stages a parameter set. It is clamped and takes effect at the next Advance,
	// so a frame in flight never sees a partial update.
	//
	// Parameters:
	//   - p: the new parameters
	SetParams(p common.SimulationParams)

	// AdjustParams stages a change derived from the latest staged or active parameters.
	//
	// Parameters:
	//   - fn: receives the latest parameters and returns the new ones
	AdjustParams(fn func(p common.SimulationParams) common.SimulationParams)

	// Params returns the parameters of the current frame.
	Params() common.SimulationParams

	// HandleAction applies a viewer key command.
	//
	// Parameters:
	//   - a: the action
	//
	// Returns:
	//   - bool: false for actions the host must perform itself (capture, quit, none)
	HandleAction(a common.Action) bool

	// Advance moves the clock and the camera by a number of reference frames and swaps in staged
	// parameters. Call it strictly before rendering the frame it produces.
	//
	// Parameters:
	//   - frames: elapsed time in reference frames (1 = one frame at ReferenceFrameRate)
	//
	// Returns:
	//   - common.Frame: the snapshot to render
	Advance(frames float64) common.Frame

	// Frame returns the snapshot of the last Advance at the current viewport and pixel ratio.
	Frame() common.Frame

	// CaptureHighResolutionFrame renders the current frame at CapturePixelRatio through the
	// renderer's CPU path from its own snapshot. The interactive density is never touched.
	//
	// Parameters:
	//   - ctx: checked before the pass starts; the pass itself is not interruptible
	//
	// Returns:
	//   - *image.RGBA: the supersampled frame
	//   - error: ctx.Err(), ErrCaptureInProgress, ErrNoRenderer or a render error
	CaptureHighResolutionFrame(ctx context.Context) (*image.RGBA, error)

	// SaveHighResolutionFrame captures and writes the frame as PNG into dir.
	//
	// Parameters:
	//   - ctx: passed to CaptureHighResolutionFrame
	//   - dir: output directory
	//
	// Returns:
	//   - string: the written path
	//   - error: capture or I/O error
	SaveHighResolutionFrame(ctx context.Context, dir string) (string, error)

	// Input returns the interaction machine viewers feed pointer, wheel and touch events into.
	Input() input.InteractionStateMachine

	// Camera returns the camera controller.
	Camera() camera.CameraController

	// Renderer returns the attached renderer, or nil.
	Renderer() renderer.Renderer

	// SetRenderer attaches the renderer used by captures.
	SetRenderer(r renderer.Renderer)

	// OnStatus registers a listener for status notifications.
	OnStatus(listener input.StatusListener)

	// SetViewport sets the interactive viewport size in display units.
	SetViewport(width, height int)

	// Viewport returns the interactive viewport size in display units.
	Viewport() (int, int)

	// SetPixelRatio sets render pixels per display unit, clamped to [MinPixelRatio, MaxPixelRatio].
	SetPixelRatio(ratio float64)

	// PixelRatio returns render pixels per display unit.
	PixelRatio() float64

	// Time returns the simulation clock in seconds.
	Time() float64
}

// simulation is the implementation of the Simulation interface.
type simulation struct {
	mu *sync.Mutex

	camera   camera.CameraController
	input    input.InteractionStateMachine
	renderer renderer.Renderer

	params        common.SimulationParams
	pendingParams *common.SimulationParams
	autoRotate    bool

	position     mgl64.Vec3
	target       mgl64.Vec3
	time         float64
	screenOffset mgl64.Vec2

	width, height int
	pixelRatio    float64

	listeners    []input.StatusListener
	inputOptions []input.InteractionBuilderOption
	capturing    atomic.Bool
	now          func() time.Time
}

var _ Simulation = &simulation{}

// NewSimulation creates a Simulation with the default camera, auto-rotation on and the
// default parameter set.
//
// Parameters:
//   - options: functional options to configure the simulation
//
// Returns:
//   - Simulation: the newly created simulation
func NewSimulation(options ...SimulationBuilderOption) Simulation {
	s := &simulation{
		mu:           &sync.Mutex{},
		params:       common.DefaultSimulationParams(),
		autoRotate:   true,
		screenOffset: mgl64.Vec2{0, camera.DefaultScreenOffsetY},
		width:        1,
		height:       1,
		pixelRatio:   1,
		now:          time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.camera == nil {
		s.camera = camera.NewCameraController()
	}
	s.input = input.NewInteractionStateMachine(s.camera,
		append([]input.InteractionBuilderOption{input.WithStatusListener(s.emit)}, s.inputOptions...)...)
	s.params = s.params.Clamped()
	s.position, s.target = s.camera.Position(), s.camera.Target()
	return s
}

// emit fans a notification out to the listeners. Must be called without the mutex held.
func (s *simulation) emit(message string) {
	s.mu.Lock()
	listeners := s.listeners
	s.mu.Unlock()
	for _, l := range listeners {
		l(message)
	}
}

func (s *simulation) Rotate(dTheta, dPhi float64) {
	s.camera.Rotate(dTheta, dPhi)
}

func (s *simulation) Zoom(delta float64) float64 {
	r := s.camera.Zoom(delta)
	s.emit(input.FormatDistance(r))
	return r
}

func (s *simulation) ZoomIn() float64 {
	r := s.camera.ZoomIn()
	s.emit(input.FormatDistance(r))
	return r
}

func (s *simulation) ZoomOut() float64 {
	r := s.camera.ZoomOut()
	s.emit(input.FormatDistance(r))
	return r
}

func (s *simulation) SetAutoRotate(on bool) {
	s.mu.Lock()
	s.autoRotate = on
	s.mu.Unlock()
	s.emit(AutoRotateStatus(on))
}

func (s *simulation) AutoRotate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoRotate
}

func (s *simulation) SetParams(p common.SimulationParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p = p.Clamped()
	s.pendingParams = &p
}

func (s *simulation) AdjustParams(fn func(p common.SimulationParams) common.SimulationParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	latest := s.params
	if s.pendingParams != nil {
		latest = *s.pendingParams
	}
	p := fn(latest).Clamped()
	s.pendingParams = &p
}

func (s *simulation) Params() common.SimulationParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *simulation) HandleAction(a common.Action) bool {
	switch a {
	case common.ActionZoomIn:
		s.ZoomIn()
	case common.ActionZoomOut:
		s.ZoomOut()
	case common.ActionToggleAutoRotate:
		s.SetAutoRotate(!s.AutoRotate())
	case common.ActionHueDown, common.ActionHueUp:
		step := HueStep
		if a == common.ActionHueDown {
			step = -step
		}
		s.AdjustParams(func(p common.SimulationParams) common.SimulationParams {
			p.HueShift += step
			return p
		})
	case common.ActionExposureUp, common.ActionExposureDown:
		step := ExposureStep
		if a == common.ActionExposureDown {
			step = -step
		}
		s.AdjustParams(func(p common.SimulationParams) common.SimulationParams {
			p.Exposure += step
			return p
		})
	default:
		return false
	}
	return true
}

func (s *simulation) Advance(frames float64) common.Frame {
	s.mu.Lock()
	autoRotate := s.autoRotate
	s.mu.Unlock()

	// The camera and input machine carry their own locks; query them without holding ours.
	pos, target := s.camera.AdvanceBy(frames, autoRotate, s.input.IsDragging())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingParams != nil {
		s.params = *s.pendingParams
		s.pendingParams = nil
	}
	if frames > 0 {
		s.time += frames / ReferenceFrameRate
	}
	s.position, s.target = pos, target
	return s.frameLocked(s.pixelRatio)
}

func (s *simulation) Frame() common.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked(s.pixelRatio)
}

// frameLocked builds the snapshot at the given density.
// Caller must hold the mutex.
func (s *simulation) frameLocked(ratio float64) common.Frame {
	return common.Frame{
		Width:        max(int(math.Round(float64(s.width)*ratio)), 1),
		Height:       max(int(math.Round(float64(s.height)*ratio)), 1),
		Position:     s.position,
		Target:       s.target,
		Params:       s.params,
		Time:         s.time,
		ScreenOffset: s.screenOffset,
	}
}

func (s *simulation) CaptureHighResolutionFrame(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.capturing.CompareAndSwap(false, true) {
		return nil, ErrCaptureInProgress
	}
	defer s.capturing.Store(false)

	// The capture snapshot carries its own density; interactive frames keep theirs.
	s.mu.Lock()
	r := s.renderer
	frame := s.frameLocked(CapturePixelRatio)
	s.mu.Unlock()

	if r == nil {
		return nil, ErrNoRenderer
	}
	s.emit(StatusCapturing)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := s.now()
	img, err := r.Render(frame)
	if err != nil {
		return nil, fmt.Errorf("capture %dx%d: %w", frame.Width, frame.Height, err)
	}
	log.Printf("[Capture] %dx%d in %v", frame.Width, frame.Height, s.now().Sub(start))
	return img, nil
}

func (s *simulation) SaveHighResolutionFrame(ctx context.Context, dir string) (string, error) {
	img, err := s.CaptureHighResolutionFrame(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, CaptureFileName(s.now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create capture file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode capture: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close capture file: %w", err)
	}

	log.Printf("[Capture] saved %s", path)
	s.emit(StatusSaved)
	return path, nil
}

func (s *simulation) Input() input.InteractionStateMachine {
	return s.input
}

func (s *simulation) Camera() camera.CameraController {
	return s.camera
}

func (s *simulation) Renderer() renderer.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer
}

func (s *simulation) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer = r
}

func (s *simulation) OnStatus(listener input.StatusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *simulation) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = max(width, 1), max(height, 1)
}

func (s *simulation) Viewport() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *simulation) SetPixelRatio(ratio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if math.IsNaN(ratio) {
		return
	}
	s.pixelRatio = common.Clamp(ratio, MinPixelRatio, MaxPixelRatio)
}

func (s *simulation) PixelRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pixelRatio
}

func (s *simulation) Time() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.time
}
