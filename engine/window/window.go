package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a desktop surface for the renderer plus the pointer, wheel and key events that drive
// the simulation. Callbacks run on the thread that calls ProcessMessages.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse wheel events.
	//
	// Parameters:
	//   - callback: function receiving the wheel delta (positive = scroll down, zoom out)
	SetScrollCallback(callback func(delta float64))

	// SetFocusLostCallback sets the callback invoked when the window loses input focus. Button
	// releases are not delivered while unfocused, so gestures in progress should be dropped.
	//
	// Parameters:
	//   - callback: function with no parameters
	SetFocusLostCallback(callback func())

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code (see common key codes)
	SetKeyDownCallback(callback func(keyCode int))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode int))

	// SetPointerDownCallback sets the callback for a primary button press.
	//
	// Parameters:
	//   - callback: function receiving the cursor position
	SetPointerDownCallback(callback func(x, y float64))

	// SetPointerUpCallback sets the callback for a primary button release.
	//
	// Parameters:
	//   - callback: function receiving the cursor position
	SetPointerUpCallback(callback func(x, y float64))

	// SetPointerMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position
	SetPointerMoveCallback(callback func(x, y float64))

	// SetTitle changes the title bar text. Must be called from the message loop thread,
	// for example inside the update callback.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// SurfaceDescriptor returns the descriptor the renderer creates its WebGPU surface from,
	// or nil once the window is closed.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open and no close was requested.
	IsRunning() bool

	// RequestClose asks the message loop to stop. Safe to call from any goroutine.
	RequestClose()

	// Close destroys the window. Closing twice returns an error.
	Close() error

	// ProcessMessages polls events until the window closes, calling the update callback after
	// each poll.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// platform is the native side of a window.
type platform interface {
	surfaceDescriptor() *wgpu.SurfaceDescriptor
	setTitle(title string)
	running() bool
	requestClose()
	poll() bool
	close() error
}

// engineWindow keeps the configuration and the callbacks; the platform delivers events into them.
type engineWindow struct {
	title string

	minWidth, minHeight int
	maxWidth, maxHeight int

	// Framebuffer size in pixels
	width, height int

	native platform

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(delta float64)
	onFocusLost   func()
	onKeyDown     func(keyCode int)
	onKeyUp       func(keyCode int)
	onPointerDown func(x, y float64)
	onPointerUp   func(x, y float64)
	onPointerMove func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow opens a GLFW window. Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Black Hole",
		minWidth:  320,
		minHeight: 200,
		maxWidth:  3840,
		maxHeight: 2160,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	native, err := openGLFW(w)
	if err != nil {
		panic(fmt.Sprintf("window: %v", err))
	}
	w.native = native
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) { w.onUpdate = callback }
func (w *engineWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *engineWindow) SetScrollCallback(callback func(delta float64)) { w.onScroll = callback }
func (w *engineWindow) SetFocusLostCallback(callback func()) { w.onFocusLost = callback }
func (w *engineWindow) SetKeyDownCallback(callback func(keyCode int)) { w.onKeyDown = callback }
func (w *engineWindow) SetKeyUpCallback(callback func(keyCode int)) { w.onKeyUp = callback }
func (w *engineWindow) SetPointerDownCallback(callback func(x, y float64)) { w.onPointerDown = callback }
func (w *engineWindow) SetPointerUpCallback(callback func(x, y float64)) { w.onPointerUp = callback }
func (w *engineWindow) SetPointerMoveCallback(callback func(x, y float64)) { w.onPointerMove = callback }

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	w.native.setTitle(title)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return w.native.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return w.native.running()
}

func (w *engineWindow) RequestClose() {
	w.native.requestClose()
}

func (w *engineWindow) Close() error {
	return w.native.close()
}

func (w *engineWindow) ProcessMessages() {
	for w.native.poll() {
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int  { return w.width }
func (w *engineWindow) Height() int { return w.height }
