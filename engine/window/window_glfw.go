package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errNotOpen = errors.New("window: not open")

// glfwPlatform is the desktop backend. It translates GLFW callbacks into the owner's
// delivery-agnostic callbacks.
type glfwPlatform struct {
	owner  *engineWindow
	handle *glfw.Window

	pressed bool
	closed  bool
}

var _ platform = &glfwPlatform{}

// openGLFW creates a window without a client API, since presentation goes through WebGPU.
func openGLFW(w *engineWindow) (*glfwPlatform, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	handle.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	p := &glfwPlatform{owner: w, handle: handle}
	handle.SetKeyCallback(p.key)
	handle.SetScrollCallback(p.scroll)
	handle.SetMouseButtonCallback(p.button)
	handle.SetCursorPosCallback(p.cursor)
	handle.SetCursorEnterCallback(p.enter)
	handle.SetFocusCallback(p.focus)
	handle.SetFramebufferSizeCallback(p.framebuffer)

	// Framebuffer pixels, not screen units, on high-DPI displays.
	w.width, w.height = handle.GetFramebufferSize()
	return p, nil
}

// key forwards GLFW key codes unchanged; printable keys are their ASCII values.
func (p *glfwPlatform) key(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	w := p.owner
	if action == glfw.Release {
		if w.onKeyUp != nil {
			w.onKeyUp(int(key))
		}
		return
	}
	if w.onKeyDown != nil {
		w.onKeyDown(int(key))
	}
}

// scroll flips GLFW's sign: a positive delta means scrolling down, away from the hole.
func (p *glfwPlatform) scroll(_ *glfw.Window, _, yoff float64) {
	if yoff != 0 && p.owner.onScroll != nil {
		p.owner.onScroll(-yoff)
	}
}

func (p *glfwPlatform) button(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	x, y := p.handle.GetCursorPos()
	if action == glfw.Press {
		p.pressed = true
		if p.owner.onPointerDown != nil {
			p.owner.onPointerDown(x, y)
		}
		return
	}
	p.release(x, y)
}

func (p *glfwPlatform) cursor(_ *glfw.Window, x, y float64) {
	if p.owner.onPointerMove != nil {
		p.owner.onPointerMove(x, y)
	}
}

// enter ends a drag when the cursor leaves the window with the button held.
func (p *glfwPlatform) enter(_ *glfw.Window, entered bool) {
	if !entered {
		p.release(p.handle.GetCursorPos())
	}
}

// focus forgets the held button on focus loss; its release will go to another window.
func (p *glfwPlatform) focus(_ *glfw.Window, focused bool) {
	if focused {
		return
	}
	p.pressed = false
	if p.owner.onFocusLost != nil {
		p.owner.onFocusLost()
	}
}

func (p *glfwPlatform) release(x, y float64) {
	if !p.pressed {
		return
	}
	p.pressed = false
	if p.owner.onPointerUp != nil {
		p.owner.onPointerUp(x, y)
	}
}

func (p *glfwPlatform) framebuffer(_ *glfw.Window, width, height int) {
	p.owner.width, p.owner.height = width, height
	if p.owner.onResize != nil {
		p.owner.onResize(width, height)
	}
}

func (p *glfwPlatform) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	if p.closed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(p.handle)
}

func (p *glfwPlatform) setTitle(title string) {
	if !p.closed {
		p.handle.SetTitle(title)
	}
}

func (p *glfwPlatform) running() bool {
	return !p.closed && !p.handle.ShouldClose()
}

func (p *glfwPlatform) requestClose() {
	if !p.closed {
		p.handle.SetShouldClose(true)
	}
}

// poll drains pending GLFW events without blocking.
func (p *glfwPlatform) poll() bool {
	glfw.PollEvents()
	return p.running()
}

func (p *glfwPlatform) close() error {
	if p.closed {
		return errNotOpen
	}
	p.closed = true
	p.handle.Destroy()
	glfw.Terminate()
	return nil
}
