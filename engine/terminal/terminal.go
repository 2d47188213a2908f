package terminal

import (
	"context"
	"image"
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/input"
	"github.com/Barometer-2002/A-black-hole/engine/scene"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

// Viewer defaults.
const (
	DefaultFrameRate = 20.0
	// DefaultCellScale converts one terminal column into pointer units so a drag across the
	// terminal rotates about as far as the same gesture in a window.
	DefaultCellScale = 8.0
)

// halfBlock paints the upper half of a cell with the foreground and the lower half with the
// background, giving two vertical pixels per cell.
const halfBlock = '▀'

// Viewer renders a Simulation into a terminal with half-block cells and routes keyboard and
// mouse events back into it. The last row is reserved for the status line.
type Viewer interface {
	// Run drives the frame loop and the event loop until ctx is done or a quit key is pressed.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: scene.ErrNoRenderer if the simulation has no renderer, otherwise nil
	Run(ctx context.Context) error

	// Draw paints a rendered frame and the status line, scaling the image to the cell grid.
	//
	// Parameters:
	//   - img: the rendered frame
	Draw(img *image.RGBA)

	// HandleEvent applies one terminal event.
	//
	// Parameters:
	//   - ev: the tcell event
	//
	// Returns:
	//   - bool: false when the event asks the viewer to quit
	HandleEvent(ev tcell.Event) bool

	// Size returns the cell grid used for the image, excluding the status row.
	Size() (cols, rows int)

	// Status returns the status board shown on the last row.
	Status() *scene.StatusBoard
}

type viewer struct {
	mu *sync.Mutex

	screen tcell.Screen
	sim    scene.Simulation
	status *scene.StatusBoard

	frameRate  float64
	cellScale  float64
	captureDir string

	cols, rows int
	dragging   bool
	grid       *image.RGBA
}

var _ Viewer = &viewer{}

// NewViewer creates a Viewer on an initialised screen. Mouse reporting is enabled and the
// simulation viewport is sized to the cell grid.
//
// Parameters:
//   - screen: an initialised tcell screen
//   - sim: the simulation to display; its renderer must not need a surface
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the newly created viewer
func NewViewer(screen tcell.Screen, sim scene.Simulation, options ...ViewerBuilderOption) Viewer {
	v := &viewer{
		mu:         &sync.Mutex{},
		screen:     screen,
		sim:        sim,
		status:     scene.NewStatusBoard(scene.StatusTitle, scene.DefaultStatusTimeout),
		frameRate:  DefaultFrameRate,
		cellScale:  DefaultCellScale,
		captureDir: ".",
	}
	for _, opt := range options {
		opt(v)
	}

	sim.OnStatus(v.status.Show)
	screen.EnableMouse()
	screen.HideCursor()
	v.resize(screen.Size())
	return v
}

// resize recomputes the grid from the terminal size. Must be called without the mutex held.
func (v *viewer) resize(width, height int) {
	cols := max(width, 1)
	rows := max(height-1, 1)

	v.mu.Lock()
	v.cols, v.rows = cols, rows
	v.grid = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	v.mu.Unlock()

	v.sim.SetViewport(cols, rows*2)
}

func (v *viewer) Size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cols, v.rows
}

func (v *viewer) Status() *scene.StatusBoard {
	return v.status
}

func (v *viewer) Draw(img *image.RGBA) {
	v.mu.Lock()
	defer v.mu.Unlock()

	src := img
	if img.Bounds() != v.grid.Bounds() {
		draw.ApproxBiLinear.Scale(v.grid, v.grid.Bounds(), img, img.Bounds(), draw.Src, nil)
		src = v.grid
	}

	for row := 0; row < v.rows; row++ {
		for x := 0; x < v.cols; x++ {
			top := src.RGBAAt(x, row*2)
			bottom := src.RGBAAt(x, row*2+1)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			v.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}

	text, _ := v.status.Text()
	v.drawStatusLine(text)
	v.screen.Show()
}

// drawStatusLine writes text on the reserved row, clearing the rest of it.
func (v *viewer) drawStatusLine(text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(text)
	for x := 0; x < v.cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, v.rows, r, nil, style)
	}
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (v *viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.resize(ev.Size())
		v.screen.Sync()
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	}
	return true
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	action := common.ActionForKey(common.KeyFromRune(ev.Rune()))
	if v.sim.HandleAction(action) {
		return true
	}
	switch action {
	case common.ActionCapture:
		go func() {
			if _, err := v.sim.SaveHighResolutionFrame(context.Background(), v.captureDir); err != nil {
				log.Printf("[Terminal] capture failed: %v", err)
			}
		}()
	case common.ActionQuit:
		return false
	}
	return true
}

// handleMouse converts cell coordinates into pointer units and feeds the interaction machine.
// Cells are twice as tall as they are wide, so rows count double.
func (v *viewer) handleMouse(ev *tcell.EventMouse) {
	fsm := v.sim.Input()
	buttons := ev.Buttons()
	cx, cy := ev.Position()
	x := float64(cx) * v.cellScale
	y := float64(cy) * v.cellScale * 2

	switch {
	case buttons&tcell.WheelUp != 0:
		fsm.Handle(input.Wheel(-1))
		return
	case buttons&tcell.WheelDown != 0:
		fsm.Handle(input.Wheel(1))
		return
	}

	v.mu.Lock()
	wasDragging := v.dragging
	v.dragging = buttons&tcell.Button1 != 0
	v.mu.Unlock()

	switch {
	case buttons&tcell.Button1 != 0 && !wasDragging:
		fsm.Handle(input.PointerDown(x, y))
	case buttons&tcell.Button1 != 0:
		fsm.Handle(input.PointerMove(x, y))
	case wasDragging:
		fsm.Handle(input.PointerUp())
	}
}

func (v *viewer) Run(ctx context.Context) error {
	r := v.sim.Renderer()
	if r == nil {
		return scene.ErrNoRenderer
	}

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(time.Duration(float64(time.Second) / v.frameRate))
	defer ticker.Stop()
	last := time.Now()
	var lastErr string

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if ev == nil {
				return nil
			}
			if !v.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			frame := v.sim.Advance(now.Sub(last).Seconds() * scene.ReferenceFrameRate)
			last = now
			img, err := r.Render(frame)
			if err != nil {
				if msg := err.Error(); msg != lastErr {
					log.Printf("[Terminal] frame failed: %v", err)
					lastErr = msg
				}
				continue
			}
			lastErr = ""
			v.Draw(img)
		}
	}
}
