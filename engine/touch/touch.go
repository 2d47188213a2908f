package touch

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/input"
	"github.com/Barometer-2002/A-black-hole/engine/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultPixelRatio keeps the CPU trace affordable on phone-sized displays.
const DefaultPixelRatio = 0.5

// Snapshot is the raw input of one update, gathered from ebiten or built by hand in tests.
type Snapshot struct {
	Touches   []mgl64.Vec2
	Cursor    mgl64.Vec2
	MouseDown bool
	WheelY    float64 // ebiten convention, positive scrolls up
	Runes     []rune
	Escape    bool
	// Unfocused is set while the window does not have input focus.
	Unfocused bool
}

// Game is an ebiten.Game showing a Simulation. Touches drive rotation and pinch zoom; a mouse
// is used when no finger is down.
type Game struct {
	mu *sync.Mutex

	sim        scene.Simulation
	status     *scene.StatusBoard
	captureDir string

	fingers   int
	mouseDown bool
	cursor    mgl64.Vec2
	last      time.Time
	now       func() time.Time

	frame   *ebiten.Image
	lastErr string
}

var _ ebiten.Game = &Game{}

// NewGame creates a Game for sim. The simulation's renderer must not need a surface.
//
// Parameters:
//   - sim: the simulation to display
//   - options: functional options to configure the game
//
// Returns:
//   - *Game: the newly created game
func NewGame(sim scene.Simulation, options ...GameBuilderOption) *Game {
	g := &Game{
		mu:         &sync.Mutex{},
		sim:        sim,
		status:     scene.NewStatusBoard(scene.StatusTitle, scene.DefaultStatusTimeout),
		captureDir: ".",
		now:        time.Now,
	}
	for _, opt := range options {
		opt(g)
	}
	g.last = g.now()
	sim.OnStatus(g.status.Show)
	return g
}

// Run opens the window and blocks until it closes or a quit key is pressed.
//
// Parameters:
//   - title: the window title
//   - width: initial window width
//   - height: initial window height
//
// Returns:
//   - error: any error returned by ebiten
func (g *Game) Run(title string, width, height int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// Status returns the status board drawn over the frame.
func (g *Game) Status() *scene.StatusBoard {
	return g.status
}

func (g *Game) Update() error {
	if err := g.Apply(poll()); err != nil {
		return err
	}
	g.advance()
	return nil
}

// advance moves the simulation by the wall time since the previous update.
func (g *Game) advance() {
	now := g.now()
	g.mu.Lock()
	elapsed := now.Sub(g.last)
	g.last = now
	g.mu.Unlock()
	g.sim.Advance(elapsed.Seconds() * scene.ReferenceFrameRate)
}

// poll reads the current ebiten input state.
func poll() Snapshot {
	var s Snapshot
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		s.Touches = append(s.Touches, mgl64.Vec2{float64(x), float64(y)})
	}
	cx, cy := ebiten.CursorPosition()
	s.Cursor = mgl64.Vec2{float64(cx), float64(cy)}
	s.MouseDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	_, s.WheelY = ebiten.Wheel()
	s.Runes = ebiten.AppendInputChars(nil)
	s.Escape = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	s.Unfocused = !ebiten.IsFocused()
	return s
}

// Apply feeds one input snapshot into the simulation.
//
// Parameters:
//   - s: the input of this update
//
// Returns:
//   - error: ebiten.Termination when a quit key was pressed
func (g *Game) Apply(s Snapshot) error {
	fsm := g.sim.Input()

	// Releases are not delivered to an unfocused window, so a gesture in progress is dropped
	// and the next press starts from a fresh anchor.
	if s.Unfocused {
		g.mu.Lock()
		g.fingers, g.mouseDown = 0, false
		g.mu.Unlock()
		fsm.Reset()
		return nil
	}

	g.mu.Lock()
	prevFingers, prevDown, prevCursor := g.fingers, g.mouseDown, g.cursor
	g.fingers = len(s.Touches)
	g.mouseDown = s.MouseDown && len(s.Touches) == 0
	g.cursor = s.Cursor
	mouseDown := g.mouseDown
	g.mu.Unlock()

	if len(s.Touches) > 0 || prevFingers > 0 {
		fsm.Handle(input.Touch(s.Touches...))
	}

	switch {
	case mouseDown && !prevDown:
		fsm.Handle(input.PointerDown(s.Cursor.X(), s.Cursor.Y()))
	case mouseDown && s.Cursor != prevCursor:
		fsm.Handle(input.PointerMove(s.Cursor.X(), s.Cursor.Y()))
	case !mouseDown && prevDown:
		fsm.Handle(input.PointerUp())
	}

	if s.WheelY != 0 {
		fsm.Handle(input.Wheel(-s.WheelY))
	}

	if s.Escape {
		return ebiten.Termination
	}
	for _, r := range s.Runes {
		action := common.ActionForKey(common.KeyFromRune(r))
		if g.sim.HandleAction(action) {
			continue
		}
		switch action {
		case common.ActionCapture:
			go func() {
				if _, err := g.sim.SaveHighResolutionFrame(context.Background(), g.captureDir); err != nil {
					log.Printf("[Touch] capture failed: %v", err)
				}
			}()
		case common.ActionQuit:
			return ebiten.Termination
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if r := g.sim.Renderer(); r != nil {
		img, err := r.Render(g.sim.Frame())
		if err != nil {
			if msg := err.Error(); msg != g.lastErr {
				log.Printf("[Touch] frame failed: %v", err)
				g.lastErr = msg
			}
		} else {
			g.lastErr = ""
			w, h := img.Bounds().Dx(), img.Bounds().Dy()
			if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
				if g.frame != nil {
					g.frame.Deallocate()
				}
				g.frame = ebiten.NewImage(w, h)
			}
			g.frame.WritePixels(img.Pix)

			sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(sw)/float64(w), float64(sh)/float64(h))
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(g.frame, op)
		}
	}

	text, _ := g.status.Text()
	ebitenutil.DebugPrint(screen, text)
}

// Layout keeps the logical screen at the window size so pointer coordinates match the
// interaction machine's pixel units.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.sim.Viewport()
	if w != outsideWidth || h != outsideHeight {
		g.sim.SetViewport(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
