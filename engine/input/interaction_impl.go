package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Gesture defaults.
const (
	DefaultRotateSensitivity = 0.004
	DefaultWheelStep         = 2.0
	DefaultPinchScale        = 0.05
)

type interactionImpl struct {
	mu *sync.Mutex

	target    Target
	listeners []StatusListener

	rotateSensitivity float64
	wheelStep         float64
	pinchScale        float64

	state State
}

var _ InteractionStateMachine = &interactionImpl{}

// NewInteractionStateMachine creates a machine that drives target.
//
// Parameters:
//   - target: receiver of rotate and zoom deltas
//   - options: functional options to configure sensitivities and listeners
//
// Returns:
//   - InteractionStateMachine: the newly created machine
func NewInteractionStateMachine(target Target, options ...InteractionBuilderOption) InteractionStateMachine {
	m := &interactionImpl{
		mu:                &sync.Mutex{},
		target:            target,
		rotateSensitivity: DefaultRotateSensitivity,
		wheelStep:         DefaultWheelStep,
		pinchScale:        DefaultPinchScale,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *interactionImpl) Handle(ev Event) {
	var status []string

	m.mu.Lock()
	switch ev.Type {
	case EventPointerDown:
		m.beginDrag(mgl64.Vec2{ev.X, ev.Y})
	case EventPointerMove:
		m.drag(mgl64.Vec2{ev.X, ev.Y})
	case EventPointerUp:
		m.state.Dragging = false
		m.state.Mode = StateIdle
	case EventWheel:
		if s := sign(ev.Delta); s != 0 {
			status = append(status, FormatDistance(m.target.Zoom(s*m.wheelStep)))
		}
	case EventTouch:
		if msg, ok := m.touch(ev.Points); ok {
			status = append(status, msg)
		}
	}
	listeners := m.listeners
	m.mu.Unlock()

	for _, msg := range status {
		for _, l := range listeners {
			l(msg)
		}
	}
}

// beginDrag records the anchor for a new drag.
// Caller must hold the mutex.
func (m *interactionImpl) beginDrag(p mgl64.Vec2) {
	m.state.Dragging = true
	m.state.Mode = StateDragging
	m.state.LastPointer = p
}

// drag applies the pointer delta since the last sample to the camera target.
// Caller must hold the mutex.
func (m *interactionImpl) drag(p mgl64.Vec2) {
	if !m.state.Dragging {
		return
	}
	d := p.Sub(m.state.LastPointer)
	m.target.Rotate(-d[0]*m.rotateSensitivity, -d[1]*m.rotateSensitivity)
	m.state.LastPointer = p
}

// touch handles a change of the active finger set. A change in finger count only re-establishes
// baselines; deltas are applied when the count stays the same.
// Caller must hold the mutex.
func (m *interactionImpl) touch(points []mgl64.Vec2) (string, bool) {
	n := len(points)
	prev := m.state.Touches
	m.state.Touches = n

	if n != prev {
		switch {
		case n == 0:
			m.state.Dragging = false
			m.state.Mode = StateIdle
		case n == 1:
			m.beginDrag(points[0])
		default:
			m.state.Dragging = false
			m.state.Mode = StatePinching
			m.state.LastPinchDistance = points[0].Sub(points[1]).Len()
		}
		return "", false
	}

	switch {
	case n == 1:
		m.drag(points[0])
	case n >= 2:
		dist := points[0].Sub(points[1]).Len()
		delta := (m.state.LastPinchDistance - dist) * m.pinchScale
		m.state.LastPinchDistance = dist
		if delta != 0 {
			return FormatDistance(m.target.Zoom(delta)), true
		}
	}
	return "", false
}

func (m *interactionImpl) IsDragging() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Dragging
}

func (m *interactionImpl) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *interactionImpl) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{}
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		// covers zero and NaN
		return 0
	}
}
