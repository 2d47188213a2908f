package camera

import (
	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultScreenOffsetY lifts the hole slightly above the centre of the image while keeping the
// exact centre inside the shadow.
const DefaultScreenOffsetY = -0.1

// basisEpsilon is the length below which cross(worldUp, forward) is treated as degenerate.
const basisEpsilon = 1e-6

var (
	defaultWorldUp    = mgl64.Vec3{0, 1, 0}
	defaultFallbackUp = mgl64.Vec3{0, 0, 1}
)

// View turns one frame's camera pose into primary rays. It is a value type built once per frame
// and read concurrently by every pixel worker.
type View struct {
	Origin  mgl64.Vec3
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Up      mgl64.Vec3

	Width, Height int
	Aspect        float64
	Offset        mgl64.Vec2

	// Degenerate is set when the reference up vector had to switch to the fallback.
	Degenerate bool
}

// NewView builds the orthonormal ray basis for a frame.
// forward = normalize(target - origin), right = normalize(cross(worldUp, forward)),
// up = cross(forward, right). When forward is parallel to worldUp the fallback up vector
// (world +Z unless overridden) is used instead, so looking straight down a pole still yields a
// valid basis.
//
// Parameters:
//   - frame: the frame snapshot providing pose, resolution and screen offset
//   - options: functional options to override the reference up vectors
//
// Returns:
//   - View: the per-frame ray generator
func NewView(frame common.Frame, options ...ViewOption) View {
	cfg := viewConfig{worldUp: defaultWorldUp, fallbackUp: defaultFallbackUp}
	for _, option := range options {
		option(&cfg)
	}

	v := View{
		Origin: frame.Position,
		Width:  frame.Width,
		Height: frame.Height,
		Aspect: frame.Aspect(),
		Offset: frame.ScreenOffset,
	}

	forward := frame.Target.Sub(frame.Position)
	if forward.Len() < basisEpsilon {
		forward = mgl64.Vec3{0, 0, -1}
	}
	v.Forward = forward.Normalize()

	right := cfg.worldUp.Cross(v.Forward)
	if right.Len() < basisEpsilon {
		right = cfg.fallbackUp.Cross(v.Forward)
		v.Degenerate = true
	}
	v.Right = right.Normalize()
	v.Up = v.Forward.Cross(v.Right)
	return v
}

// Ray returns the primary ray through normalized screen coordinates. u spans [-aspect, aspect]
// left to right and w spans [-1, 1] bottom to top; the view's screen offset is not applied here.
//
// Parameters:
//   - u: horizontal screen coordinate
//   - w: vertical screen coordinate
//
// Returns:
//   - common.Ray: ray from the camera origin
func (v View) Ray(u, w float64) common.Ray {
	dir := v.Forward.Add(v.Right.Mul(u)).Add(v.Up.Mul(w))
	return common.Ray{Origin: v.Origin, Direction: dir.Normalize()}
}

// ScreenUV maps the centre of pixel (x, y), with y growing downward, to normalized screen
// coordinates including the aspect correction and the frame's screen offset.
//
// Parameters:
//   - x: pixel column
//   - y: pixel row
//
// Returns:
//   - u, w: screen coordinates suitable for Ray
func (v View) ScreenUV(x, y int) (float64, float64) {
	fx := (float64(x) + 0.5) / float64(v.Width)
	fy := 1 - (float64(y)+0.5)/float64(v.Height)
	u := (fx-0.5)*2*v.Aspect + v.Offset[0]
	w := (fy-0.5)*2 + v.Offset[1]
	return u, w
}

// PixelRay returns the primary ray through the centre of pixel (x, y).
//
// Parameters:
//   - x: pixel column
//   - y: pixel row
//
// Returns:
//   - common.Ray: ray from the camera origin
func (v View) PixelRay(x, y int) common.Ray {
	return v.Ray(v.ScreenUV(x, y))
}
