package camera

import (
	"math"
	"sync"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Controller defaults.
const (
	DefaultRadius     = 25.0
	DefaultMinRadius  = 2.5
	DefaultMaxRadius  = 60.0
	DefaultPhiMargin  = 0.1
	DefaultSmoothing  = 0.08
	DefaultRotateRate = 0.001
	DefaultZoomStep   = 3.0
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	state State

	minRadius float64
	maxRadius float64
	minPhi    float64
	maxPhi    float64

	smoothing  float64
	rotateRate float64
	zoomStep   float64
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller at radius 25 in the disk plane looking at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},
		state: State{
			Radius:       DefaultRadius,
			Phi:          math.Pi / 2,
			TargetRadius: DefaultRadius,
			TargetPhi:    math.Pi / 2,
		},

		minRadius: DefaultMinRadius,
		maxRadius: DefaultMaxRadius,
		minPhi:    DefaultPhiMargin,
		maxPhi:    math.Pi - DefaultPhiMargin,

		smoothing:  DefaultSmoothing,
		rotateRate: DefaultRotateRate,
		zoomStep:   DefaultZoomStep,
	}

	for _, option := range options {
		option(cc)
	}

	cc.smoothing = common.Clamp(cc.smoothing, 0, 1)
	cc.state.Radius = common.Clamp(cc.state.Radius, cc.minRadius, cc.maxRadius)
	cc.state.Phi = common.Clamp(cc.state.Phi, cc.minPhi, cc.maxPhi)
	cc.clampTarget()
	return cc
}

// clampTarget forces the target radius and polar angle back into range.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) clampTarget() {
	cc.state.TargetRadius = common.Clamp(cc.state.TargetRadius, cc.minRadius, cc.maxRadius)
	cc.state.TargetPhi = common.Clamp(cc.state.TargetPhi, cc.minPhi, cc.maxPhi)
}

// pose returns the position for the current coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) pose() (mgl64.Vec3, mgl64.Vec3) {
	return common.SphericalToCartesian(cc.state.Radius, cc.state.Theta, cc.state.Phi), mgl64.Vec3{}
}

func (cc *cameraControllerImpl) Advance(autoRotate, isDragging bool) (mgl64.Vec3, mgl64.Vec3) {
	return cc.AdvanceBy(1, autoRotate, isDragging)
}

func (cc *cameraControllerImpl) AdvanceBy(frames float64, autoRotate, isDragging bool) (mgl64.Vec3, mgl64.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if frames <= 0 || math.IsNaN(frames) {
		return cc.pose()
	}

	if autoRotate && !isDragging {
		cc.state.TargetTheta += cc.rotateRate * frames
	}

	k := cc.smoothing
	if frames != 1 {
		k = 1 - math.Pow(1-cc.smoothing, frames)
	}
	cc.state.Radius += (cc.state.TargetRadius - cc.state.Radius) * k
	cc.state.Theta += (cc.state.TargetTheta - cc.state.Theta) * k
	cc.state.Phi += (cc.state.TargetPhi - cc.state.Phi) * k

	return cc.pose()
}

func (cc *cameraControllerImpl) Rotate(dTheta, dPhi float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state.TargetTheta += dTheta
	cc.state.TargetPhi += dPhi
	cc.clampTarget()
}

func (cc *cameraControllerImpl) Zoom(delta float64) float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state.TargetRadius += delta
	cc.clampTarget()
	return cc.state.TargetRadius
}

func (cc *cameraControllerImpl) ZoomIn() float64 {
	return cc.Zoom(-cc.zoomStep)
}

func (cc *cameraControllerImpl) ZoomOut() float64 {
	return cc.Zoom(cc.zoomStep)
}

func (cc *cameraControllerImpl) TargetRadius() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.TargetRadius
}

func (cc *cameraControllerImpl) RadiusBounds() (float64, float64) {
	return cc.minRadius, cc.maxRadius
}

func (cc *cameraControllerImpl) PhiBounds() (float64, float64) {
	return cc.minPhi, cc.maxPhi
}

func (cc *cameraControllerImpl) State() State {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state
}

func (cc *cameraControllerImpl) Position() mgl64.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	p, _ := cc.pose()
	return p
}

func (cc *cameraControllerImpl) Target() mgl64.Vec3 {
	return mgl64.Vec3{}
}
