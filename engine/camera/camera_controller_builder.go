package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadius sets the initial radius. Current and target start equal.
//
// Parameters:
//   - radius: distance from the origin
//
// Returns:
//   - CameraControllerOption: functional option to set the radius
func WithRadius(radius float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Radius = radius
		cc.state.TargetRadius = radius
	}
}

// WithTheta sets the initial azimuth around the Y axis.
//
// Parameters:
//   - theta: azimuth in radians (0 = +X axis)
//
// Returns:
//   - CameraControllerOption: functional option to set the azimuth
func WithTheta(theta float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Theta = theta
		cc.state.TargetTheta = theta
	}
}

// WithPhi sets the initial polar angle measured from +Y.
//
// Parameters:
//   - phi: polar angle in radians (π/2 = disk plane)
//
// Returns:
//   - CameraControllerOption: functional option to set the polar angle
func WithPhi(phi float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Phi = phi
		cc.state.TargetPhi = phi
	}
}

// WithRadiusBounds sets the minimum and maximum radius.
//
// Parameters:
//   - min: closest allowed distance
//   - max: farthest allowed distance
//
// Returns:
//   - CameraControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithPhiBounds sets the polar angle interval that keeps the camera away from the poles.
//
// Parameters:
//   - min: smallest polar angle in radians
//   - max: largest polar angle in radians
//
// Returns:
//   - CameraControllerOption: functional option to set polar bounds
func WithPhiBounds(min, max float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minPhi = min
		cc.maxPhi = max
	}
}

// WithSmoothing sets the per-frame fraction of the remaining distance covered by the smoothing step.
//
// Parameters:
//   - factor: value in (0, 1]
//
// Returns:
//   - CameraControllerOption: functional option to set the smoothing factor
func WithSmoothing(factor float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.smoothing = factor
	}
}

// WithRotateRate sets the auto-rotation drift.
//
// Parameters:
//   - rate: radians added to the target azimuth per reference frame
//
// Returns:
//   - CameraControllerOption: functional option to set the rotate rate
func WithRotateRate(rate float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateRate = rate
	}
}

// WithZoomStep sets the radius change of ZoomIn and ZoomOut.
//
// Parameters:
//   - step: radius delta per button press
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom step
func WithZoomStep(step float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomStep = step
	}
}
