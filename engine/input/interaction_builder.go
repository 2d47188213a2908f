package input

// InteractionBuilderOption is a functional option for configuring an InteractionStateMachine.
type InteractionBuilderOption func(*interactionImpl)

// WithRotateSensitivity sets the radians of camera rotation per pixel of drag.
//
// Parameters:
//   - k: radians per pixel
//
// Returns:
//   - InteractionBuilderOption: functional option to set the drag sensitivity
func WithRotateSensitivity(k float64) InteractionBuilderOption {
	return func(m *interactionImpl) {
		m.rotateSensitivity = k
	}
}

// WithWheelStep sets the radius change per wheel notch.
//
// Parameters:
//   - step: radius delta applied with the sign of the wheel delta
//
// Returns:
//   - InteractionBuilderOption: functional option to set the wheel step
func WithWheelStep(step float64) InteractionBuilderOption {
	return func(m *interactionImpl) {
		m.wheelStep = step
	}
}

// WithPinchScale sets the radius change per pixel of pinch distance change.
//
// Parameters:
//   - scale: radius delta per pixel
//
// Returns:
//   - InteractionBuilderOption: functional option to set the pinch scale
func WithPinchScale(scale float64) InteractionBuilderOption {
	return func(m *interactionImpl) {
		m.pinchScale = scale
	}
}

// WithStatusListener registers a callback for zoom notifications.
//
// Parameters:
//   - listener: called with the notification text
//
// Returns:
//   - InteractionBuilderOption: functional option to add the listener
func WithStatusListener(listener StatusListener) InteractionBuilderOption {
	return func(m *interactionImpl) {
		if listener != nil {
			m.listeners = append(m.listeners, listener)
		}
	}
}
