package camera

import "github.com/go-gl/mathgl/mgl64"

type viewConfig struct {
	worldUp    mgl64.Vec3
	fallbackUp mgl64.Vec3
}

// ViewOption is a functional option for configuring NewView.
type ViewOption func(*viewConfig)

// WithWorldUp sets the reference up vector used to derive the right axis.
//
// Parameters:
//   - up: world-space up direction, need not be normalized
//
// Returns:
//   - ViewOption: a function that sets the reference up vector
func WithWorldUp(up mgl64.Vec3) ViewOption {
	return func(c *viewConfig) {
		c.worldUp = up
	}
}

// WithFallbackUp sets the reference up vector used when the view direction is parallel to the
// world up vector.
//
// Parameters:
//   - up: world-space direction not parallel to the world up vector
//
// Returns:
//   - ViewOption: a function that sets the fallback up vector
func WithFallbackUp(up mgl64.Vec3) ViewOption {
	return func(c *viewConfig) {
		c.fallbackUp = up
	}
}
