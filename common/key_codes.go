package common

import "unicode"

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA            = 65  // A key (ASCII)
	KeyD            = 68  // D key (ASCII)
	KeyE            = 69  // E key (ASCII)
	KeyP            = 80  // P key (ASCII)
	KeyQ            = 81  // Q key (ASCII)
	KeyR            = 82  // R key (ASCII)
	KeySpace        = 32  // Spacebar (ASCII)
	KeyMinus        = 45  // - key (ASCII)
	KeyEqual        = 61  // = key, shares the + symbol (ASCII)
	KeyLeftBracket  = 91  // [ key (ASCII)
	KeyRightBracket = 93  // ] key (ASCII)
	KeyEsc          = 256 // Escape key (GLFW)
	KeyKPSubtract   = 333 // Keypad - (GLFW)
	KeyKPAdd        = 334 // Keypad + (GLFW)
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionZoomIn
	ActionZoomOut
	ActionToggleAutoRotate
	ActionCapture
	ActionHueDown
	ActionHueUp
	ActionExposureUp
	ActionExposureDown
	ActionQuit
)

var keyActions = map[int]Action{
	KeyEqual:        ActionZoomIn,
	KeyKPAdd:        ActionZoomIn,
	KeyMinus:        ActionZoomOut,
	KeyKPSubtract:   ActionZoomOut,
	KeyR:            ActionToggleAutoRotate,
	KeySpace:        ActionToggleAutoRotate,
	KeyP:            ActionCapture,
	KeyLeftBracket:  ActionHueDown,
	KeyRightBracket: ActionHueUp,
	KeyE:            ActionExposureUp,
	KeyD:            ActionExposureDown,
	KeyQ:            ActionQuit,
	KeyEsc:          ActionQuit,
}

// ActionForKey returns the viewer command bound to a key code, or ActionNone.
func ActionForKey(code int) Action {
	return keyActions[code]
}

// KeyFromRune converts a typed character into the matching key code so terminal input can share
// the same bindings as the window. Letters are folded to upper case and '+' maps to KeyEqual.
func KeyFromRune(r rune) int {
	if r == '+' {
		return KeyEqual
	}
	if r > unicode.MaxASCII {
		return 0
	}
	return int(unicode.ToUpper(r))
}
