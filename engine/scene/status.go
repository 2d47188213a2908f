package scene

import (
	"fmt"
	"sync"
	"time"
)

// Status texts shown by the viewers.
const (
	StatusTitle     = "Schwarzschild Geodesic Ray Tracer"
	StatusCapturing = "Capturing High-Res Event Horizon..."
	StatusSaved     = "Image Saved"

	// DefaultStatusTimeout is how long a notification replaces the title.
	DefaultStatusTimeout = 2 * time.Second
)

// AutoRotateStatus returns the notification for an auto-rotate change.
func AutoRotateStatus(on bool) string {
	if on {
		return "Auto Rotate: ON"
	}
	return "Auto Rotate: OFF"
}

// CaptureFileName returns the file name used for a saved capture.
//
// Parameters:
//   - t: the capture time
//
// Returns:
//   - string: a PNG file name stamped with t in Unix milliseconds
func CaptureFileName(t time.Time) string {
	return fmt.Sprintf("BlackHole_Schwarzschild_GR_%d.png", t.UnixMilli())
}

// StatusBoard holds the text a viewer shows in its status line: the latest notification until it
// times out, then the title. Viewers register Show as a Simulation status listener.
type StatusBoard struct {
	mu      sync.Mutex
	title   string
	timeout time.Duration
	message string
	expires time.Time
	now     func() time.Time
}

// NewStatusBoard creates a board showing title between notifications.
//
// Parameters:
//   - title: the resting text
//   - timeout: how long a notification stays up; values <= 0 select DefaultStatusTimeout
//
// Returns:
//   - *StatusBoard: the board
func NewStatusBoard(title string, timeout time.Duration) *StatusBoard {
	if timeout <= 0 {
		timeout = DefaultStatusTimeout
	}
	return &StatusBoard{title: title, timeout: timeout, now: time.Now}
}

// Show replaces the current notification and restarts the timeout.
func (b *StatusBoard) Show(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.message = message
	b.expires = b.now().Add(b.timeout)
}

// Text returns the notification while it is fresh, otherwise the title.
//
// Returns:
//   - string: the status line text
//   - bool: true while a notification is shown
func (b *StatusBoard) Text() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.message != "" && b.now().Before(b.expires) {
		return b.message, true
	}
	return b.title, false
}
