package touch

import "time"

// GameBuilderOption is a functional option for configuring a Game.
type GameBuilderOption func(*Game)

// WithCaptureDir sets where key-triggered captures are written.
func WithCaptureDir(dir string) GameBuilderOption {
	return func(g *Game) {
		g.captureDir = dir
	}
}

// WithClock replaces the clock used to advance the simulation.
func WithClock(now func() time.Time) GameBuilderOption {
	return func(g *Game) {
		if now != nil {
			g.now = now
		}
	}
}
