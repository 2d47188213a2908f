package terminal

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewer)

// WithFrameRate sets how often the viewer renders. Values <= 0 keep the default.
func WithFrameRate(fps float64) ViewerBuilderOption {
	return func(v *viewer) {
		if fps > 0 {
			v.frameRate = fps
		}
	}
}

// WithCellScale sets the pointer units per terminal column used for drag rotation.
// Values <= 0 keep the default.
func WithCellScale(scale float64) ViewerBuilderOption {
	return func(v *viewer) {
		if scale > 0 {
			v.cellScale = scale
		}
	}
}

// WithCaptureDir sets where key-triggered captures are written.
func WithCaptureDir(dir string) ViewerBuilderOption {
	return func(v *viewer) {
		v.captureDir = dir
	}
}
