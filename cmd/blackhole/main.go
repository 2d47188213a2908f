package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Barometer-2002/A-black-hole/engine"
	"github.com/Barometer-2002/A-black-hole/engine/renderer"
	"github.com/Barometer-2002/A-black-hole/engine/scene"
	"github.com/Barometer-2002/A-black-hole/engine/window"
)

func main() {
	var (
		backendName = flag.String("backend", "present", "Renderer backend: gpu (WGSL kernel) or present (CPU trace shown as a texture).")
		gpu         = flag.Bool("gpu", false, "Shorthand for -backend gpu.")
		scale       = flag.Float64("scale", 0.5, "Render pixels per window pixel for the CPU trace.")
		width       = flag.Int("width", 1280, "Initial window width.")
		height      = flag.Int("height", 720, "Initial window height.")
		vsync       = flag.Bool("vsync", true, "Synchronize presentation with the display refresh.")
		fpsLimit    = flag.Float64("fps", 0, "Render frame cap (0 = uncapped).")
		profile     = flag.Bool("profile", false, "Log frame and trace statistics every second.")
		captureDir  = flag.String("capture-dir", ".", "Directory for P key captures.")
	)
	flag.Parse()

	backend, err := renderer.ParseBackendType(*backendName)
	if err != nil {
		fatalf("%v", err)
	}
	if *gpu {
		backend = renderer.BackendTypeWGPU
	}
	if !backend.NeedsSurface() {
		fatalf("backend %s has no window output; use blackhole-still or blackhole-term", backend)
	}

	mode := renderer.PresentModeVSync
	if !*vsync {
		mode = renderer.PresentModeUncapped
	}

	win := window.NewWindow(
		window.WithTitle(scene.StatusTitle),
		window.WithSize(*width, *height),
	)
	defer win.Close()

	r := renderer.NewRenderer(backend, win, renderer.WithPresentMode(mode))
	defer r.Release()

	sim := scene.NewSimulation(
		scene.WithRenderer(r),
		scene.WithPixelRatio(*scale),
	)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithSimulation(sim),
		engine.WithProfiling(*profile),
		engine.WithCaptureDir(*captureDir),
		engine.WithRenderFrameLimit(*fpsLimit),
	)
	eng.Run()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
