package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Barometer-2002/A-black-hole/engine/renderer"
	"github.com/Barometer-2002/A-black-hole/engine/scene"
	"github.com/Barometer-2002/A-black-hole/engine/touch"
)

func main() {
	var (
		scale      = flag.Float64("scale", touch.DefaultPixelRatio, "Render pixels per window pixel.")
		width      = flag.Int("width", 960, "Initial window width.")
		height     = flag.Int("height", 540, "Initial window height.")
		workers    = flag.Int("workers", renderer.DefaultWorkers(), "CPU trace workers.")
		captureDir = flag.String("capture-dir", ".", "Directory for P key captures.")
	)
	flag.Parse()

	r := renderer.NewRenderer(renderer.BackendTypeCPU, nil, renderer.WithWorkers(*workers))
	defer r.Release()

	sim := scene.NewSimulation(
		scene.WithRenderer(r),
		scene.WithPixelRatio(*scale),
		scene.WithViewport(*width, *height),
	)
	g := touch.NewGame(sim, touch.WithCaptureDir(*captureDir))
	if err := g.Run(scene.StatusTitle, *width, *height); err != nil {
		fatalf("run: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
