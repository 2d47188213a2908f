package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/Barometer-2002/A-black-hole/engine/renderer"
	"github.com/Barometer-2002/A-black-hole/engine/scene"
	"github.com/Barometer-2002/A-black-hole/engine/terminal"
	"github.com/gdamore/tcell/v2"
)

func main() {
	var (
		fps        = flag.Float64("fps", terminal.DefaultFrameRate, "Frames rendered per second.")
		workers    = flag.Int("workers", renderer.DefaultWorkers(), "CPU trace workers.")
		cellScale  = flag.Float64("cell-scale", terminal.DefaultCellScale, "Pointer units per terminal column for drag rotation.")
		captureDir = flag.String("capture-dir", ".", "Directory for P key captures.")
		logPath    = flag.String("log", "", "Write log output to this file instead of discarding it.")
	)
	flag.Parse()

	// The terminal owns stdout while the viewer runs.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fatalf("open log: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		fatalf("init screen: %v", err)
	}

	r := renderer.NewRenderer(renderer.BackendTypeCPU, nil, renderer.WithWorkers(*workers))
	sim := scene.NewSimulation(scene.WithRenderer(r))
	v := terminal.NewViewer(screen, sim,
		terminal.WithFrameRate(*fps),
		terminal.WithCellScale(*cellScale),
		terminal.WithCaptureDir(*captureDir),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = v.Run(ctx)
	stop()
	screen.Fini()
	r.Release()
	if err != nil {
		fatalf("run: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
