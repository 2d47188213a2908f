package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/Barometer-2002/A-black-hole/common"
	"github.com/Barometer-2002/A-black-hole/engine/camera"
	"github.com/Barometer-2002/A-black-hole/engine/renderer"
	"github.com/Barometer-2002/A-black-hole/engine/scene"
	"golang.org/x/image/draw"
)

func main() {
	defaults := common.DefaultSimulationParams()
	var (
		outPath   = flag.String("out", "blackhole.png", "Output PNG path.")
		width     = flag.Int("width", 640, "Frame width.")
		height    = flag.Int("height", 360, "Frame height.")
		radius    = flag.Float64("radius", camera.DefaultRadius, "Camera distance in units of M.")
		theta     = flag.Float64("theta", 0, "Camera azimuth in degrees.")
		phi       = flag.Float64("phi", 90, "Camera polar angle in degrees (90 = disk plane).")
		simTime   = flag.Float64("time", 0, "Simulation time in seconds.")
		capture   = flag.Bool("capture", false, "Render the supersampled capture instead of a single frame.")
		downscale = flag.Bool("downscale", false, "Scale a capture back to -width x -height.")
		workers   = flag.Int("workers", renderer.DefaultWorkers(), "CPU trace workers.")
		stats     = flag.Bool("stats", false, "Log trace statistics.")

		dopplerPower = flag.Float64("doppler-power", defaults.DopplerPower, "Beaming exponent.")
		dopplerShift = flag.Float64("doppler-shift", defaults.DopplerColorShift, "Beaming hue shift.")
		luminosity   = flag.Float64("luminosity", defaults.LuminosityScale, "Disk luminosity scale.")
		hue          = flag.Float64("hue", defaults.HueShift, "Global disk hue offset in turns.")
		exposure     = flag.Float64("exposure", defaults.Exposure, "Exposure before tone mapping.")
		bloom        = flag.Float64("bloom", defaults.BloomStrength, "Bloom strength.")
	)
	flag.Parse()

	params := common.SimulationParams{
		DopplerPower:      *dopplerPower,
		DopplerColorShift: *dopplerShift,
		LuminosityScale:   *luminosity,
		HueShift:          *hue,
		Exposure:          *exposure,
		BloomStrength:     *bloom,
	}
	if err := params.Validate(); err != nil {
		log.Printf("[Still] parameters clamped: %v", err)
	}

	cc := camera.NewCameraController(
		camera.WithRadius(*radius),
		camera.WithTheta(*theta*math.Pi/180),
		camera.WithPhi(*phi*math.Pi/180),
	)
	if lo, hi := cc.RadiusBounds(); *radius < lo || *radius > hi {
		log.Printf("[Still] radius %.1f clamped to [%.1f, %.1f]", *radius, lo, hi)
	}

	r := renderer.NewRenderer(renderer.BackendTypeCPU, nil, renderer.WithWorkers(*workers))
	defer r.Release()

	sim := scene.NewSimulation(
		scene.WithRenderer(r),
		scene.WithParams(params),
		scene.WithViewport(*width, *height),
		scene.WithTime(*simTime),
		scene.WithCameraController(cc),
	)

	img, err := render(sim, r, *capture)
	if err != nil {
		log.Fatalf("[Still] render: %v", err)
	}
	if *capture && *downscale {
		small := image.NewRGBA(image.Rect(0, 0, *width, *height))
		draw.CatmullRom.Scale(small, small.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = small
	}
	if *stats {
		s := r.Stats()
		log.Printf("[Still] %dx%d in %v | captured %d | escaped %d | saturated %d | mean steps %.1f",
			s.Width, s.Height, s.Duration, s.Captured, s.Escaped, s.Saturated, s.MeanSteps())
	}

	if err := writePNG(*outPath, img); err != nil {
		log.Fatalf("[Still] %v", err)
	}
	log.Printf("[Still] wrote %s", *outPath)
}

// render produces either the interactive frame or the supersampled capture.
func render(sim scene.Simulation, r renderer.Renderer, capture bool) (*image.RGBA, error) {
	if capture {
		return sim.CaptureHighResolutionFrame(context.Background())
	}
	return r.Render(sim.Frame())
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
