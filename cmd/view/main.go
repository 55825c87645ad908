package main

import (
	"flag"
	"fmt"
	"os"

	"surface-renderer/internal/config"
	"surface-renderer/internal/logging"
	"surface-renderer/internal/scene"
	"surface-renderer/internal/viewer"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Int("width", 0, "Window width (default: 800)")
	height := flag.Int("height", 0, "Window height (default: 600)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	a := flag.Float64("a", 0, "Surface shape constant a (default: 2)")
	b := flag.Float64("b", 0, "Surface shape constant b (default: 1)")
	divisions := flag.Int("divisions", 0, "Surface subdivisions per axis (default: 50)")
	noDamping := flag.Bool("no-damping", false, "Stop the camera as soon as the mouse stops")
	hud := flag.Bool("hud", false, "Show frame rate and camera position")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		A:           *a,
		B:           *b,
		Divisions:   *divisions,
		LogLevel:    *logLevel,
	})
	if *noDamping {
		off := false
		cfg.Damping = &off
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scene.Build(cfg.SceneOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
		os.Exit(1)
	}

	err = viewer.Run(sc, cfg.Camera(), viewer.Options{
		Title:       "Hyperbolic paraboloid",
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Damping:     cfg.DampingEnabled(),
		HUD:         *hud,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
