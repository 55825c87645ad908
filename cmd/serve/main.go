package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"surface-renderer/internal/config"
	"surface-renderer/internal/logging"
	"surface-renderer/internal/scene"
	"surface-renderer/internal/stream"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	listen := flag.String("listen", "", "Listen address (default: :8080)")
	width := flag.Int("width", 0, "Initial frame width (default: 800)")
	height := flag.Int("height", 0, "Initial frame height (default: 600)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	a := flag.Float64("a", 0, "Surface shape constant a (default: 2)")
	b := flag.Float64("b", 0, "Surface shape constant b (default: 1)")
	divisions := flag.Int("divisions", 0, "Surface subdivisions per axis (default: 50)")
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
		Listen:      *listen,
		LogLevel:    *logLevel,
	})

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

	srv := stream.New(sc, cfg.Camera(), stream.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Damping:     cfg.DampingEnabled(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving on http://localhost%s\n", cfg.Listen)
	if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
