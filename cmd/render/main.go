package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"surface-renderer/internal/batch"
	"surface-renderer/internal/config"
	"surface-renderer/internal/encode"
	"surface-renderer/internal/logging"
	"surface-renderer/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Image format: webp, tga or png (default: webp)")
	width := flag.Int("width", 0, "Image width in pixels (default: 800)")
	height := flag.Int("height", 0, "Image height in pixels (default: 600)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	frames := flag.Int("frames", 0, "Turntable frames around the orbit (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	a := flag.Float64("a", 0, "Surface shape constant a (default: 2)")
	b := flag.Float64("b", 0, "Surface shape constant b (default: 1)")
	divisions := flag.Int("divisions", 0, "Surface subdivisions per axis (default: 50)")
	caption := flag.Bool("caption", false, "Draw the formula in the corner")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:   *outputDir,
		Format:      *format,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Frames:      *frames,
		Workers:     *workers,
		A:           *a,
		B:           *b,
		Divisions:   *divisions,
		LogLevel:    *logLevel,
	})
	if *caption {
		cfg.Caption = true
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
	meshes, vertices, primitives := sc.Stats()
	fmt.Printf("Scene: %d meshes, %d vertices, %d primitives\n", meshes, vertices, primitives)

	outFormat, _ := encode.ParseFormat(cfg.Format)
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      outFormat,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Frames:      cfg.Frames,
		Workers:     cfg.Workers,
		Camera:      cfg.Camera(),
	}
	if cfg.Caption {
		batchCfg.Caption = fmt.Sprintf("z = x^2/%g^2 - y^2/%g^2", cfg.A, cfg.B)
	}

	fmt.Printf("Hyperbolic paraboloid a=%g b=%g, %dx%d divisions\n", cfg.A, cfg.B, cfg.UDivisions, cfg.VDivisions)
	fmt.Printf("Frames: %d at %dx%d, Workers: %d\n", cfg.Frames, cfg.Width, cfg.Height, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := batch.Run(ctx, batchCfg, sc)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	// Write manifest
	if cfg.Frames > 1 {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		m := batch.BuildManifest(batchCfg, cfg.A, cfg.B, results)
		if err := batch.WriteManifest(manifestPath, m); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

type Result = batch.Result
