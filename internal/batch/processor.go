package batch

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"surface-renderer/internal/camera"
	"surface-renderer/internal/encode"
	"surface-renderer/internal/logging"
	"surface-renderer/internal/postprocess"
	"surface-renderer/internal/raster"
	"surface-renderer/internal/scene"
)

// Config holds all shared settings for a turntable run.
type Config struct {
	OutputDir   string
	Format      encode.Format
	Width       int
	Height      int
	Supersample int
	Frames      int
	Workers     int
	Camera      camera.Perspective
	Caption     string
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame    int
	Angle    float64 // radians about the target's vertical axis
	Path     string
	Success  bool
	Error    string
	Duration time.Duration
}

// FrameAngle returns the orbit angle of frame i out of n, evenly spaced
// over a full turn starting at the configured camera.
func FrameAngle(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return 2 * math.Pi * float64(i) / float64(n)
}

// FrameName returns the output file name for frame i.
func FrameName(cfg Config, i int) string {
	if cfg.Frames <= 1 {
		return "surface" + cfg.Format.Ext()
	}
	return fmt.Sprintf("frame_%03d%s", i, cfg.Format.Ext())
}

// Run renders all frames using a worker pool. The scene is shared read-only;
// each worker derives its own camera. Frames not started before ctx is
// cancelled are reported as failed.
func Run(ctx context.Context, cfg Config, sc *scene.Scene) []Result {
	total := cfg.Frames
	if total < 1 {
		total = 1
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, total)
	var processed atomic.Int64
	log := logging.Logger()

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", total, "fps", float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Frame: idx, Angle: FrameAngle(idx, total), Error: err.Error()}
				} else {
					results[idx] = processFrame(cfg, sc, idx, total)
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, sc *scene.Scene, idx, total int) Result {
	t0 := time.Now()
	angle := FrameAngle(idx, total)
	res := Result{
		Frame: idx,
		Angle: angle,
		Path:  filepath.Join(cfg.OutputDir, FrameName(cfg, idx)),
	}

	cam := camera.Orbited(cfg.Camera, angle)
	img := raster.RenderFrame(sc, cam, cfg.Width, cfg.Height, cfg.Supersample)
	if cfg.Caption != "" {
		postprocess.Caption(img, cfg.Caption)
	}

	if err := encode.Save(res.Path, img); err != nil {
		res.Error = err.Error()
		logging.Logger().Warn("frame failed", "frame", idx, "err", err)
		return res
	}

	res.Success = true
	res.Duration = time.Since(t0)
	logging.Logger().Debug("frame rendered", "frame", idx, "path", res.Path, "took", res.Duration)
	return res
}
