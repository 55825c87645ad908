package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"surface-renderer/internal/camera"
	"surface-renderer/internal/encode"
	"surface-renderer/internal/mathutil"
	"surface-renderer/internal/scene"
	"surface-renderer/internal/surface"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Output
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`
	Caption   bool   `json:"caption"`

	// Render settings
	Width       int `json:"width"`
	Height      int `json:"height"`
	Supersample int `json:"supersample"`
	Frames      int `json:"frames"`
	Workers     int `json:"workers"`

	// Surface
	A          float64 `json:"a"`
	B          float64 `json:"b"`
	UDivisions int     `json:"u_divisions"`
	VDivisions int     `json:"v_divisions"`
	LineGrid   bool    `json:"line_grid"`

	// Camera
	FOV            float64     `json:"fov"`
	CameraPosition *[3]float64 `json:"camera_position"`
	Damping        *bool       `json:"damping"`

	// Front ends
	Listen   string `json:"listen"`
	LogLevel string `json:"log_level"`
	LogJSON  bool   `json:"log_json"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir   string
	Format      string
	Width       int
	Height      int
	Supersample int
	Frames      int
	Workers     int
	A           float64
	B           float64
	Divisions   int
	Listen      string
	LogLevel    string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.A != 0 {
		c.A = flags.A
	}
	if flags.B != 0 {
		c.B = flags.B
	}
	if flags.Divisions > 0 {
		c.UDivisions = flags.Divisions
		c.VDivisions = flags.Divisions
	}
	if flags.Listen != "" {
		c.Listen = flags.Listen
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	} else if !filepath.IsAbs(c.OutputDir) {
		if abs, err := filepath.Abs(c.OutputDir); err == nil {
			c.OutputDir = abs
		}
	}
	if c.Format == "" {
		c.Format = string(encode.WebP)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	if c.A == 0 {
		c.A = surface.DefaultA
	}
	if c.B == 0 {
		c.B = surface.DefaultB
	}
	if c.UDivisions <= 0 {
		c.UDivisions = surface.DefaultDivisions
	}
	if c.VDivisions <= 0 {
		c.VDivisions = surface.DefaultDivisions
	}

	if c.FOV <= 0 {
		c.FOV = camera.Default().FOV
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate rejects settings that cannot produce an image.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.UDivisions <= 0 || c.VDivisions <= 0 {
		errs = append(errs, fmt.Errorf("divisions %dx%d: %w", c.UDivisions, c.VDivisions, surface.ErrInvalidSteps))
	}
	if c.A == 0 || c.B == 0 {
		errs = append(errs, fmt.Errorf("shape constants a=%g b=%g must be non-zero", c.A, c.B))
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %g out of range (0, 180)", c.FOV))
	}
	if _, err := encode.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SceneOptions maps the config onto scene assembly options.
func (c *Config) SceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	opts.A = c.A
	opts.B = c.B
	opts.UDivisions = c.UDivisions
	opts.VDivisions = c.VDivisions
	opts.LineGrid = c.LineGrid
	return opts
}

// Camera returns the starting camera sized for the configured output.
func (c *Config) Camera() camera.Perspective {
	cam := camera.Default()
	cam.FOV = c.FOV
	if c.CameraPosition != nil {
		cam.Position = mathutil.Vec3(*c.CameraPosition)
	}
	cam.SetAspect(c.Width, c.Height)
	return cam
}

// DampingEnabled reports whether orbit damping is on (default true).
func (c *Config) DampingEnabled() bool {
	return c.Damping == nil || *c.Damping
}
