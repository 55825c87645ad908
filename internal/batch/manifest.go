package batch

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame    int     `json:"frame"`
	AngleDeg float64 `json:"angle_deg"`
	Image    string  `json:"image"`
}

// Manifest lists the rendered frames and the settings they share.
type Manifest struct {
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Format  string          `json:"format"`
	A       float64         `json:"a"`
	B       float64         `json:"b"`
	Entries []ManifestEntry `json:"frames"`
}

// BuildManifest collects the successful frames of a run.
func BuildManifest(cfg Config, a, b float64, results []Result) Manifest {
	m := Manifest{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: string(cfg.Format),
		A:      a,
		B:      b,
	}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Entries = append(m.Entries, ManifestEntry{
			Frame:    r.Frame,
			AngleDeg: math.Round(r.Angle*180/math.Pi*1000) / 1000,
			Image:    filepath.Base(r.Path),
		})
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
