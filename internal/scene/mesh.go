// Package scene holds the scene graph: meshes with materials, transform
// nodes, lights, and the builders that assemble the paraboloid viewer scene.
package scene

import (
	"fmt"

	"surface-renderer/internal/mathutil"
)

// Mode is the primitive topology of a mesh's index buffer.
type Mode int

const (
	// Triangles reads indices three at a time.
	Triangles Mode = iota
	// Lines reads indices two at a time.
	Lines
)

// MaterialKind selects the shading model.
type MaterialKind int

const (
	// Basic is unlit: base color (times vertex color) is written as-is.
	Basic MaterialKind = iota
	// Phong is lit with ambient, diffuse and Blinn-Phong specular terms.
	Phong
)

// Material describes how a mesh is shaded.
type Material struct {
	Kind         MaterialKind
	Color        mathutil.Color
	VertexColors bool // multiply Color by the mesh's per-vertex colors
	Specular     mathutil.Color
	Shininess    float64
	Wireframe    bool // draw triangle edges instead of filling
	Transparent  bool
	Opacity      float64 // used when Transparent
}

// BasicMaterial returns an unlit material of the given color.
func BasicMaterial(c mathutil.Color) Material {
	return Material{Kind: Basic, Color: c, Opacity: 1}
}

// PhongMaterial returns a lit material.
func PhongMaterial(c, specular mathutil.Color, shininess float64) Material {
	return Material{Kind: Phong, Color: c, Specular: specular, Shininess: shininess, Opacity: 1}
}

// Alpha returns the effective opacity in [0,1].
func (m Material) Alpha() float64 {
	if !m.Transparent {
		return 1
	}
	return mathutil.Clamp(m.Opacity, 0, 1)
}

// Mesh is indexed geometry with optional per-vertex colors. Meshes are not
// mutated once added to a scene.
type Mesh struct {
	Positions []mathutil.Vec3
	Colors    []mathutil.Color // nil or len(Positions)
	Indices   []uint32
	Mode      Mode
	Material  Material
}

// Validate checks buffer alignment and index ranges.
func (m *Mesh) Validate() error {
	if m.Colors != nil && len(m.Colors) != len(m.Positions) {
		return fmt.Errorf("scene: mesh has %d colors for %d positions", len(m.Colors), len(m.Positions))
	}
	stride := 3
	if m.Mode == Lines {
		stride = 2
	}
	if len(m.Indices)%stride != 0 {
		return fmt.Errorf("scene: %d indices not a multiple of %d", len(m.Indices), stride)
	}
	n := uint32(len(m.Positions))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("scene: index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Primitives returns the triangle or segment count.
func (m *Mesh) Primitives() int {
	if m.Mode == Lines {
		return len(m.Indices) / 2
	}
	return len(m.Indices) / 3
}

// VertexColor returns the color of vertex i before material tinting.
func (m *Mesh) VertexColor(i uint32) mathutil.Color {
	if m.Material.VertexColors && m.Colors != nil {
		return m.Colors[i].Mul(m.Material.Color)
	}
	return m.Material.Color
}
