package raster

import (
	"math"

	"surface-renderer/internal/mathutil"
	"surface-renderer/internal/scene"
)

// LightConfig holds precomputed lighting parameters for one frame.
type LightConfig struct {
	LightDir mathutil.Vec3 // toward the light
	Ambient  mathutil.Color
	Direct   mathutil.Color
	Eye      mathutil.Vec3
}

// NewLightConfig folds a scene's lights into per-frame terms.
func NewLightConfig(sc *scene.Scene, eye mathutil.Vec3) LightConfig {
	return LightConfig{
		LightDir: sc.Sun.Direction(),
		Ambient:  sc.Ambient.Color.Scale(sc.Ambient.Intensity),
		Direct:   sc.Sun.Color.Scale(sc.Sun.Intensity),
		Eye:      eye,
	}
}

// Shade returns the lit color of a face with the given base color.
// normal must be unit length; it is flipped toward the eye so both sides of
// a face are lit.
func (lc *LightConfig) Shade(base mathutil.Color, normal, at mathutil.Vec3, mat *scene.Material) mathutil.Color {
	view := lc.Eye.Sub(at).Normalize()
	if normal.Dot(view) < 0 {
		normal = normal.Scale(-1)
	}

	ndl := normal.Dot(lc.LightDir)
	if ndl < 0 {
		ndl = 0
	}
	out := base.Mul(lc.Ambient.Add(lc.Direct.Scale(ndl)))

	// Blinn-Phong specular
	if ndl > 0 && mat.Shininess > 0 {
		half := lc.LightDir.Add(view).Normalize()
		ndh := normal.Dot(half)
		if ndh > 0 {
			spec := math.Pow(ndh, mat.Shininess)
			out = out.Add(mat.Specular.Mul(lc.Direct).Scale(spec))
		}
	}
	return out
}

// FaceNormal returns the unit normal of triangle (a, b, c), or false for a
// degenerate triangle.
func FaceNormal(a, b, c mathutil.Vec3) (mathutil.Vec3, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-12 {
		return mathutil.Vec3{}, false
	}
	return n.Normalize(), true
}
