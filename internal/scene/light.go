package scene

import "surface-renderer/internal/mathutil"

// AmbientLight illuminates every surface equally.
type AmbientLight struct {
	Color     mathutil.Color
	Intensity float64
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Color     mathutil.Color
	Intensity float64
	Position  mathutil.Vec3
}

// Direction returns the unit vector pointing from the surface toward the light.
func (d DirectionalLight) Direction() mathutil.Vec3 {
	return d.Position.Normalize()
}
