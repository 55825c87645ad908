// Package surface samples parametric surfaces into index-aligned vertex and
// color buffers.
package surface

import (
	"errors"
	"fmt"
	"math"

	"surface-renderer/internal/mathutil"
)

// Shape constants and resolution of the default hyperbolic paraboloid.
const (
	DefaultA         = 2.0
	DefaultB         = 1.0
	DefaultDivisions = 50
)

// ErrInvalidSteps is returned when a sample resolution is not positive.
var ErrInvalidSteps = errors.New("step count must be positive")

// Func maps normalized parameters (u, v) in [0,1]² to a point.
// Implementations must be pure and total over the unit square.
type Func func(u, v float64) mathutil.Vec3

// HyperbolicParaboloid is z = x²/A² − y²/B² over x, y in [-1, 1].
type HyperbolicParaboloid struct {
	A, B float64
}

// DefaultParaboloid returns the saddle with a=2, b=1.
func DefaultParaboloid() HyperbolicParaboloid {
	return HyperbolicParaboloid{A: DefaultA, B: DefaultB}
}

// Eval maps (u, v) onto the surface.
func (h HyperbolicParaboloid) Eval(u, v float64) mathutil.Vec3 {
	x := u*2 - 1
	y := v*2 - 1
	return mathutil.Vec3{x, y, (x*x)/(h.A*h.A) - (y*y)/(h.B*h.B)}
}

// Sample evaluates f on a (uSteps+1)×(vSteps+1) lattice including both
// endpoints, u-major. Colors are (u, v, |z|/2) and are not clamped.
func Sample(f Func, uSteps, vSteps int) ([]mathutil.Vec3, []mathutil.Color, error) {
	if uSteps <= 0 || vSteps <= 0 {
		return nil, nil, fmt.Errorf("surface: sample %dx%d: %w", uSteps, vSteps, ErrInvalidSteps)
	}

	n := (uSteps + 1) * (vSteps + 1)
	positions := make([]mathutil.Vec3, 0, n)
	colors := make([]mathutil.Color, 0, n)

	for i := 0; i <= uSteps; i++ {
		u := float64(i) / float64(uSteps)
		for j := 0; j <= vSteps; j++ {
			v := float64(j) / float64(vSteps)
			p := f(u, v)
			positions = append(positions, p)
			colors = append(colors, mathutil.Color{R: u, G: v, B: math.Abs(p[2]) / 2})
		}
	}
	return positions, colors, nil
}
