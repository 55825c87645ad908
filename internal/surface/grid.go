package surface

import (
	"math"

	"surface-renderer/internal/mathutil"
)

// GridIndices triangulates the row-major lattice produced by Sample: two
// triangles per cell, counter-clockwise in (u, v).
func GridIndices(uSteps, vSteps int) []uint32 {
	if uSteps <= 0 || vSteps <= 0 {
		return nil
	}
	row := uint32(vSteps + 1)
	idx := make([]uint32, 0, uSteps*vSteps*6)
	for i := 0; i < uSteps; i++ {
		for j := 0; j < vSteps; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row // (i+1, j)
			c := b + 1   // (i+1, j+1)
			d := a + 1   // (i, j+1)
			idx = append(idx, a, b, d, b, c, d)
		}
	}
	return idx
}

// Bounds returns the axis-aligned extent of positions. Empty input yields
// zero vectors.
func Bounds(positions []mathutil.Vec3) (lo, hi mathutil.Vec3) {
	if len(positions) == 0 {
		return
	}
	lo = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range positions {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi
}
