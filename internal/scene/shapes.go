package scene

import (
	"math"

	"surface-renderer/internal/mathutil"
)

// Box returns a w×h×d box centered at the origin.
func Box(w, h, d float64, mat Material) *Mesh {
	hw, hh, hd := w/2, h/2, d/2
	pos := []mathutil.Vec3{
		{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd},
		{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd},
	}
	faces := [][4]uint32{
		{0, 3, 2, 1}, // -z
		{4, 5, 6, 7}, // +z
		{0, 4, 7, 3}, // -x
		{1, 2, 6, 5}, // +x
		{3, 7, 6, 2}, // +y
		{0, 1, 5, 4}, // -y
	}
	idx := make([]uint32, 0, len(faces)*6)
	for _, f := range faces {
		idx = append(idx, f[0], f[1], f[2], f[0], f[2], f[3])
	}
	return &Mesh{Positions: pos, Indices: idx, Mode: Triangles, Material: mat}
}

// Cylinder returns a capped cylinder of the given radius along Y, centered
// at the origin.
func Cylinder(radius, height float64, segments int, mat Material) *Mesh {
	if segments < 3 {
		segments = 3
	}
	hh := height / 2
	n := uint32(segments)

	// ring vertices: bottom [0,n), top [n,2n), then the two cap centres
	pos := make([]mathutil.Vec3, 0, 2*segments+2)
	for _, y := range []float64{-hh, hh} {
		for i := 0; i < segments; i++ {
			a := float64(i) / float64(segments) * 2 * math.Pi
			pos = append(pos, mathutil.Vec3{radius * math.Sin(a), y, radius * math.Cos(a)})
		}
	}
	bot := uint32(len(pos))
	pos = append(pos, mathutil.Vec3{0, -hh, 0})
	top := bot + 1
	pos = append(pos, mathutil.Vec3{0, hh, 0})

	idx := make([]uint32, 0, segments*12)
	for i := uint32(0); i < n; i++ {
		j := (i + 1) % n
		idx = append(idx, i, j, n+j, i, n+j, n+i)
		idx = append(idx, top, n+i, n+j)
		idx = append(idx, bot, j, i)
	}
	return &Mesh{Positions: pos, Indices: idx, Mode: Triangles, Material: mat}
}

// Cone returns a capped cone with its apex at +height/2 on the Y axis.
func Cone(radius, height float64, segments int, mat Material) *Mesh {
	if segments < 3 {
		segments = 3
	}
	hh := height / 2
	n := uint32(segments)

	pos := make([]mathutil.Vec3, 0, segments+2)
	for i := 0; i < segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		pos = append(pos, mathutil.Vec3{radius * math.Sin(a), -hh, radius * math.Cos(a)})
	}
	tip := n
	pos = append(pos, mathutil.Vec3{0, hh, 0})
	bot := n + 1
	pos = append(pos, mathutil.Vec3{0, -hh, 0})

	idx := make([]uint32, 0, segments*6)
	for i := uint32(0); i < n; i++ {
		j := (i + 1) % n
		idx = append(idx, i, j, tip)
		idx = append(idx, bot, j, i)
	}
	return &Mesh{Positions: pos, Indices: idx, Mode: Triangles, Material: mat}
}

// Plane returns a w×h plane in the XY plane subdivided into wSeg×hSeg cells,
// two triangles per cell.
func Plane(w, h float64, wSeg, hSeg int, mat Material) *Mesh {
	if wSeg < 1 {
		wSeg = 1
	}
	if hSeg < 1 {
		hSeg = 1
	}
	cols := uint32(wSeg + 1)
	pos := make([]mathutil.Vec3, 0, (wSeg+1)*(hSeg+1))
	for iy := 0; iy <= hSeg; iy++ {
		y := h/2 - float64(iy)*h/float64(hSeg)
		for ix := 0; ix <= wSeg; ix++ {
			x := float64(ix)*w/float64(wSeg) - w/2
			pos = append(pos, mathutil.Vec3{x, y, 0})
		}
	}
	idx := make([]uint32, 0, wSeg*hSeg*6)
	for iy := uint32(0); iy < uint32(hSeg); iy++ {
		for ix := uint32(0); ix < uint32(wSeg); ix++ {
			a := ix + cols*iy
			b := ix + cols*(iy+1)
			c := ix + 1 + cols*(iy+1)
			d := ix + 1 + cols*iy
			idx = append(idx, a, b, d, b, c, d)
		}
	}
	return &Mesh{Positions: pos, Indices: idx, Mode: Triangles, Material: mat}
}

// LineSegments returns a Lines mesh drawing each consecutive pair of points.
func LineSegments(points []mathutil.Vec3, mat Material) *Mesh {
	idx := make([]uint32, 0, len(points)&^1)
	for i := 0; i+1 < len(points); i += 2 {
		idx = append(idx, uint32(i), uint32(i+1))
	}
	return &Mesh{Positions: points, Indices: idx, Mode: Lines, Material: mat}
}
