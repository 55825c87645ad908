package scene

import (
	"math"

	"surface-renderer/internal/mathutil"
)

// Axis arrow dimensions, in arrow-local units before node scaling.
const (
	arrowShaftRadius = 0.015
	arrowShaftLength = 0.2
	arrowShaftY      = 0.125
	arrowHeadRadius  = 0.03
	arrowHeadLength  = 0.1
	arrowHeadY       = 0.275
	arrowSegments    = 32
	originCubeSize   = 0.05
	helperShininess  = 100
)

var helperSpecular = mathutil.Hex(0x222222)

// PlaneGrid returns steps+1 lines parallel to Y and steps+1 parallel to X,
// spanning size×size in the z=0 plane.
func PlaneGrid(size float64, steps int, c mathutil.Color) *Node {
	if steps < 1 {
		steps = 1
	}
	half := size * 0.5
	pts := make([]mathutil.Vec3, 0, 4*(steps+1))
	for i := 0; i <= steps; i++ {
		f := float64(i)/float64(steps) - 0.5
		pts = append(pts, mathutil.Vec3{f * size, -half, 0}, mathutil.Vec3{f * size, half, 0})
	}
	for i := 0; i <= steps; i++ {
		f := float64(i)/float64(steps) - 0.5
		pts = append(pts, mathutil.Vec3{-half, f * size, 0}, mathutil.Vec3{half, f * size, 0})
	}
	return NewMeshNode("plane-grid", LineSegments(pts, BasicMaterial(c)))
}

// AxisArrow returns a shaft and head pointing along +Y from the origin.
func AxisArrow(name string, c mathutil.Color) *Node {
	mat := PhongMaterial(c, helperSpecular, helperShininess)

	shaft := NewMeshNode(name+"-shaft", Cylinder(arrowShaftRadius, arrowShaftLength, arrowSegments, mat))
	shaft.Position = mathutil.Vec3{0, arrowShaftY, 0}

	head := NewMeshNode(name+"-head", Cone(arrowHeadRadius, arrowHeadLength, arrowSegments, mat))
	head.Position = mathutil.Vec3{0, arrowHeadY, 0}

	return NewNode(name).Add(shaft, head)
}

// AxisHelper returns three arrows and an origin cube. Colors follow the
// viewer's convention: x green, y red, z blue.
func AxisHelper() *Node {
	x := AxisArrow("axis-x", mathutil.Color{R: 0, G: 1, B: 0})
	y := AxisArrow("axis-y", mathutil.Color{R: 1, G: 0, B: 0})
	z := AxisArrow("axis-z", mathutil.Color{R: 0, G: 0, B: 1})

	x.RotateZ(-math.Pi * 0.5)
	z.RotateX(math.Pi * 0.5)

	cubeMat := PhongMaterial(mathutil.Hex(0x808080), helperSpecular, helperShininess)
	cube := NewMeshNode("axis-origin", Box(originCubeSize, originCubeSize, originCubeSize, cubeMat))

	return NewNode("axes").Add(x, y, z, cube)
}

// ReferencePlane returns a translucent wireframe floor lying in the XZ plane.
func ReferencePlane(size float64, segments int, c mathutil.Color, opacity float64) *Node {
	mat := BasicMaterial(c)
	mat.Wireframe = true
	mat.Transparent = true
	mat.Opacity = opacity

	n := NewMeshNode("reference-plane", Plane(size, size, segments, segments, mat))
	n.RotateX(-math.Pi / 2)
	return n
}
