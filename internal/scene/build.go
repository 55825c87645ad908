package scene

import (
	"fmt"

	"surface-renderer/internal/mathutil"
	"surface-renderer/internal/surface"
)

// Options carries every tunable the viewer scene is assembled from.
type Options struct {
	// Surface shape and resolution
	A, B       float64
	UDivisions int
	VDivisions int

	SurfaceScale float64
	SurfaceTint  mathutil.Color

	// Reference floor
	PlaneSize     float64
	PlaneSegments int
	PlaneColor    mathutil.Color
	PlaneOpacity  float64

	AxisScale float64

	// Optional line grid in the surface's z=0 plane
	LineGrid      bool
	LineGridSize  float64
	LineGridSteps int
	LineGridColor mathutil.Color

	Ambient    AmbientLight
	Sun        DirectionalLight
	Background mathutil.Color
}

// DefaultOptions returns the stock viewer scene.
func DefaultOptions() Options {
	return Options{
		A:          surface.DefaultA,
		B:          surface.DefaultB,
		UDivisions: surface.DefaultDivisions,
		VDivisions: surface.DefaultDivisions,

		SurfaceScale: 2,
		SurfaceTint:  mathutil.Hex(0xFF1DF0),

		PlaneSize:     14,
		PlaneSegments: 14,
		PlaneColor:    mathutil.Hex(0x505050),
		PlaneOpacity:  0.25,

		AxisScale: 2,

		LineGridSize:  2,
		LineGridSteps: 10,
		LineGridColor: mathutil.Hex(0x00FF00),

		Ambient: AmbientLight{Color: mathutil.White, Intensity: 0.1},
		Sun: DirectionalLight{
			Color:     mathutil.White,
			Intensity: 1.0,
			Position:  mathutil.Vec3{100, 100, 100},
		},
	}
}

// Build samples the paraboloid and assembles the full scene.
func Build(opts Options) (*Scene, error) {
	if opts.A == 0 || opts.B == 0 {
		return nil, fmt.Errorf("scene: shape constants must be non-zero (a=%g b=%g)", opts.A, opts.B)
	}

	surf, err := SurfaceNode(opts)
	if err != nil {
		return nil, err
	}

	root := NewNode("scene")
	root.Add(surf)
	root.Add(ReferencePlane(opts.PlaneSize, opts.PlaneSegments, opts.PlaneColor, opts.PlaneOpacity))

	axes := AxisHelper()
	axes.Scale = opts.AxisScale
	root.Add(axes)

	if opts.LineGrid {
		grid := PlaneGrid(opts.LineGridSize, opts.LineGridSteps, opts.LineGridColor)
		grid.Scale = opts.SurfaceScale
		root.Add(grid)
	}

	sc := &Scene{
		Root:       root,
		Ambient:    opts.Ambient,
		Sun:        opts.Sun,
		Background: opts.Background,
	}

	var verr error
	root.Walk(mathutil.Mat4Identity(), func(n *Node, _ mathutil.Mat4) {
		if n.Mesh != nil && verr == nil {
			if err := n.Mesh.Validate(); err != nil {
				verr = fmt.Errorf("%s: %w", n.Name, err)
			}
		}
	})
	if verr != nil {
		return nil, verr
	}
	return sc, nil
}

// SurfaceNode samples the hyperbolic paraboloid into a vertex-colored mesh.
func SurfaceNode(opts Options) (*Node, error) {
	f := surface.HyperbolicParaboloid{A: opts.A, B: opts.B}
	positions, colors, err := surface.Sample(f.Eval, opts.UDivisions, opts.VDivisions)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	mat := BasicMaterial(opts.SurfaceTint)
	mat.VertexColors = true

	m := &Mesh{
		Positions: positions,
		Colors:    colors,
		Indices:   surface.GridIndices(opts.UDivisions, opts.VDivisions),
		Mode:      Triangles,
		Material:  mat,
	}
	n := NewMeshNode("paraboloid", m)
	n.Scale = opts.SurfaceScale
	return n, nil
}
