package raster

import (
	"image"

	"surface-renderer/internal/camera"
	"surface-renderer/internal/mathutil"
	"surface-renderer/internal/postprocess"
	"surface-renderer/internal/scene"
)

// projected is a mesh vertex after the model-view-projection transform.
type projected struct {
	v     Vertex
	world mathutil.Vec3
	ok    bool // in front of the near plane
}

// Render draws the scene from cam into a new w×h image. cam is taken by value;
// its aspect is set from w and h.
func Render(sc *scene.Scene, cam camera.Perspective, w, h int) *image.NRGBA {
	fb := NewFrameBuffer(w, h)
	RenderInto(fb, sc, cam, 1)
	return fb.Image()
}

// RenderFrame renders at supersample× the output size and downsamples.
func RenderFrame(sc *scene.Scene, cam camera.Perspective, w, h, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	fb := NewFrameBuffer(w*supersample, h*supersample)
	RenderInto(fb, sc, cam, supersample)
	img := fb.Image()
	if supersample > 1 {
		img = postprocess.Downsample(img, w, h)
	}
	return img
}

// RenderInto clears fb and draws the scene into it. lineWidth scales line
// primitives, typically the supersample factor.
func RenderInto(fb *FrameBuffer, sc *scene.Scene, cam camera.Perspective, lineWidth int) {
	cam.SetAspect(fb.Width, fb.Height)
	fb.Clear(sc.Background)

	vp := cam.ViewProjection()
	lc := NewLightConfig(sc, cam.Position)

	var verts []projected
	for _, item := range sc.DrawList() {
		verts = project(verts[:0], item, vp, cam.Near, fb.Width, fb.Height)
		drawMesh(fb, item.Mesh, verts, &lc, lineWidth)
	}
}

func project(dst []projected, item scene.DrawItem, vp mathutil.Mat4, near float64, w, h int) []projected {
	mvp := mathutil.Mat4Mul(vp, item.World)
	fw, fh := float64(w), float64(h)
	m := item.Mesh
	for i, p := range m.Positions {
		clip := mvp.MulPoint4(p)
		pv := projected{world: item.World.MulPoint(p)}
		if clip[3] >= near {
			invW := 1 / clip[3]
			pv.ok = true
			pv.v = Vertex{
				X:    (clip[0]*invW + 1) * 0.5 * fw,
				Y:    (1 - clip[1]*invW) * 0.5 * fh,
				InvW: invW,
				C:    m.VertexColor(uint32(i)),
			}
		}
		dst = append(dst, pv)
	}
	return dst
}

func drawMesh(fb *FrameBuffer, m *scene.Mesh, verts []projected, lc *LightConfig, lineWidth int) {
	mat := &m.Material
	alpha := mat.Alpha()

	if m.Mode == scene.Lines {
		for i := 0; i+1 < len(m.Indices); i += 2 {
			a, b := verts[m.Indices[i]], verts[m.Indices[i+1]]
			if a.ok && b.ok {
				DrawLine(fb, a.v, b.v, lineWidth, alpha)
			}
		}
		return
	}

	if mat.Wireframe && mat.Kind == scene.Basic {
		for _, e := range wireEdges(m.Indices) {
			a, b := verts[e[0]], verts[e[1]]
			if a.ok && b.ok {
				DrawLine(fb, a.v, b.v, lineWidth, alpha)
			}
		}
		return
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := verts[m.Indices[i]], verts[m.Indices[i+1]], verts[m.Indices[i+2]]
		// near-plane crossings are culled, not clipped
		if !a.ok || !b.ok || !c.ok {
			continue
		}

		va, vb, vc := a.v, b.v, c.v
		if mat.Kind == scene.Phong {
			n, ok := FaceNormal(a.world, b.world, c.world)
			if !ok {
				continue
			}
			centroid := a.world.Add(b.world).Add(c.world).Scale(1.0 / 3)
			va.C = lc.Shade(va.C, n, centroid, mat)
			vb.C = lc.Shade(vb.C, n, centroid, mat)
			vc.C = lc.Shade(vc.C, n, centroid, mat)
		}

		if mat.Wireframe {
			DrawLine(fb, va, vb, lineWidth, alpha)
			DrawLine(fb, vb, vc, lineWidth, alpha)
			DrawLine(fb, vc, va, lineWidth, alpha)
			continue
		}
		RasterizeTriangle(fb, va, vb, vc, alpha)
	}
}

// wireEdges returns each distinct triangle edge once, in first-seen order.
func wireEdges(indices []uint32) [][2]uint32 {
	seen := make(map[[2]uint32]struct{}, len(indices))
	edges := make([][2]uint32, 0, len(indices))
	for i := 0; i+2 < len(indices); i += 3 {
		tri := [3]uint32{indices[i], indices[i+1], indices[i+2]}
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]uint32{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, key)
		}
	}
	return edges
}
