package scene

import "surface-renderer/internal/mathutil"

// Scene is a fully assembled, read-only scene. It is safe to render from
// several goroutines at once.
type Scene struct {
	Root       *Node
	Ambient    AmbientLight
	Sun        DirectionalLight
	Background mathutil.Color
}

// DrawItem is a mesh placed in world space.
type DrawItem struct {
	Name  string
	Mesh  *Mesh
	World mathutil.Mat4
}

// DrawList flattens the graph into world-space meshes. Opaque meshes come
// first so transparent ones blend over finished depth.
func (s *Scene) DrawList() []DrawItem {
	var opaque, transparent []DrawItem
	s.Root.Walk(mathutil.Mat4Identity(), func(n *Node, world mathutil.Mat4) {
		if n.Mesh == nil {
			return
		}
		item := DrawItem{Name: n.Name, Mesh: n.Mesh, World: world}
		if n.Mesh.Material.Transparent {
			transparent = append(transparent, item)
		} else {
			opaque = append(opaque, item)
		}
	})
	return append(opaque, transparent...)
}

// Stats counts meshes, vertices and primitives.
func (s *Scene) Stats() (meshes, vertices, primitives int) {
	for _, it := range s.DrawList() {
		meshes++
		vertices += len(it.Mesh.Positions)
		primitives += it.Mesh.Primitives()
	}
	return
}
