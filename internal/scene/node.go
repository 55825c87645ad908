package scene

import "surface-renderer/internal/mathutil"

// Node is a transform in the scene graph with an optional mesh.
// The local transform is Translate(Position) × Rotation × Scale.
type Node struct {
	Name     string
	Position mathutil.Vec3
	Rotation mathutil.Mat3
	Scale    float64
	Mesh     *Mesh
	Children []*Node
}

// NewNode returns an identity-transform node.
func NewNode(name string) *Node {
	return &Node{Name: name, Rotation: mathutil.Mat3Identity(), Scale: 1}
}

// NewMeshNode wraps a mesh in an identity-transform node.
func NewMeshNode(name string, m *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = m
	return n
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// RotateX rotates the node about its local X axis.
func (n *Node) RotateX(angle float64) *Node {
	n.Rotation = mathutil.Mat3Mul(n.Rotation, mathutil.RotX(angle))
	return n
}

// RotateZ rotates the node about its local Z axis.
func (n *Node) RotateZ(angle float64) *Node {
	n.Rotation = mathutil.Mat3Mul(n.Rotation, mathutil.RotZ(angle))
	return n
}

// Local returns the node's transform relative to its parent.
func (n *Node) Local() mathutil.Mat4 {
	return mathutil.Compose(n.Position, n.Rotation, n.Scale)
}

// Walk visits n and its descendants depth-first with their world transforms.
func (n *Node) Walk(parent mathutil.Mat4, fn func(n *Node, world mathutil.Mat4)) {
	world := mathutil.Mat4Mul(parent, n.Local())
	fn(n, world)
	for _, c := range n.Children {
		c.Walk(world, fn)
	}
}

// Find returns the first descendant (or n itself) with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}
