// Package scene is a minimal scene graph: named nodes carrying position,
// Euler rotation and scaling, composed into world matrices with mgl32.
package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshPart is the geometry a node draws. Handle is set by the renderer
// once the part has been uploaded.
type MeshPart struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32
	Color     [4]float32
	Texture   *image.RGBA // modulates Color when set; needs UVs

	Handle any
}

// Node is one transform in the graph.
type Node struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // radians; yaw (Y) applied first, then X, then Z
	Scaling  mgl32.Vec3

	Mesh    *MeshPart
	Visible bool

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Scaling: mgl32.Vec3{1, 1, 1},
		Visible: true,
	}
}

// AddChild reparents c under n.
func (n *Node) AddChild(c *Node) {
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) removeChild(c *Node) {
	for i, cc := range n.children {
		if cc == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// Local returns T * Ry * Rx * Rz * S.
func (n *Node) Local() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := mgl32.HomogRotate3DY(n.Rotation.Y()).
		Mul4(mgl32.HomogRotate3DX(n.Rotation.X())).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation.Z()))
	s := mgl32.Scale3D(n.Scaling.X(), n.Scaling.Y(), n.Scaling.Z())
	return t.Mul4(r).Mul4(s)
}

// World composes the local matrices from the root down.
func (n *Node) World() mgl32.Mat4 {
	m := n.Local()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Local().Mul4(m)
	}
	return m
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
