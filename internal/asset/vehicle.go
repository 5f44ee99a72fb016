package asset

import (
	"github.com/go-gl/mathgl/mgl32"

	"uberdrive/internal/scene"
)

// Vehicle parents every imported part under a fresh root node placed at x on
// the ground plane. The parts keep their baked transforms.
func (m *Model) Vehicle(x float32) *scene.Node {
	root := scene.NewNode(scene.RootName)
	root.Position = mgl32.Vec3{x, 0, 0}
	for _, p := range m.Parts {
		n := scene.NewNode(p.Name)
		n.Mesh = p.Mesh
		root.AddChild(n)
	}
	return root
}
