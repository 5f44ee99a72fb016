package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeWorldComposesParents(t *testing.T) {
	root := NewNode(RootName)
	root.Position = mgl32.Vec3{5, 0, 0}
	child := NewNode("body")
	child.Position = mgl32.Vec3{0, 1, 0}
	child.Rotation[1] = math.Pi / 2
	root.AddChild(child)

	// A point one unit along +x in the child's frame: yaw by 90 degrees
	// maps +x onto -z.
	p := child.World().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 5.0, p.X(), 1e-5)
	assert.InDelta(t, 1.0, p.Y(), 1e-5)
	assert.InDelta(t, -1.0, p.Z(), 1e-5)
}

func TestNodeScaling(t *testing.T) {
	n := NewNode("n")
	n.Scaling = mgl32.Vec3{2, 3, 4}
	p := n.Local().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.Equal(t, mgl32.Vec4{2, 3, 4, 1}, p)
}

func TestAddChildReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)
	assert.Empty(t, a.Children())
	assert.Equal(t, []*Node{c}, b.Children())
	assert.Same(t, b, c.Parent())
}

func TestSceneNodeByNameAndDrawables(t *testing.T) {
	s := New()
	ground := NewNode("ground")
	ground.Mesh = Ground(120, 120, [4]float32{1, 1, 1, 1})
	s.Add(ground)

	root := NewNode(RootName)
	body := NewNode("body")
	body.Mesh = &MeshPart{}
	wheel := NewNode("wheel")
	wheel.Mesh = &MeshPart{}
	body.AddChild(wheel)
	root.AddChild(body)
	s.Add(root)

	assert.Same(t, wheel, s.NodeByName("wheel"))
	assert.Nil(t, s.NodeByName("missing"))

	assert.Equal(t, []*Node{ground, body, wheel}, s.Drawables(nil))

	body.Visible = false
	assert.Equal(t, []*Node{ground}, s.Drawables(nil))
}

func TestVehicleVisual(t *testing.T) {
	root := NewNode(RootName)
	root.Position = mgl32.Vec3{5, 0, 0}
	body := NewNode("body")
	body.Mesh = &MeshPart{}
	glass := NewNode("glass")
	glass.Mesh = &MeshPart{}
	group := NewNode("group")
	group.AddChild(glass)
	root.AddChild(body)
	root.AddChild(group)

	v := NewVehicleVisual(root)
	require.Len(t, v.Meshes, 2)

	x, z := v.RootPosition()
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 0.0, z)

	v.SetYaw(math.Pi)
	assert.Equal(t, float32(math.Pi), body.Rotation.Y())
	assert.Equal(t, float32(math.Pi), glass.Rotation.Y())
	assert.Equal(t, float32(0), root.Rotation.Y())
	assert.Equal(t, float32(0), group.Rotation.Y())

	v.SetRootPosition(1.5, -2)
	assert.Equal(t, mgl32.Vec3{1.5, 0, -2}, root.Position)
	assert.Equal(t, mgl32.Vec3{}, body.Position)
}

func TestSphere(t *testing.T) {
	m := Sphere(2, 32, [4]float32{1, 1, 1, 1})
	assert.Len(t, m.Positions, 33*65)
	assert.Len(t, m.Normals, len(m.Positions))
	assert.Len(t, m.UVs, len(m.Positions))
	assert.Len(t, m.Indices, 32*64*6)
	for _, p := range m.Positions {
		l := math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2]))
		require.InDelta(t, 1.0, l, 1e-5)
	}
	for _, i := range m.Indices {
		require.Less(t, int(i), len(m.Positions))
	}
}

func TestGround(t *testing.T) {
	m := Ground(120, 120, [4]float32{1, 1, 1, 1})
	for _, p := range m.Positions {
		assert.Equal(t, float32(60), float32(math.Abs(float64(p[0]))))
		assert.Equal(t, float32(0), p[1])
		assert.Equal(t, float32(60), float32(math.Abs(float64(p[2]))))
	}
	assert.Len(t, m.Indices, 6)
}
