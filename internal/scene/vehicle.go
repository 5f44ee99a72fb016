package scene

// RootName is the name given to the node every imported asset hangs from.
const RootName = "__root__"

// VehicleVisual binds the car's nodes to the motion integrator: the root
// carries the ground position, the meshes share one yaw.
type VehicleVisual struct {
	Root   *Node
	Meshes []*Node
}

// NewVehicleVisual collects every mesh-bearing descendant of root.
func NewVehicleVisual(root *Node) *VehicleVisual {
	v := &VehicleVisual{Root: root}
	for _, c := range root.Children() {
		c.Walk(func(n *Node) bool {
			if n.Mesh != nil {
				v.Meshes = append(v.Meshes, n)
			}
			return true
		})
	}
	return v
}

func (v *VehicleVisual) RootPosition() (float64, float64) {
	return float64(v.Root.Position.X()), float64(v.Root.Position.Z())
}

func (v *VehicleVisual) SetRootPosition(x, z float64) {
	v.Root.Position[0] = float32(x)
	v.Root.Position[2] = float32(z)
}

func (v *VehicleVisual) SetYaw(heading float64) {
	for _, m := range v.Meshes {
		m.Rotation[1] = float32(heading)
	}
}
