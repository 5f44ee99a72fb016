package scene

// Scene holds the top-level nodes of the demo world.
type Scene struct {
	roots []*Node
}

func New() *Scene {
	return &Scene{}
}

// Add registers a top-level node.
func (s *Scene) Add(n *Node) {
	s.roots = append(s.roots, n)
}

func (s *Scene) Roots() []*Node { return s.roots }

// NodeByName returns the first node with the given name, searching depth first.
func (s *Scene) NodeByName(name string) *Node {
	var found *Node
	for _, r := range s.roots {
		r.Walk(func(n *Node) bool {
			if found != nil {
				return false
			}
			if n.Name == name {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// Drawables returns every visible node that carries a mesh. A hidden node
// hides its subtree.
func (s *Scene) Drawables(buf []*Node) []*Node {
	buf = buf[:0]
	for _, r := range s.roots {
		r.Walk(func(n *Node) bool {
			if !n.Visible {
				return false
			}
			if n.Mesh != nil {
				buf = append(buf, n)
			}
			return true
		})
	}
	return buf
}
