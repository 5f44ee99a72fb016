package render

import "uberdrive/internal/scene"

// VertexStride is the number of floats per packed vertex:
// position (3), normal (3), uv (2).
const VertexStride = 8

// Interleave packs a mesh part for a single vertex buffer. Missing normals
// default to +y and missing UVs to zero.
func Interleave(m *scene.MeshPart) []float32 {
	out := make([]float32, 0, len(m.Positions)*VertexStride)
	for i, p := range m.Positions {
		n := [3]float32{0, 1, 0}
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		var uv [2]float32
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}
