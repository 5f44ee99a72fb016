package scene

import "math"

// Sphere builds a UV sphere centred on the origin. segments is the number
// of latitude bands; longitude uses twice as many.
func Sphere(diameter float32, segments int, color [4]float32) *MeshPart {
	if segments < 2 {
		segments = 2
	}
	r := float64(diameter) * 0.5
	lat := segments
	lon := segments * 2

	m := &MeshPart{Color: color}
	for i := 0; i <= lat; i++ {
		theta := float64(i) / float64(lat) * math.Pi
		st, ct := math.Sin(theta), math.Cos(theta)
		for j := 0; j <= lon; j++ {
			phi := float64(j) / float64(lon) * 2 * math.Pi
			sp, cp := math.Sin(phi), math.Cos(phi)
			n := [3]float32{float32(st * cp), float32(ct), float32(st * sp)}
			m.Normals = append(m.Normals, n)
			m.Positions = append(m.Positions, [3]float32{n[0] * float32(r), n[1] * float32(r), n[2] * float32(r)})
			m.UVs = append(m.UVs, [2]float32{float32(j) / float32(lon), float32(i) / float32(lat)})
		}
	}
	stride := uint32(lon + 1)
	for i := 0; i < lat; i++ {
		for j := 0; j < lon; j++ {
			a := uint32(i)*stride + uint32(j)
			b := a + stride
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}

// Ground builds a flat width x depth plane on y = 0 centred on the origin,
// facing up, with UVs spanning the whole plane once.
func Ground(width, depth float32, color [4]float32) *MeshPart {
	hw, hd := width*0.5, depth*0.5
	up := [3]float32{0, 1, 0}
	return &MeshPart{
		Positions: [][3]float32{
			{-hw, 0, -hd}, {hw, 0, -hd}, {hw, 0, hd}, {-hw, 0, hd},
		},
		Normals: [][3]float32{up, up, up, up},
		UVs:     [][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
		Color:   color,
	}
}
