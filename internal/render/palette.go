package render

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{R: addU8(c.R, dr), G: addU8(c.G, dg), B: addU8(c.B, db)}
}

func addU8(v uint8, d int) uint8 {
	return uint8(clamp(int(v)+d, 0, 255))
}

// Linear returns the colour as a 0..1 RGBA vector.
func (c RGB) Linear() [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, 1}
}

var Palette = struct {
	Road     RGB
	Line     RGB
	Sidewalk RGB
	Grass    RGB
	Sky      RGB
	Sphere   RGB
}{
	Road:     RGB{R: 58, G: 58, B: 64},
	Line:     RGB{R: 220, G: 200, B: 90},
	Sidewalk: RGB{R: 150, G: 148, B: 140},
	Grass:    RGB{R: 72, G: 118, B: 60},
	Sky:      RGB{R: 51, G: 51, B: 76},
	Sphere:   RGB{R: 230, G: 230, B: 230},
}
