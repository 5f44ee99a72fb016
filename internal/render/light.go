package render

import "github.com/go-gl/mathgl/mgl32"

// Hemispheric lights a surface by blending Ground and Diffuse on how far its
// normal faces Direction.
type Hemispheric struct {
	Direction mgl32.Vec3
	Intensity float32
	Diffuse   mgl32.Vec3
	Ground    mgl32.Vec3
}

// NewHemispheric returns a white sky light over a black ground.
func NewHemispheric(dir mgl32.Vec3, intensity float32) Hemispheric {
	return Hemispheric{
		Direction: dir.Normalize(),
		Intensity: intensity,
		Diffuse:   mgl32.Vec3{1, 1, 1},
	}
}

// SceneLight is the one light in the demo, straight overhead at 0.7.
func SceneLight() Hemispheric {
	return NewHemispheric(mgl32.Vec3{0, 1, 0}, 0.7)
}

// At returns the light colour for a surface normal. The mesh shader
// evaluates the same expression per fragment.
func (h Hemispheric) At(normal mgl32.Vec3) mgl32.Vec3 {
	t := 0.5*normal.Normalize().Dot(h.Direction) + 0.5
	c := h.Ground.Mul(1 - t).Add(h.Diffuse.Mul(t))
	return c.Mul(h.Intensity)
}

// Lit shades c by the light reaching a surface with the given normal.
func (h Hemispheric) Lit(c RGB, normal mgl32.Vec3) RGB {
	l := h.At(normal)
	return RGB{R: scale8(c.R, l.X()), G: scale8(c.G, l.Y()), B: scale8(c.B, l.Z())}
}

func scale8(v uint8, k float32) uint8 {
	return uint8(clamp(int(float32(v)*k+0.5), 0, 255))
}
