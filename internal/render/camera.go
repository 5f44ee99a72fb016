// Package render holds the GL-free half of the desktop renderer: camera
// and light parameters, vertex packing and the procedural ground texture.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFOV       = 0.8 // vertical, radians
	DefaultNear      = 0.1
	DefaultFar       = 1000
	DragSensitivity  = 0.004 // radians per pixel
	maxPitch         = math.Pi/2 - 0.01
	defaultMoveSpeed = 0.5
	KeyMoveSpeed     = 0.25 // world units per frame a held arrow key moves
)

// Camera is a free camera: a position plus a yaw/pitch look direction.
// Yaw 0 looks down +z and grows toward +x; pitch grows upward. The world is
// left-handed with +x to the right of a camera looking down +z.
type Camera struct {
	Position   mgl32.Vec3
	Yaw, Pitch float32

	FOV, Near, Far float32
}

// NewCamera places a camera at pos looking at target.
func NewCamera(pos, target mgl32.Vec3) Camera {
	c := Camera{Position: pos, FOV: DefaultFOV, Near: DefaultNear, Far: DefaultFar}
	c.SetTarget(target)
	return c
}

// SetTarget points the camera at target. A target equal to the position
// leaves the direction unchanged.
func (c *Camera) SetTarget(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Yaw = float32(math.Atan2(float64(d.X()), float64(d.Z())))
	c.Pitch = float32(math.Asin(float64(d.Y())))
}

// Forward is the unit look direction.
func (c Camera) Forward() mgl32.Vec3 {
	cp, sp := math.Cos(float64(c.Pitch)), math.Sin(float64(c.Pitch))
	cy, sy := math.Cos(float64(c.Yaw)), math.Sin(float64(c.Yaw))
	return mgl32.Vec3{float32(cp * sy), float32(sp), float32(cp * cy)}
}

// Rotate turns the camera by a mouse drag of dx, dy pixels.
func (c *Camera) Rotate(dx, dy float64) {
	c.Yaw += float32(dx * DragSensitivity)
	c.Pitch -= float32(dy * DragSensitivity)
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Dolly moves the camera along its look direction.
func (c *Camera) Dolly(steps float64) {
	c.Position = c.Position.Add(c.Forward().Mul(float32(steps * defaultMoveSpeed)))
}

// Right is the horizontal unit vector to the camera's right.
func (c Camera) Right() mgl32.Vec3 {
	cy, sy := math.Cos(float64(c.Yaw)), math.Sin(float64(c.Yaw))
	return mgl32.Vec3{float32(cy), 0, float32(-sy)}
}

// Move walks the camera forward along its look direction and sideways to
// its right.
func (c *Camera) Move(forward, right float32) {
	c.Position = c.Position.Add(c.Forward().Mul(forward)).Add(c.Right().Mul(right))
}

// View returns the world-to-view matrix. The leading x mirror turns GL's
// right-handed eye space into the left-handed convention the scene uses.
func (c Camera) View() mgl32.Mat4 {
	eye := c.Position
	look := mgl32.LookAtV(eye, eye.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
	return mgl32.Scale3D(-1, 1, 1).Mul4(look)
}

// Projection returns the perspective matrix for a viewport aspect ratio.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(c.FOV, aspect, c.Near, c.Far)
}
