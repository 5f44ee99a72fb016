package desktop

import "github.com/go-gl/mathgl/mgl32"

// Scene layout.
var (
	CameraStart  = mgl32.Vec3{0, 5, -10}
	CameraTarget = mgl32.Vec3{}
)

const (
	SphereDiameter = 2
	SphereSegments = 32
	SphereHeight   = 1

	GroundTextureSize = 1024
	GroundSeed        = 0x5EED
)
