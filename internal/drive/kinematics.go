package drive

import "math"

// Vec2 is a point on the ground plane.
type Vec2 struct {
	X, Z float64
}

// Kinematics is the car's motion state.
type Kinematics struct {
	Heading      float64 // radians, never wrapped
	AngularSpeed float64 // radians per frame
	LinearSpeed  float64 // world units per frame, >= 0
	Position     Vec2
}

// NewKinematics returns a stationary car at pos facing the camera.
func NewKinematics(pos Vec2) Kinematics {
	return Kinematics{Heading: math.Pi, Position: pos}
}

// Tuning holds the per-frame motion constants.
type Tuning struct {
	AngularAccel  float64 // added to angular speed per frame while turning
	MovementAccel float64 // added to linear speed per frame while accelerating
	MovementDecel float64 // base brake rate, scaled by BrakeFactor
	BrakeFactor   float64
	AngularDecay  float64 // angular speed multiplier with no turn input
	LinearDecay   float64 // linear speed multiplier while coasting
	AngularSnap   float64 // angular speed below this snaps to 0
	TurnThreshold float64 // linear speed the car needs before it can steer
}

func DefaultTuning() Tuning {
	return Tuning{
		AngularAccel:  0.001,
		MovementAccel: 0.001,
		MovementDecel: 0.001,
		BrakeFactor:   5,
		AngularDecay:  0.95,
		LinearDecay:   0.95,
		AngularSnap:   0.0001,
		TurnThreshold: 0.001,
	}
}

// stepAngular updates the angular speed from one frame of steering input.
func (k *Kinematics) stepAngular(c Controls, t Tuning) {
	switch {
	case c.TurnLeft && k.LinearSpeed > t.TurnThreshold:
		k.AngularSpeed -= t.AngularAccel
	case c.TurnRight && k.LinearSpeed > t.TurnThreshold:
		k.AngularSpeed += t.AngularAccel
	default:
		k.AngularSpeed *= t.AngularDecay
		if math.Abs(k.AngularSpeed) < t.AngularSnap {
			k.AngularSpeed = 0
		}
	}
}

// stepLinear updates the linear speed from one frame of throttle input.
func (k *Kinematics) stepLinear(c Controls, t Tuning) {
	switch {
	case c.Accelerate:
		k.LinearSpeed += t.MovementAccel
	case c.Brake:
		k.LinearSpeed -= t.MovementDecel * t.BrakeFactor
		if k.LinearSpeed < 0 {
			k.LinearSpeed = 0
		}
	default:
		k.LinearSpeed *= t.LinearDecay
	}
}

// advance moves the car one frame backward along its heading's forward axis.
func (k *Kinematics) advance() {
	k.Position.X += math.Sin(k.Heading) * k.LinearSpeed * -1
	k.Position.Z += math.Cos(k.Heading) * k.LinearSpeed * -1
}
