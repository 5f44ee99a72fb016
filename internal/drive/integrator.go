// Package drive turns held keys into car motion, one frame at a time.
package drive

import "errors"

var (
	ErrAlreadyLoaded = errors.New("drive: vehicle visual already attached")
	ErrNoVisual      = errors.New("drive: nil vehicle visual")
)

// Visual is the rendered car. The integrator writes the heading to every
// sub-mesh and the ground position to the root.
type Visual interface {
	// RootPosition returns the ground position the asset was placed at.
	RootPosition() (x, z float64)
	SetRootPosition(x, z float64)
	// SetYaw sets the yaw of every sub-mesh.
	SetYaw(heading float64)
}

// Lifecycle is the load state of the car visual.
type Lifecycle int

const (
	Unloaded Lifecycle = iota
	Loaded
)

func (l Lifecycle) String() string {
	switch l {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	}
	return "unknown"
}

// Integrator owns the car's kinematics and advances them once per frame.
type Integrator struct {
	tuning   Tuning
	bindings Bindings

	kin    Kinematics
	visual Visual
	state  Lifecycle
}

func NewIntegrator(tuning Tuning, bindings Bindings) *Integrator {
	return &Integrator{
		tuning:   tuning,
		bindings: bindings,
		kin:      NewKinematics(Vec2{}),
	}
}

// Attach hands the loaded visual to the integrator and moves it to Loaded.
// The kinematic position starts wherever the asset's root was placed.
func (it *Integrator) Attach(v Visual) error {
	if v == nil {
		return ErrNoVisual
	}
	if it.state == Loaded {
		return ErrAlreadyLoaded
	}
	x, z := v.RootPosition()
	it.kin.Position = Vec2{X: x, Z: z}
	it.visual = v
	it.state = Loaded
	v.SetYaw(it.kin.Heading)
	return nil
}

// Step advances one frame. Until a visual is attached it does nothing.
func (it *Integrator) Step(in *InputState) {
	if it.state != Loaded {
		return
	}
	c := it.bindings.Resolve(in)

	it.kin.stepAngular(c, it.tuning)
	it.kin.Heading += it.kin.AngularSpeed
	it.visual.SetYaw(it.kin.Heading)

	it.kin.stepLinear(c, it.tuning)
	it.kin.advance()
	it.visual.SetRootPosition(it.kin.Position.X, it.kin.Position.Z)
}

// Kinematics returns a copy of the current motion state.
func (it *Integrator) Kinematics() Kinematics { return it.kin }

func (it *Integrator) State() Lifecycle { return it.state }
