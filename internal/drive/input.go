package drive

// Key identifiers follow the browser KeyboardEvent.key vocabulary so every
// host maps its native codes onto the same names.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyA          = "a"
	KeyD          = "d"
	KeyW          = "w"
	KeyS          = "s"
)

// InputState records which keys are currently held.
type InputState struct {
	held map[string]bool
}

func NewInputState() *InputState {
	return &InputState{held: make(map[string]bool)}
}

// KeyDown marks key as held.
func (s *InputState) KeyDown(key string) {
	s.held[key] = true
}

// KeyUp marks key as released.
func (s *InputState) KeyUp(key string) {
	s.held[key] = false
}

// Held reports whether key is down. Unknown keys are not held.
func (s *InputState) Held(key string) bool {
	if s == nil {
		return false
	}
	return s.held[key]
}

// Bindings lists the keys that drive each control. A control is active
// while any of its keys is held.
type Bindings struct {
	TurnLeft   []string
	TurnRight  []string
	Accelerate []string
	Brake      []string
}

// DefaultBindings pairs each arrow key with its WASD letter.
func DefaultBindings() Bindings {
	return Bindings{
		TurnLeft:   []string{KeyArrowLeft, KeyA},
		TurnRight:  []string{KeyArrowRight, KeyD},
		Accelerate: []string{KeyArrowUp, KeyW},
		Brake:      []string{KeyArrowDown, KeyS},
	}
}

// Controls is one frame's snapshot of the logical driving inputs.
type Controls struct {
	TurnLeft   bool
	TurnRight  bool
	Accelerate bool
	Brake      bool
}

// Resolve reads the bound keys from in.
func (b Bindings) Resolve(in *InputState) Controls {
	return Controls{
		TurnLeft:   anyHeld(in, b.TurnLeft),
		TurnRight:  anyHeld(in, b.TurnRight),
		Accelerate: anyHeld(in, b.Accelerate),
		Brake:      anyHeld(in, b.Brake),
	}
}

func anyHeld(in *InputState, keys []string) bool {
	for _, k := range keys {
		if in.Held(k) {
			return true
		}
	}
	return false
}
