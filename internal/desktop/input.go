package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"uberdrive/internal/drive"
	"uberdrive/internal/render"
)

var keyNames = map[glfw.Key]string{
	glfw.KeyLeft:  drive.KeyArrowLeft,
	glfw.KeyRight: drive.KeyArrowRight,
	glfw.KeyUp:    drive.KeyArrowUp,
	glfw.KeyDown:  drive.KeyArrowDown,
	glfw.KeyA:     drive.KeyA,
	glfw.KeyD:     drive.KeyD,
	glfw.KeyW:     drive.KeyW,
	glfw.KeyS:     drive.KeyS,
}

// Input forwards window events: driving keys to the input state, left-drag,
// scroll and the arrow keys to the camera.
type Input struct {
	state *drive.InputState
	cam   *render.Camera

	dragging     bool
	lastX, lastY float64
}

func NewInput(cam *render.Camera) *Input {
	return &Input{state: drive.NewInputState(), cam: cam}
}

func (in *Input) State() *drive.InputState { return in.state }

// MoveCamera walks the camera with the held arrow keys. The arrows drive the
// car at the same time.
func (in *Input) MoveCamera() {
	fwd, right := cameraKeys(in.state)
	if fwd != 0 || right != 0 {
		in.cam.Move(fwd*render.KeyMoveSpeed, right*render.KeyMoveSpeed)
	}
}

// cameraKeys returns the arrow key axes, each in -1..1.
func cameraKeys(s *drive.InputState) (fwd, right float32) {
	if s.Held(drive.KeyArrowUp) {
		fwd++
	}
	if s.Held(drive.KeyArrowDown) {
		fwd--
	}
	if s.Held(drive.KeyArrowRight) {
		right++
	}
	if s.Held(drive.KeyArrowLeft) {
		right--
	}
	return fwd, right
}

// Attach installs the window callbacks.
func (in *Input) Attach(window *glfw.Window) {
	window.SetKeyCallback(in.onKey)
	window.SetMouseButtonCallback(in.onMouseButton)
	window.SetCursorPosCallback(in.onCursor)
	window.SetScrollCallback(in.onScroll)
}

func (in *Input) onKey(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
		return
	}
	name, ok := keyNames[key]
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		in.state.KeyDown(name)
	case glfw.Release:
		in.state.KeyUp(name)
	}
}

func (in *Input) onMouseButton(w *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if btn != glfw.MouseButtonLeft {
		return
	}
	in.dragging = action == glfw.Press
	in.lastX, in.lastY = w.GetCursorPos()
}

func (in *Input) onCursor(_ *glfw.Window, x, y float64) {
	if in.dragging {
		in.cam.Rotate(x-in.lastX, y-in.lastY)
	}
	in.lastX, in.lastY = x, y
}

func (in *Input) onScroll(_ *glfw.Window, _, dy float64) {
	in.cam.Dolly(dy)
}
