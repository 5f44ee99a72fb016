package desktop

import (
	"errors"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uberdrive/internal/asset"
	"uberdrive/internal/drive"
	"uberdrive/internal/render"
)

func TestResultEvent(t *testing.T) {
	m := &asset.Model{Path: "Car.glb"}
	e := resultEvent(asset.Result{Model: m})
	assert.Equal(t, EventAssetLoaded, e.Type)
	assert.Same(t, m, e.Model)
	assert.NoError(t, e.Err)

	boom := errors.New("boom")
	e = resultEvent(asset.Result{Err: boom})
	assert.Equal(t, EventAssetFailed, e.Type)
	assert.ErrorIs(t, e.Err, boom)
	assert.Nil(t, e.Model)
}

func TestEventBusDispatchesByType(t *testing.T) {
	bus := NewEventBus()
	var got []string
	bus.Subscribe(EventResize, func(e Event) { got = append(got, "first") })
	bus.Subscribe(EventResize, func(e Event) { got = append(got, "second") })
	bus.Subscribe(EventAssetFailed, func(e Event) { got = append(got, "failed") })

	bus.Emit(Event{Type: EventResize, Width: 800, Height: 600})
	assert.Equal(t, []string{"first", "second"}, got)

	bus.Emit(Event{Type: EventAssetLoaded})
	assert.Len(t, got, 2, "no handler for loaded")
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want string
	}{
		{glfw.KeyLeft, drive.KeyArrowLeft},
		{glfw.KeyRight, drive.KeyArrowRight},
		{glfw.KeyUp, drive.KeyArrowUp},
		{glfw.KeyDown, drive.KeyArrowDown},
		{glfw.KeyA, drive.KeyA},
		{glfw.KeyD, drive.KeyD},
		{glfw.KeyW, drive.KeyW},
		{glfw.KeyS, drive.KeyS},
	}
	require.Len(t, keyNames, len(tests))
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyNames[tt.key])
	}
	_, ok := keyNames[glfw.KeySpace]
	assert.False(t, ok)

	// Every mapped name drives the car through the default bindings.
	b := drive.DefaultBindings()
	for _, name := range keyNames {
		in := drive.NewInputState()
		in.KeyDown(name)
		assert.NotEqual(t, drive.Controls{}, b.Resolve(in), name)
	}
}

func TestArrowKeysMoveCamera(t *testing.T) {
	cam := render.NewCamera(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})
	in := NewInput(&cam)

	in.MoveCamera()
	assert.Equal(t, mgl32.Vec3{}, cam.Position)

	in.State().KeyDown(drive.KeyArrowUp)
	in.State().KeyDown(drive.KeyW)
	in.MoveCamera()
	assert.InDelta(t, render.KeyMoveSpeed, cam.Position.Z(), 1e-6)

	in.State().KeyDown(drive.KeyArrowDown)
	in.State().KeyDown(drive.KeyArrowLeft)
	fwd, right := cameraKeys(in.State())
	assert.Equal(t, float32(0), fwd)
	assert.Equal(t, float32(-1), right)
}
