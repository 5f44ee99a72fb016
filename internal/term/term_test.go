package term

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uberdrive/internal/config"
	"uberdrive/internal/drive"
	"uberdrive/internal/render"
)

// recordingScreen keeps the last rune drawn in each cell.
type recordingScreen struct {
	tcell.Screen
	cells map[[2]int]rune
}

func newRecordingScreen(t *testing.T, w, h int) *recordingScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return &recordingScreen{Screen: screen, cells: make(map[[2]int]rune)}
}

func (r *recordingScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	r.cells[[2]int{x, y}] = primary
	r.Screen.SetContent(x, y, primary, combining, style)
}

func (r *recordingScreen) Clear() {
	clear(r.cells)
	r.Screen.Clear()
}

func (r *recordingScreen) find(want rune) (int, int, bool) {
	for pos, got := range r.cells {
		if got == want {
			return pos[0], pos[1], true
		}
	}
	return 0, 0, false
}

func writeTriangle(t *testing.T) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}})
	doc.Meshes = []*gltf.Mesh{{Name: "body", Primitives: []*gltf.Primitive{{
		Attributes: map[string]int{gltf.POSITION: pos},
	}}}}
	doc.Nodes = []*gltf.Node{{Name: "Body", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}
	path := filepath.Join(t.TempDir(), "Car.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func testConfig(t *testing.T, assetPath string) *config.Config {
	t.Helper()
	cfg, err := config.Load(nil)
	require.NoError(t, err)
	cfg.Asset.Path = assetPath
	cfg.Audio.Enabled = false
	return cfg
}

func TestHoldTracker(t *testing.T) {
	in := drive.NewInputState()
	h := NewHoldTracker(500*time.Millisecond, 100*time.Millisecond)
	t0 := time.Unix(0, 0)

	h.Press(in, drive.KeyW, t0)
	assert.True(t, in.Held(drive.KeyW))

	// The first press survives the typematic delay.
	h.Expire(in, t0.Add(400*time.Millisecond))
	assert.True(t, in.Held(drive.KeyW))

	// Once repeating, a short gap releases it.
	h.Press(in, drive.KeyW, t0.Add(450*time.Millisecond))
	h.Expire(in, t0.Add(520*time.Millisecond))
	assert.True(t, in.Held(drive.KeyW))
	h.Expire(in, t0.Add(550*time.Millisecond))
	assert.False(t, in.Held(drive.KeyW))

	// A single tap is released after the initial hold.
	h.Press(in, drive.KeyA, t0)
	h.Expire(in, t0.Add(500*time.Millisecond))
	assert.False(t, in.Held(drive.KeyA))
}

func TestSurfaceGlyphsUseSceneLight(t *testing.T) {
	light := render.SceneLight()
	up := mgl32.Vec3{0, 1, 0}
	rgb := func(c render.RGB) tcell.Color {
		c = light.Lit(c, up)
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}

	_, bg, _ := surfaceGlyphs[render.Grass].style.Decompose()
	assert.Equal(t, rgb(render.Palette.Grass), bg)
	fg, bg, _ := surfaceGlyphs[render.RoadLine].style.Decompose()
	assert.Equal(t, rgb(render.Palette.Line), fg)
	assert.Equal(t, rgb(render.Palette.Road), bg)

	dark := litGlyphs(render.Hemispheric{Direction: up})
	_, bg, _ = dark[render.Road].style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), bg)
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want string
		ok   bool
	}{
		{tcell.KeyLeft, 0, drive.KeyArrowLeft, true},
		{tcell.KeyRight, 0, drive.KeyArrowRight, true},
		{tcell.KeyUp, 0, drive.KeyArrowUp, true},
		{tcell.KeyDown, 0, drive.KeyArrowDown, true},
		{tcell.KeyRune, 'a', drive.KeyA, true},
		{tcell.KeyRune, 'D', drive.KeyD, true},
		{tcell.KeyRune, 'w', drive.KeyW, true},
		{tcell.KeyRune, 's', drive.KeyS, true},
		{tcell.KeyRune, 'x', "", false},
		{tcell.KeyEnter, 0, "", false},
	}
	for _, tt := range tests {
		got, ok := keyName(tt.key, tt.r)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ok, ok)
	}

	assert.True(t, isQuit(tcell.KeyEscape, 0))
	assert.True(t, isQuit(tcell.KeyCtrlC, 0))
	assert.True(t, isQuit(tcell.KeyRune, 'q'))
	assert.False(t, isQuit(tcell.KeyRune, 'w'))
}

func TestHeadingGlyph(t *testing.T) {
	assert.Equal(t, '↑', headingGlyph(math.Pi))
	assert.Equal(t, '↓', headingGlyph(0))
	assert.Equal(t, '←', headingGlyph(math.Pi/2))
	assert.Equal(t, '→', headingGlyph(-math.Pi/2))
	assert.Equal(t, '↖', headingGlyph(3*math.Pi/4))
	assert.Equal(t, '↑', headingGlyph(3*math.Pi))
}

func TestViewProject(t *testing.T) {
	v := view{w: 81, h: 41}

	col, row, ok := v.project(0, 0)
	require.True(t, ok)
	assert.Equal(t, 40, col)
	assert.Equal(t, 20, row)

	col, row, ok = v.project(60, 60)
	require.True(t, ok)
	assert.Equal(t, 80, col)
	assert.Equal(t, 0, row)

	_, _, ok = v.project(61, 0)
	assert.False(t, ok)
	_, _, ok = view{}.project(0, 0)
	assert.False(t, ok)
}

func TestHostLoadsAndDrives(t *testing.T) {
	screen := newRecordingScreen(t, 81, 42)
	h := NewHost(screen, testConfig(t, writeTriangle(t)), zerolog.Nop())
	h.Load(context.Background())

	now := time.Unix(0, 0)
	require.Eventually(t, func() bool {
		h.Tick(now)
		return h.Integrator().State() == drive.Loaded
	}, 5*time.Second, 5*time.Millisecond)

	kin := h.Integrator().Kinematics()
	assert.Equal(t, 5.0, kin.Position.X)
	assert.Equal(t, math.Pi, kin.Heading)

	col, row, ok := screen.find('↑')
	require.True(t, ok)
	assert.Equal(t, 43, col)
	assert.Equal(t, 20, row)
	_, _, ok = screen.find('O')
	assert.True(t, ok)

	// Hold W with auto-repeat for 100 frames.
	for i := 0; i < 100; i++ {
		now = now.Add(16 * time.Millisecond)
		assert.False(t, h.key(tcell.KeyRune, 'w', now))
		h.Tick(now)
	}
	kin = h.Integrator().Kinematics()
	assert.InDelta(t, 0.1, kin.LinearSpeed, 1e-9)
	assert.Greater(t, kin.Position.Z, 0.0)
	assert.InDelta(t, 5.0, kin.Position.X, 1e-9)

	// Stop repeating: the key is released and the car coasts.
	now = now.Add(time.Second)
	h.Tick(now)
	assert.InDelta(t, 0.1*0.95, h.Integrator().Kinematics().LinearSpeed, 1e-9)

	assert.True(t, h.key(tcell.KeyEscape, 0, now))
}

func TestHostImportFailureStaysUnloaded(t *testing.T) {
	var logs bytes.Buffer
	screen := newRecordingScreen(t, 40, 20)
	h := NewHost(screen, testConfig(t, filepath.Join(t.TempDir(), "missing.glb")), zerolog.New(&logs))
	h.Load(context.Background())

	now := time.Unix(0, 0)
	require.Eventually(t, func() bool {
		h.Tick(now)
		return h.pending == nil
	}, 5*time.Second, 5*time.Millisecond)

	h.key(tcell.KeyUp, 0, now)
	for i := 0; i < 10; i++ {
		h.Tick(now)
	}
	assert.Equal(t, drive.Unloaded, h.Integrator().State())
	assert.Zero(t, h.Integrator().Kinematics().LinearSpeed)
	assert.Contains(t, logs.String(), "vehicle import failed")
	assert.Contains(t, logs.String(), `"level":"error"`)
	_, _, ok := screen.find('↑')
	assert.False(t, ok)
}

func TestHandleEventResize(t *testing.T) {
	screen := newRecordingScreen(t, 40, 20)
	h := NewHost(screen, testConfig(t, "Car.glb"), zerolog.Nop())
	assert.False(t, h.HandleEvent(tcell.NewEventResize(60, 30), time.Now()))
}

func TestViewUnprojectInvertsProject(t *testing.T) {
	v := view{w: 81, h: 41}
	x, z := v.unproject(43, 20)
	assert.InDelta(t, 4.5, x, 1e-9)
	assert.InDelta(t, 0.0, z, 1e-9)

	col, row, ok := v.project(x, z)
	require.True(t, ok)
	assert.Equal(t, 43, col)
	assert.Equal(t, 20, row)
}
