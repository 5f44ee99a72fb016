// Package desktop is the OpenGL front end: a glfw window showing the car on
// a textured ground, driven by the keyboard.
package desktop

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"uberdrive/internal/asset"
	"uberdrive/internal/audio"
	"uberdrive/internal/config"
	"uberdrive/internal/drive"
	"uberdrive/internal/logging"
	"uberdrive/internal/render"
	"uberdrive/internal/scene"
)

// buildScene creates the static scene: the sphere and the ground.
func buildScene() *scene.Scene {
	sc := scene.New()

	sphere := scene.NewNode("sphere")
	sphere.Mesh = scene.Sphere(SphereDiameter, SphereSegments, render.Palette.Sphere.Linear())
	sphere.Position = mgl32.Vec3{0, SphereHeight, 0}
	sc.Add(sphere)

	ground := scene.NewNode("ground")
	ground.Mesh = scene.Ground(render.GroundSize, render.GroundSize, [4]float32{1, 1, 1, 1})
	ground.Mesh.Texture = render.GroundTexture(GroundTextureSize, GroundSeed)
	sc.Add(ground)

	return sc
}

// Run opens the window and drives the car until the window closes or ctx
// ends. It must be called from the main goroutine.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	runtime.LockOSThread()

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().
		Str("renderer", gl.GoStr(gl.GetString(gl.RENDERER))).
		Str("version", gl.GoStr(gl.GetString(gl.VERSION))).
		Msg("opengl ready")

	var sound *audio.Engine
	if cfg.Audio.Enabled {
		if sound, err = audio.NewEngine(cfg.Audio.Volume, logging.Component(log, "audio")); err != nil {
			log.Warn().Err(err).Msg("audio init failed, continuing without sound")
			sound = nil
		} else {
			defer sound.Close()
		}
	}

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	sc := buildScene()
	cam := render.NewCamera(CameraStart, CameraTarget)
	light := render.SceneLight()
	it := drive.NewIntegrator(cfg.Tuning.Drive(), drive.DefaultBindings())

	input := NewInput(&cam)
	input.Attach(window)

	bus := NewEventBus()
	bus.Subscribe(EventResize, func(e Event) {
		rend.Resize(e.Width, e.Height)
		log.Debug().Int("width", e.Width).Int("height", e.Height).Msg("resize")
	})
	bus.Subscribe(EventAssetLoaded, func(e Event) {
		sc.Add(e.Model.Vehicle(float32(cfg.Vehicle.SpawnX)))
		root := sc.NodeByName(scene.RootName)
		if root == nil {
			log.Error().Msg("vehicle root missing from scene")
			return
		}
		if err := it.Attach(scene.NewVehicleVisual(root)); err != nil {
			log.Error().Err(err).Msg("attach vehicle")
			return
		}
		log.Info().Str("path", e.Model.Path).Int("parts", len(e.Model.Parts)).Msg("vehicle loaded")
	})
	bus.Subscribe(EventAssetFailed, func(e Event) {
		log.Error().Err(e.Err).Str("path", cfg.Asset.Path).Msg("vehicle import failed")
	})

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		bus.Emit(Event{Type: EventResize, Width: w, Height: h})
	})
	fbW, fbH := window.GetFramebufferSize()
	bus.Emit(Event{Type: EventResize, Width: fbW, Height: fbH})

	log.Info().Str("path", cfg.Asset.Path).Msg("importing vehicle")
	pending := asset.ImportAsync(ctx, cfg.Asset.Path)

	var frame uint64
	for !window.ShouldClose() && ctx.Err() == nil {
		glfw.PollEvents()

		if pending != nil {
			select {
			case res, ok := <-pending:
				pending = nil
				if ok {
					bus.Emit(resultEvent(res))
				}
			default:
			}
		}

		it.Step(input.State())
		input.MoveCamera()
		frame++
		kin := it.Kinematics()
		sound.SetSpeed(kin.LinearSpeed)
		if cfg.Debug && it.State() == drive.Loaded {
			log.Debug().Uint64("frame", frame).Float64("angular", kin.AngularSpeed).Msg("step")
			if frame%10 == 0 {
				window.SetTitle(fmt.Sprintf("%s | heading %.2f  turn %+.4f  speed %.3f",
					cfg.Window.Title, kin.Heading, kin.AngularSpeed, kin.LinearSpeed))
			}
		}

		rend.BeginFrame(render.Palette.Sky)
		rend.Draw(sc, cam, light)
		window.SwapBuffers()
	}
	return nil
}
