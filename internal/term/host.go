// Package term drives the car in a terminal, drawn top-down with tcell.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"uberdrive/internal/asset"
	"uberdrive/internal/audio"
	"uberdrive/internal/config"
	"uberdrive/internal/drive"
	"uberdrive/internal/logging"
	"uberdrive/internal/scene"
)

// Host owns the terminal session: input, the integrator and the loaded car.
type Host struct {
	screen tcell.Screen
	log    zerolog.Logger
	cfg    *config.Config

	input *drive.InputState
	hold  *HoldTracker
	it    *drive.Integrator
	sound *audio.Engine

	pending <-chan asset.Result
	car     *scene.Node
	note    string
	frames  uint64
}

// NewHost prepares a host on an initialised screen.
func NewHost(screen tcell.Screen, cfg *config.Config, log zerolog.Logger) *Host {
	return &Host{
		screen: screen,
		log:    log,
		cfg:    cfg,
		input:  drive.NewInputState(),
		hold:   NewHoldTracker(cfg.Terminal.InitialHold, cfg.Terminal.ReleaseDelay),
		it:     drive.NewIntegrator(cfg.Tuning.Drive(), drive.DefaultBindings()),
		note:   "loading " + cfg.Asset.Path,
	}
}

// SetSound routes the car speed to an engine hum. A nil engine is silent.
func (h *Host) SetSound(e *audio.Engine) { h.sound = e }

// Load starts importing the car model in the background.
func (h *Host) Load(ctx context.Context) {
	h.log.Info().Str("path", h.cfg.Asset.Path).Msg("importing vehicle")
	h.pending = asset.ImportAsync(ctx, h.cfg.Asset.Path)
}

func (h *Host) Integrator() *drive.Integrator { return h.it }

// poll attaches the car once its import has finished.
func (h *Host) poll() {
	if h.pending == nil {
		return
	}
	select {
	case res, ok := <-h.pending:
		h.pending = nil
		if !ok {
			return
		}
		h.loaded(res)
	default:
	}
}

func (h *Host) loaded(res asset.Result) {
	if res.Err != nil {
		h.log.Error().Err(res.Err).Msg("vehicle import failed")
		h.note = "vehicle failed to load"
		return
	}
	h.car = res.Model.Vehicle(float32(h.cfg.Vehicle.SpawnX))
	if err := h.it.Attach(scene.NewVehicleVisual(h.car)); err != nil {
		h.log.Error().Err(err).Msg("attach vehicle")
		return
	}
	h.log.Info().Int("parts", len(res.Model.Parts)).Msg("vehicle loaded")
}

// HandleEvent applies one terminal event and reports whether to quit.
func (h *Host) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.key(ev.Key(), ev.Rune(), now)
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return false
}

func (h *Host) key(k tcell.Key, r rune, now time.Time) bool {
	if isQuit(k, r) {
		return true
	}
	if name, ok := keyName(k, r); ok {
		h.hold.Press(h.input, name, now)
	}
	return false
}

// Tick runs one frame: release quiet keys, pick up a finished import,
// integrate and draw.
func (h *Host) Tick(now time.Time) {
	h.hold.Expire(h.input, now)
	h.poll()
	h.it.Step(h.input)
	h.frames++

	kin := h.it.Kinematics()
	h.sound.SetSpeed(kin.LinearSpeed)
	if h.cfg.Debug && h.it.State() == drive.Loaded {
		h.log.Debug().
			Uint64("frame", h.frames).
			Float64("heading", kin.Heading).
			Float64("angular", kin.AngularSpeed).
			Float64("speed", kin.LinearSpeed).
			Float64("x", kin.Position.X).
			Float64("z", kin.Position.Z).
			Msg("step")
	}
	draw(h.screen, kin, h.it.State(), statusLine(kin, h.it.State(), h.note))
}

// Run loops until ctx ends or the user quits.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.Terminal.TickHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if h.HandleEvent(ev, time.Now()) {
				h.log.Info().Msg("quit requested")
				return nil
			}
		case now := <-ticker.C:
			h.Tick(now)
		}
	}
}

// Run opens the terminal, loads the car and drives it until the user quits.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	h := NewHost(screen, cfg, log)
	if cfg.Audio.Enabled {
		e, err := audio.NewEngine(cfg.Audio.Volume, logging.Component(log, "audio"))
		if err != nil {
			log.Warn().Err(err).Msg("audio disabled")
		} else {
			defer e.Close()
			h.SetSound(e)
		}
	}
	h.Load(ctx)
	return h.Run(ctx)
}
