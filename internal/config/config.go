// Package config loads demo settings from defaults, an optional config
// file, UBERDRIVE_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"uberdrive/internal/drive"
)

const (
	HostDesktop  = "desktop"
	HostTerminal = "terminal"

	EnvPrefix = "UBERDRIVE"
	FileName  = "uberdrive"
)

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type AssetConfig struct {
	Path string `mapstructure:"path"`
}

type VehicleConfig struct {
	SpawnX float64 `mapstructure:"spawnX"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

type TerminalConfig struct {
	TickHz       int           `mapstructure:"tickHz"`
	InitialHold  time.Duration `mapstructure:"initialHold"`
	ReleaseDelay time.Duration `mapstructure:"releaseDelay"`
}

type TuningConfig struct {
	AngularAccel  float64 `mapstructure:"angularAccel"`
	MovementAccel float64 `mapstructure:"movementAccel"`
	MovementDecel float64 `mapstructure:"movementDecel"`
	BrakeFactor   float64 `mapstructure:"brakeFactor"`
	AngularDecay  float64 `mapstructure:"angularDecay"`
	LinearDecay   float64 `mapstructure:"linearDecay"`
	AngularSnap   float64 `mapstructure:"angularSnap"`
	TurnThreshold float64 `mapstructure:"turnThreshold"`
}

// Config is the resolved demo configuration.
type Config struct {
	Host     string         `mapstructure:"host"`
	LogLevel string         `mapstructure:"logLevel"`
	LogFile  string         `mapstructure:"logFile"`
	Debug    bool           `mapstructure:"debug"`
	Window   WindowConfig   `mapstructure:"window"`
	Asset    AssetConfig    `mapstructure:"asset"`
	Vehicle  VehicleConfig  `mapstructure:"vehicle"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Terminal TerminalConfig `mapstructure:"terminal"`
	Tuning   TuningConfig   `mapstructure:"tuning"`
}

// Drive converts the tuning section for the motion integrator.
func (t TuningConfig) Drive() drive.Tuning {
	return drive.Tuning{
		AngularAccel:  t.AngularAccel,
		MovementAccel: t.MovementAccel,
		MovementDecel: t.MovementDecel,
		BrakeFactor:   t.BrakeFactor,
		AngularDecay:  t.AngularDecay,
		LinearDecay:   t.LinearDecay,
		AngularSnap:   t.AngularSnap,
		TurnThreshold: t.TurnThreshold,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", HostDesktop)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("debug", false)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Uberdrive")

	v.SetDefault("asset.path", "Car.glb")
	v.SetDefault("vehicle.spawnX", 5.0)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.35)

	v.SetDefault("terminal.tickHz", 60)
	v.SetDefault("terminal.initialHold", "500ms")
	v.SetDefault("terminal.releaseDelay", "150ms")

	t := drive.DefaultTuning()
	v.SetDefault("tuning.angularAccel", t.AngularAccel)
	v.SetDefault("tuning.movementAccel", t.MovementAccel)
	v.SetDefault("tuning.movementDecel", t.MovementDecel)
	v.SetDefault("tuning.brakeFactor", t.BrakeFactor)
	v.SetDefault("tuning.angularDecay", t.AngularDecay)
	v.SetDefault("tuning.linearDecay", t.LinearDecay)
	v.SetDefault("tuning.angularSnap", t.AngularSnap)
	v.SetDefault("tuning.turnThreshold", t.TurnThreshold)
}

// Flags declares the command-line flags Load understands.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("host", HostDesktop, "front end to run: desktop or terminal")
	fs.String("asset", "Car.glb", "path of the car model to import")
	fs.String("log-level", "info", "log level: trace, debug, info, warn, error")
	fs.Bool("debug", false, "show kinematics in the window title and log every frame")
	fs.String("config", "", "config file (default ./uberdrive.{json,yaml,toml})")
	return fs
}

// Load resolves the configuration. fs may be nil; otherwise it must already
// be parsed. Flags override the environment, which overrides the file.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := ""
	if fs != nil {
		bind := map[string]string{
			"host":       "host",
			"asset.path": "asset",
			"logLevel":   "log-level",
			"debug":      "debug",
		}
		for key, flag := range bind {
			if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
		file, _ = fs.GetString("config")
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the demo cannot run with.
func (c *Config) Validate() error {
	switch c.Host {
	case HostDesktop, HostTerminal:
	default:
		return fmt.Errorf("config: unknown host %q", c.Host)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Asset.Path == "" {
		return errors.New("config: empty asset path")
	}
	if c.Terminal.TickHz <= 0 {
		return fmt.Errorf("config: terminal tick rate %d", c.Terminal.TickHz)
	}
	if c.Terminal.ReleaseDelay <= 0 || c.Terminal.InitialHold < c.Terminal.ReleaseDelay {
		return fmt.Errorf("config: terminal hold %s / release delay %s", c.Terminal.InitialHold, c.Terminal.ReleaseDelay)
	}
	if c.Tuning.LinearDecay < 0 || c.Tuning.LinearDecay > 1 || c.Tuning.AngularDecay < 0 || c.Tuning.AngularDecay > 1 {
		return errors.New("config: decay factors must be within [0, 1]")
	}
	return nil
}
