package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"

	"uberdrive/internal/config"
	"uberdrive/internal/desktop"
	"uberdrive/internal/logging"
	"uberdrive/internal/term"
)

const terminalLogFile = "uberdrive.log"

// glfw must run on the main thread.
func init() { runtime.LockOSThread() }

func main() {
	fs := config.Flags("uberdrive")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	out, closeLog, err := logOutput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	log := logging.New(out, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("host", cfg.Host).Str("asset", cfg.Asset.Path).Bool("debug", cfg.Debug).Msg("starting")
	switch cfg.Host {
	case config.HostTerminal:
		err = term.Run(ctx, cfg, logging.Component(log, "terminal"))
	default:
		err = desktop.Run(ctx, cfg, logging.Component(log, "desktop"))
	}
	if err != nil {
		log.Error().Err(err).Msg("exiting")
		closeLog()
		os.Exit(1)
	}
	log.Info().Msg("bye")
}

// logOutput picks the log destination. The terminal host owns the screen, so
// its logs go to a file unless one is configured.
func logOutput(cfg *config.Config) (io.Writer, func(), error) {
	path := cfg.LogFile
	if path == "" && cfg.Host == config.HostTerminal {
		path = terminalLogFile
	}
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
