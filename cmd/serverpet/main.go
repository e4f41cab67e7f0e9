package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NitishVankina/ServerPet/internal/config"
	"github.com/NitishVankina/ServerPet/internal/engine"
	"github.com/NitishVankina/ServerPet/internal/errors"
	"github.com/NitishVankina/ServerPet/internal/logger"
	"github.com/NitishVankina/ServerPet/internal/metrics"
	"github.com/NitishVankina/ServerPet/internal/pet"
	"github.com/NitishVankina/ServerPet/internal/pid"
	"github.com/NitishVankina/ServerPet/internal/telemetry"
	"github.com/NitishVankina/ServerPet/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "serverpet: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logOut, closeLog, err := logOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := logger.Init(cfg.LogLevel, logOut); err != nil {
		return err
	}
	logger.Debug().Msg("config loaded")

	if err := pid.Write(); err != nil {
		return err
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Error().Err(err).Msg("failed to remove pid file")
		}
	}()

	petType, err := pet.ParseType(cfg.PetType)
	if err != nil {
		return err
	}
	creature := pet.New(cfg.PetName, petType)

	opts := engine.DefaultOptions()
	opts.Interval = time.Duration(cfg.Interval) * time.Second
	opts.CriticalThreshold = cfg.CriticalThreshold
	opts.AlertsEnabled = cfg.Alerts
	opts.DiskPath = cfg.DiskPath

	eng, err := engine.New(metrics.NewHostSource(), opts)
	if err != nil {
		return err
	}

	recorder, err := telemetry.NewService(telemetry.Config{
		Enabled: cfg.Telemetry,
		DBPath:  cfg.TelemetryDB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close telemetry")
		}
	}()

	eng.OnSnapshot(func(s engine.Snapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := recorder.Record(ctx, s); err != nil {
			logger.Warn().Err(err).Msg("telemetry record failed")
		}
	})

	if cfg.Monitor {
		return runMonitor(eng, creature)
	}

	return runTUI(eng, creature, cfg.DiskPath)
}

// runMonitor is the headless mode: one structured log line per snapshot
// until a termination signal arrives.
func runMonitor(eng *engine.Engine, creature pet.Pet) error {
	eng.OnSnapshot(func(s engine.Snapshot) {
		logger.Info().
			Float64("cpu", s.CPU).
			Float64("ram", s.RAM).
			Float64("disk", s.Disk).
			Float64("net_kbs", s.NetRateKBs).
			Str("mood", s.Mood.String()).
			Bool("alert", s.AlertFired).
			Str("pet", creature.Name).
			Msg("")
	})

	if err := eng.Start(); err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("received termination signal")

	return eng.Stop()
}

func runTUI(eng *engine.Engine, creature pet.Pet, diskPath string) error {
	model := ui.New(eng, creature, diskPath)

	if err := eng.Start(); err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := program.Run()

	if err := eng.Stop(); err != nil {
		var appErr errors.Error
		if !errors.As(err, &appErr) || appErr.Code() != errors.ErrNotRunning {
			logger.Error().Err(err).Msg("engine stop failed")
		}
	}

	return runErr
}

// logOutput decides where logs go. The TUI owns the terminal, so interactive
// runs log to a file (or discard) instead of stdout.
func logOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrInitFailed, err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	if cfg.Monitor {
		return os.Stdout, func() {}, nil
	}

	return io.Discard, func() {}, nil
}
