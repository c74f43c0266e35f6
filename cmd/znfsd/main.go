package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/znfsd/internal/board"
	"codeberg.org/mutker/znfsd/internal/config"
	"codeberg.org/mutker/znfsd/internal/display"
	"codeberg.org/mutker/znfsd/internal/errors"
	"codeberg.org/mutker/znfsd/internal/fan"
	"codeberg.org/mutker/znfsd/internal/logger"
	"codeberg.org/mutker/znfsd/internal/netrate"
	"codeberg.org/mutker/znfsd/internal/pid"
	"codeberg.org/mutker/znfsd/internal/scheduler"
	"codeberg.org/mutker/znfsd/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.Init(level, logger.IsService())
	logger.Debug().Msg("Config loaded")

	if err := run(cfg); err != nil {
		var coded errors.Error
		if errors.As(err, &coded) {
			logger.FatalWithCode(coded).Msg("znfsd stopped")
		}
		logger.Fatal().Err(err).Msg("znfsd stopped")
	}

	logger.Info().Msg("Exiting...")
}

func run(cfg *config.Config) error {
	errFactory := errors.New()
	log := logger.Default()

	if err := pid.Write(); err != nil {
		return errFactory.Wrap(errors.ErrInitFailed, err)
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Error().Err(err).Msg("failed to remove pid file")
		}
	}()

	face, err := display.LoadFace(cfg.FontPath, cfg.FontSize)
	if err != nil {
		return errFactory.Wrap(errors.ErrInitFailed, err)
	}

	hw, err := board.Open(cfg.I2CBus, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := hw.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close board")
		}
	}()

	fanCtl, err := fan.NewController(fan.NewDevice(hw.Fan(), log), fan.DefaultThresholds, log)
	if err != nil {
		return errFactory.Wrap(errors.ErrInitFailed, err)
	}

	sched, err := scheduler.New(
		scheduler.Config{Interval: cfg.Interval, Interface: cfg.Interface},
		telemetry.NewSampler(telemetry.ThermalZone{Path: cfg.TemperaturePath}, telemetry.NewHostSource()),
		netrate.NewTracker(),
		fanCtl,
		display.NewRenderer(display.NewOLED(hw.Display()), face),
		scheduler.SystemClock{},
		log,
	)
	if err != nil {
		return errFactory.Wrap(errors.ErrInitFailed, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		handleSignals(gctx, cancel)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return sched.Run(gctx)
	})

	return g.Wait()
}

func handleSignals(ctx context.Context, cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		logger.Info().Msg("Received termination signal.")
		cancel()
	case <-ctx.Done():
	}
}
