package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"

	"github.com/iburimskiy/etherwall/internal/audio"
	"github.com/iburimskiy/etherwall/internal/config"
	"github.com/iburimskiy/etherwall/internal/engine"
	"github.com/iburimskiy/etherwall/internal/game"
	"github.com/iburimskiy/etherwall/internal/metrics"
	"github.com/iburimskiy/etherwall/internal/rng"
	"github.com/iburimskiy/etherwall/internal/scene"
	"github.com/iburimskiy/etherwall/internal/surface/canvas"
)

func main() {
	app := &cli.App{
		Name:  "etherwall",
		Usage: "ambient generative screensaver with a synthesized drone",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the settings file",
				Value:   config.DefaultPath(),
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "visual mode: orbs, smoke or ripple",
			},
			&cli.BoolFlag{
				Name:  "windowed",
				Usage: "start in a window instead of fullscreen",
			},
			&cli.BoolFlag{
				Name:  "mute",
				Usage: "start with the drone off",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed, 0 picks one from the clock",
			},
			&cli.StringFlag{
				Name:  "metrics-address",
				Usage: "serve prometheus metrics on this address, e.g. :9090",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "hud",
				Usage: "show the overlay on start",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("etherwall failed", "error", err)
		game.ShowError(err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	if c.IsSet("metrics-address") {
		cfg.Observability.MetricsAddress = c.String("metrics-address")
	}
	if c.IsSet("log-level") {
		cfg.Observability.LogLevel = c.String("log-level")
	}

	logger := newLogger(cfg.Observability.LogLevel)
	slog.SetDefault(logger)
	logger.Debug("loaded config", "path", path)

	mode, err := scene.ParseMode(cfg.Mode)
	if err != nil {
		logger.Warn("falling back to orbs", "error", err)
		mode = scene.Orbs
		cfg.Mode = mode.String()
	}

	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	if addr := cfg.Observability.MetricsAddress; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, reg, logger); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	cv := canvas.New(cfg.Window.Width, cfg.Window.Height, color.RGBA{R: 8, G: 8, B: 18, A: 255})
	eng := engine.New(cv,
		engine.WithRand(rng.New(seed)),
		engine.WithLogger(logger),
		engine.WithSettings(cfg.Settings),
		engine.WithMode(mode),
		engine.WithFx(engine.FxFromMap(cfg.Fx)),
		engine.WithMetrics(m),
	)

	drone := audio.New(audio.WithVolume(cfg.Audio.Volume), audio.WithLogger(logger))
	defer drone.Close()
	if cfg.Audio.Ambience != "" {
		if err := drone.SetAmbience(cfg.Audio.Ambience); err != nil {
			logger.Warn("ambience not loaded", "error", err)
		}
	}
	if cfg.Audio.Enabled && !c.Bool("mute") {
		drone.Start()
	}

	g := game.New(game.Options{
		Engine:  eng,
		Canvas:  cv,
		Audio:   drone,
		Config:  cfg,
		Metrics: m,
		Logger:  logger,
		ShowHUD: c.Bool("hud"),
	})

	fullscreen := cfg.Window.Fullscreen && !c.Bool("windowed")
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(fullscreen)
	if fullscreen {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	eng.Start()
	logger.Info("started", "mode", mode, "seed", seed, "fullscreen", fullscreen)

	runErr := ebiten.RunGame(g)
	eng.Stop()

	if err := config.Save(path, g.Config()); err != nil {
		logger.Warn("settings not saved", "error", err)
	}

	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return fmt.Errorf("failed to run: %w", runErr)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
