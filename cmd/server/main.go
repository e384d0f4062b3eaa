package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"platforms-server/internal/agent"
	"platforms-server/internal/config"
	"platforms-server/internal/engine"
	"platforms-server/internal/infrastructure/metrics"
	"platforms-server/internal/infrastructure/storage"
	"platforms-server/internal/server"
	"platforms-server/internal/version"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Флаги
	var (
		configPath string
		seed       int64
		replayPath string
		addr       string
		withBot    bool
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML config (empty for defaults)")
	flag.Int64Var(&seed, "seed", 0, "Simulation seed (0 keeps the config value)")
	flag.StringVar(&replayPath, "replay", "", "Path to .jsonl.zst replay file to simulate")
	flag.StringVar(&addr, "addr", "", "Listen address (overrides config)")
	flag.BoolVar(&withBot, "bot", false, "Run a headless bot controlling the player")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	if seed != 0 {
		cfg.Sim.Seed = seed
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger.Log.Info("Starting Platforms server...")
	logger.Log.Info(version.String())

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		if err := runReplay(cfg, replayPath); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		return
	}

	if err := run(cfg, withBot); err != nil {
		logger.Log.WithError(err).Fatal("Server stopped with error")
	}
	logger.Log.Info("Done.")
}

func run(cfg *config.Config, withBot bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Метрики
	var (
		provider *metrics.Provider
		meters   *metrics.Metrics
	)
	if cfg.Metrics.Enabled {
		p, err := metrics.NewProvider()
		if err != nil {
			return err
		}
		provider, meters = p, p.Metrics
	}

	// 3. Хранилища
	journal, err := storage.OpenJournal(cfg.Storage.JournalPath)
	if err != nil {
		return err
	}

	// 4. Сцена и симуляция
	sc, err := cfg.SceneBuilder().Build()
	if err != nil {
		return err
	}
	engineCfg := cfg.Engine()
	var simOpts []engine.Option
	if meters != nil {
		simOpts = append(simOpts, engine.WithMetrics(meters))
	}
	sim := engine.BuildSimulation("main", sc, engineCfg, cfg.Physics, simOpts...)
	logger.Log.WithField("seed", engineCfg.Seed).Info("Simulation seed")

	svcOpts := []engine.ServiceOption{engine.WithEventSink(journal.Sink(sim.ID))}
	if meters != nil {
		svcOpts = append(svcOpts, engine.WithCommandMetrics(meters))
	}
	if cfg.Storage.ReplayDir != "" {
		replays, err := storage.NewReplayService(cfg.Storage.ReplayDir)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, engine.WithReplayStore(replays))
	}
	gameService, err := engine.NewService(sim, svcOpts...)
	if err != nil {
		return err
	}

	// 5. HTTP
	opts := server.Options{
		Addr:        cfg.Server.Addr,
		Debug:       cfg.Server.Debug,
		Journal:     journal,
		MetricsPath: cfg.Metrics.Path,
	}
	if provider != nil {
		opts.Metrics = provider.Handler()
	}
	srv := server.New(gameService, opts)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sim.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })
	if withBot {
		bot := agent.NewBot(gameService, "", cfg.AI)
		g.Go(func() error { return bot.Run(gctx) })
	}

	runErr := g.Wait()
	logger.Log.Info("Shutting down...")

	// Симуляция остановлена - запись и журнал можно закрывать
	var errs []error
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		errs = append(errs, runErr)
	}
	if _, err := gameService.SaveReplay(); err != nil {
		errs = append(errs, err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := journal.Flush(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := journal.Close(); err != nil {
		errs = append(errs, err)
	}
	if provider != nil {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// runReplay прогоняет записанные команды на той же сцене и сиде
func runReplay(cfg *config.Config, path string) error {
	logger.Log.Info("💿 Mode: Replay Simulation")

	session, err := storage.LoadReplay(path)
	if err != nil {
		return err
	}

	sc, err := cfg.SceneBuilder().Build()
	if err != nil {
		return err
	}
	if sc.World.Name != session.Scene {
		logger.Log.WithFields(logrus.Fields{
			"recorded": session.Scene,
			"config":   sc.World.Name,
		}).Warn("Replay scene differs from configured scene")
	}

	engineCfg := cfg.Engine()
	engineCfg.Seed = session.Seed
	if session.TickRate > 0 {
		engineCfg.TickRate = session.TickRate
	}

	sim := engine.BuildSimulation("replay", sc, engineCfg, cfg.Physics, engine.WithPlayback(session.Actions))
	dt := engineCfg.TickDelta()
	for sim.PlaybackPending() > 0 {
		sim.Step(dt)
	}

	var deaths, alive int
	sim.Inspect(func(s *engine.Simulation) {
		for _, e := range s.World.Entities() {
			if e.Alive() {
				alive++
			} else {
				deaths++
			}
		}
	})
	logger.Log.WithFields(logrus.Fields{
		"actions": len(session.Actions),
		"ticks":   sim.CurrentTick,
		"alive":   alive,
		"dead":    deaths,
	}).Info("Replay finished")
	return nil
}
