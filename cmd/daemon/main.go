package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/amplayer/internal/config"
	"github.com/genricoloni/amplayer/internal/domain"
	"github.com/genricoloni/amplayer/internal/engine"
	"github.com/genricoloni/amplayer/internal/fetcher"
	"github.com/genricoloni/amplayer/internal/monitor"
	"github.com/genricoloni/amplayer/internal/playback"
	"github.com/genricoloni/amplayer/internal/processor"
	"github.com/genricoloni/amplayer/internal/publisher"
	"github.com/genricoloni/amplayer/internal/source"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the daemon's dependency graph without the fx logger, so
// tests can build it with fx.NopLogger.
var AppOptions = fx.Options(
	fx.Provide(
		newLogger,
		fx.Annotate(config.NewAppConfig, fx.As(fx.Self()), fx.As(new(domain.Config))),
		fx.Annotate(newSource, fx.As(fx.Self()), fx.As(new(domain.MusicSource))),
		fx.Annotate(playback.NewQueuePlayer, fx.As(fx.Self()), fx.As(new(domain.Player))),
		playback.NewPreparer,
		newMonitor,
		fx.Annotate(fetcher.NewFetcher, fx.As(new(domain.Fetcher))),
		fx.Annotate(processor.NewArtworkProcessor, fx.As(new(domain.ImageProcessor))),
		fx.Annotate(publisher.NewFilePublisher, fx.As(new(domain.Publisher))),
		engine.NewEngine,
	),
	fx.Invoke(registerHooks),
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		AppOptions,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	// Either a signal or a component calling fx.Shutdowner ends the run.
	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// newSource picks the YAML catalog when one is configured and the built-in
// sample tracks otherwise.
func newSource(logger *zap.Logger, cfg *config.AppConfig) *source.InMemorySource {
	loader := source.BuiltinCatalog()
	if cfg.CatalogFile != "" {
		loader = source.FileCatalog(cfg.CatalogFile)
	}
	return source.NewInMemorySource(logger, loader)
}

// newMonitor selects where playback events come from.
func newMonitor(logger *zap.Logger, cfg *config.AppConfig, player *playback.QueuePlayer) domain.Monitor {
	if cfg.Mode == config.ModeMPRIS {
		return monitor.NewMprisMonitor(logger)
	}
	return player
}

type hookParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *zap.Logger
	Config     *config.AppConfig
	Monitor    domain.Monitor
	Engine     *engine.Engine
	Source     *source.InMemorySource
	Player     *playback.QueuePlayer
	Preparer   *playback.Preparer
}

// registerHooks sets up application lifecycle hooks
func registerHooks(p hookParams) {
	// Background work outlives the OnStart context and ends in OnStop.
	runCtx, cancel := context.WithCancel(context.Background())

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("amplayer daemon started",
				zap.String("mode", p.Config.Mode),
				zap.String("outputDir", p.Config.OutputDir))

			go func() {
				err := p.Monitor.Start(runCtx)
				if err != nil && !errors.Is(err, context.Canceled) {
					p.Logger.Error("Monitor failed", zap.Error(err))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			if err := p.Engine.Start(ctx); err != nil {
				return err
			}

			if p.Config.Mode == config.ModeLocal {
				// Queued until the catalog has loaded.
				p.Preparer.Prepare(p.Config.Autoplay)
				go func() {
					if err := p.Source.Load(runCtx); err != nil {
						p.Logger.Error("Catalog unavailable, nothing will play", zap.Error(err))
					}
				}()
				watchControls(runCtx, p.Logger, p.Player)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("Shutting down")
			cancel()
			if err := p.Monitor.Stop(ctx); err != nil {
				p.Logger.Warn("Failed to stop monitor", zap.Error(err))
			}
			return p.Engine.Stop(ctx)
		},
	})
}
