// Package main provides the Camp Blood session coordinator binary: the
// websocket relay that groups players into rooms and runs the lobby, class
// selection, game, and post-game phases.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/campblood/server/internal/config"
	"github.com/campblood/server/internal/game"
	"github.com/campblood/server/internal/game/spawn"
	"github.com/campblood/server/internal/hub"
	"github.com/campblood/server/internal/observability"
	"github.com/campblood/server/internal/server"
	"github.com/campblood/server/internal/transport"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	// Local overrides for development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	layout := spawn.DefaultLayout()
	if cfg.Game.SpawnsFile != "" {
		layout, err = spawn.Load(cfg.Game.SpawnsFile)
		if err != nil {
			logger.Fatal("loading spawn layout", zap.Error(err))
		}
		logger.Info("spawn layout loaded",
			zap.String("file", cfg.Game.SpawnsFile),
			zap.Int("survivor_points", len(layout.Survivors)),
		)
	}

	ids := game.NewIDSource()
	registry := game.NewRegistry(logger, ids)
	bcast := game.NewBroadcaster(logger)
	loop := hub.NewLoop(logger)

	rules := game.Rules{
		ClassUnlockDelay: cfg.Game.ClassUnlockDelay,
		LobbyResetDelay:  cfg.Game.LobbyResetDelay,
	}
	life := game.NewLifecycle(logger, rules, layout, loop, bcast, registry, ids)
	h := hub.New(logger, loop, registry, life, bcast, ids, cfg.Game.KillerCooldownSecs)
	acceptor := transport.NewAcceptor(logger, h)

	router := server.NewRouter(acceptor, cfg.Server.StaticDir)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	lifecycle := server.NewLifecycle(logger)

	lifecycle.Add("coordinator", &server.FuncService{
		StartFn: func() error { return loop.Run(context.Background()) },
		StopFn:  loop.Stop,
	})

	lifecycle.Add("http", &server.FuncService{
		StartFn: func() error {
			logger.Info("http server listening", zap.String("addr", cfg.Server.Addr()))
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("listening on %s: %w", cfg.Server.Addr(), err)
			}
			return nil
		},
		StopFn: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				logger.Warn("http shutdown", zap.Error(err))
			}
		},
	})

	logger.Info("coordinator initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("addr", cfg.Server.Addr()),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
