// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	_ "github.com/atelierhq/atelier/docs" // generated swagger docs
	"github.com/atelierhq/atelier/internal/api"
	"github.com/atelierhq/atelier/internal/auth"
	"github.com/atelierhq/atelier/internal/cache"
	"github.com/atelierhq/atelier/internal/chat"
	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/database"
	"github.com/atelierhq/atelier/internal/gamification"
	"github.com/atelierhq/atelier/internal/logging"
	"github.com/atelierhq/atelier/internal/museum"
	"github.com/atelierhq/atelier/internal/related"
	"github.com/atelierhq/atelier/internal/supervisor"
	"github.com/atelierhq/atelier/internal/supervisor/services"
	"github.com/atelierhq/atelier/internal/vision"
	ws "github.com/atelierhq/atelier/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("badger_path", cfg.Badger.Path).
		Bool("vision_configured", cfg.Vision.APIKey != "").
		Msg("Starting Atelier")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	badgerOpts := badger.DefaultOptions(cfg.Badger.Path).WithLogger(nil)
	chatDB, err := badger.Open(badgerOpts)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open chat store")
	}
	defer func() {
		if err := chatDB.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing chat store")
		}
	}()

	// Vision stack: recognition gate and content generators share one
	// breaker-wrapped client. Without an API key every generator degrades
	// to its static fallback.
	visionClient := vision.NewCircuitBreakerCompleter(vision.NewClient(&cfg.Vision))
	recognizer := vision.NewRecognizer(visionClient)
	generator := vision.NewGenerator(visionClient)
	if cfg.Vision.APIKey == "" {
		logging.Warn().Msg("No vision API key configured, recognition disabled and content generators use static fallbacks")
	}

	// Museum cross-reference with LRU memoization behind its own breaker.
	museumSvc := museum.NewService(
		museum.NewBreakerClient(museum.NewClient(&cfg.Museum)),
		&cfg.Cache,
	)

	relatedCache := cache.New(cfg.Cache.RelatedTTL, cfg.Cache.CleanupInterval)
	defer relatedCache.Stop()
	assembler := related.NewAssembler(db, museumSvc, generator, relatedCache)

	chatSvc := chat.NewService(chat.NewStore(chatDB), generator)
	progressSvc := gamification.NewService(db)

	wsHub := ws.NewHub()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	loginLimiter := auth.NewLoginLimiter(5, 5*time.Minute)
	defer loginLimiter.Stop()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED, use only for local testing")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Store:        db,
		Recognizer:   recognizer,
		Generator:    generator,
		Related:      assembler,
		Chat:         chatSvc,
		Progress:     progressSvc,
		Hub:          wsHub,
		JWT:          jwtManager,
		LoginLimiter: loginLimiter,
		Uploads:      cfg.Uploads,
		API:          cfg.API,
		CORSOrigins:  cfg.Security.CORSOrigins,
	})

	chiMWConfig := api.DefaultChiMiddlewareConfig()
	chiMWConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	chiMWConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled
	router := api.NewRouter(handler, auth.NewMiddleware(jwtManager), api.NewChiMiddleware(chiMWConfig))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	tree.AddDataService(services.NewBadgerGCService(chatDB, cfg.Badger.GCInterval))
	tree.AddDataService(services.NewCheckpointService(db, 5*time.Minute))
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
