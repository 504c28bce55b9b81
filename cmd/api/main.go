package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"fiche_client/internal/adapters/gemini"
	server "fiche_client/internal/adapters/http_server"
	"fiche_client/internal/adapters/media"
	"fiche_client/internal/adapters/observability"
	redisad "fiche_client/internal/adapters/redis"
	"fiche_client/internal/app"
	"fiche_client/internal/domain"
	"fiche_client/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// generator: absent key leaves insights disabled, the form still works
	var gen domain.TextGenerator
	if cfg.GeminiKey != "" {
		c, err := gemini.New(ctx, gemini.Config{
			APIKey:  cfg.GeminiKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBase,
			RPS:     cfg.GeminiRPS,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client init failed")
		}
		gen = c
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, insight cache disabled")
		} else {
			log.Info().Str("addr", cfg.RedisAddr).Msg("insight cache enabled")
			cache = rc
			defer rc.Close()
		}
	}

	store := media.NewStore(cfg.MaxUploadBytes)
	insights := app.NewInsightService(gen, cache, cfg.CacheTTL)
	form := app.NewFormController(store, insights)

	// http
	srv := server.New(cfg.CORSOrigins)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Form: form, Media: store, MaxUpload: cfg.MaxUploadBytes})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Bool("ai", insights.Available()).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
