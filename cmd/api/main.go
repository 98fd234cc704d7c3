package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/adapters/genai"
	server "hotel_recommender/internal/adapters/http_server"
	"hotel_recommender/internal/adapters/notify"
	"hotel_recommender/internal/adapters/observability"
	redisad "hotel_recommender/internal/adapters/redis"
	"hotel_recommender/internal/app"
	"hotel_recommender/internal/domain"
	"hotel_recommender/internal/shared"
	"hotel_recommender/internal/storage"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// store; the API still serves (with 503s) when it is missing or down
	var repo domain.HotelRepository
	if cfg.StoreDSN != "" {
		r, db, err := storage.Open(cfg.StoreDriver, cfg.StoreDSN)
		if err != nil {
			log.Error().Err(err).Str("driver", cfg.StoreDriver).Msg("store unavailable; continuing without it")
		} else {
			defer db.Close()
			repo = r
			log.Info().Str("driver", cfg.StoreDriver).Msg("database connection ok")
		}
	}

	// text generation
	var gen domain.TextGenerator
	if cfg.GenAIKey != "" {
		c, err := genai.New(genai.Options{
			BaseURL: cfg.GenAIBaseURL,
			APIKey:  cfg.GenAIKey,
			Model:   cfg.GenAIModel,
			Timeout: cfg.GenAITimeout,
			RPS:     cfg.GenAIRPS,
		})
		if err != nil {
			log.Error().Err(err).Msg("genai client init failed; using template reasoning")
		} else {
			gen = c
		}
	}

	// booking confirmations
	var notifier domain.BookingNotifier
	if cfg.RedisAddr != "" {
		q := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer q.Close()
		pctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := q.Ping(pctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed; confirmations may be dropped")
		}
		cancel()
		notifier = q
	} else {
		notifier = notify.NewEmailLogger(cfg.NotifyDelay, log.Logger)
	}

	// deps
	q := app.NewQueryService(repo, gen, cfg.ShortlistSize)
	admin := app.NewAdminService(repo)
	bookings := app.NewBookingService(notifier, app.GoDispatcher)

	// http
	srv := server.New(server.Options{CORSOrigins: cfg.CORSOrigins})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:                  q,
		Admin:              admin,
		Bookings:           bookings,
		AdminToken:         cfg.AdminToken,
		RecommendPerMinute: cfg.RateLimitPerMinute,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
