package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dotaznik/internal/audit"
	"dotaznik/internal/forms"
	"dotaznik/internal/jwtauth"
	"dotaznik/internal/platform/config"
	"dotaznik/internal/platform/httpserver"
	"dotaznik/internal/platform/logger"
	"dotaznik/internal/platform/metrics"
	"dotaznik/internal/platform/redis"
	"dotaznik/internal/profile"
	"dotaznik/internal/suggest"
)

// main wires high-level dependencies, exposes the HTTP router, and
// keeps the server lifecycle small. Business logic lives in the
// internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	tokens := jwtauth.NewService(cfg.JWTSigningKey, "dotaznik", "dotaznik-admin")

	// Storage: Postgres when configured, in-memory otherwise.
	var formStore forms.Store = forms.NewInMemoryStore()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer pool.Close()
		formStore = forms.NewPostgres(pool)
		log.Info("using postgres form store")
	} else {
		log.Warn("DATABASE_URL not set, using in-memory form store")
	}

	var countCache forms.CountCache
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		countCache = forms.NewRedisCountCache(redisClient, 30*time.Second)
		log.Info("using redis count cache")
	}

	// Audit trail: channel worker plus optional Kafka fan-out.
	auditStore := audit.NewInMemoryStore()
	var auditSink audit.Sink = audit.NopSink{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer kafkaSink.Close()
		auditSink = kafkaSink
		log.Info("publishing audit events to kafka", "topic", cfg.KafkaTopic)
	}
	auditInbox := make(chan audit.Event, 256)
	auditor := audit.NewService(auditInbox, log)
	go func() {
		worker := audit.NewWorker(auditStore, auditSink, auditInbox, log)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err.Error())
		}
	}()

	formService := forms.NewService(formStore, countCache, m, auditor)
	formHandler := forms.New(formService, log, m, auditor, tokens)

	profileService := profile.NewService(profile.NewInMemoryStore(), tokens, cfg.AdminPasswordHash, auditor)
	profileHandler := profile.NewHandler(profileService, log, tokens)

	addressService := suggest.NewAddressService(
		suggest.NewMapyClient(cfg.Suggest),
		suggest.NewNominatimClient(cfg.Suggest),
		m, log)
	suggestHandler := suggest.NewHandler(addressService, log)

	router := chi.NewRouter()
	formHandler.Register(router)
	profileHandler.Register(router)
	suggestHandler.Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting dotaznik", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
