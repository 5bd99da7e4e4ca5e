// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crease/internal/admin"
	"crease/internal/admin/session"
	"crease/internal/admission"
	"crease/internal/moderation"
	"crease/internal/platform/config"
	"crease/internal/platform/database"
	"crease/internal/platform/health"
	"crease/internal/platform/logger"
	platformredis "crease/internal/platform/redis"
	"crease/internal/proofs/imagekit"
	registrationhandler "crease/internal/registration/handler"
	"crease/internal/registration/metrics"
	regservice "crease/internal/registration/service"
	"crease/internal/registration/store"
	httptransport "crease/internal/transport/http"
	"crease/migrations"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing crease",
		"addr", cfg.Addr,
		"daily_cap", cfg.Admission.DailyCap,
		"timezone", cfg.Admission.Timezone,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthHandler := health.New()

	// Registration storage: postgres when DATABASE_URL is set, otherwise an
	// in-memory store for local development.
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	var regStore store.Store
	if pool != nil {
		defer pool.Close() //nolint:errcheck
		if err := database.Migrate(ctx, pool.DB(), migrations.FS); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		regStore = store.NewPostgres(pool.DB())
		healthHandler.RegisterCheck("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(pingCtx)
		})
		log.Info("using postgres registration store")
	} else {
		regStore = store.NewInMemory()
		log.Warn("DATABASE_URL not set, registrations are not persisted")
	}

	// Admin sessions: redis when REDIS_ADDR is set, otherwise in-memory.
	redisClient, err := platformredis.New(ctx, platformredis.Config{Addr: cfg.RedisAddr})
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	var sessionStore session.Store
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
		sessionStore = session.NewRedis(redisClient)
		healthHandler.RegisterCheck("redis", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(pingCtx).Err()
		})
		go platformredis.CollectPoolStats(ctx, redisClient, 15*time.Second)
		log.Info("using redis session store")
	} else {
		sessionStore = session.NewMemory()
		log.Warn("REDIS_ADDR not set, admin sessions are lost on restart")
	}

	policy, err := admission.New(regStore, cfg.Admission)
	if err != nil {
		log.Error("admission policy init failed", "error", err)
		os.Exit(1)
	}

	uploader := imagekit.New(cfg.ImageKit)

	regService, err := regservice.New(regStore, uploader,
		regservice.WithLogger(log),
		regservice.WithMetrics(metrics.New()),
		regservice.WithInsertTimeout(cfg.InsertTimeout),
		regservice.WithNotify(cfg.Notify),
	)
	if err != nil {
		log.Error("registration service init failed", "error", err)
		os.Exit(1)
	}

	modService, err := moderation.New(regStore, moderation.WithLogger(log))
	if err != nil {
		log.Error("moderation service init failed", "error", err)
		os.Exit(1)
	}

	authService, err := admin.New(sessionStore,
		cfg.Admin.Username, cfg.Admin.PasswordBcrypt, cfg.Admin.JWTSigningKey,
		admin.WithLogger(log),
	)
	if err != nil {
		log.Error("admin auth init failed", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.Handlers{
		Registration: registrationhandler.New(regService, policy, uploader, log),
		Moderation:   moderation.NewHandler(modService, log),
		AdminAuth:    admin.NewHandler(authService, log),
		AdminAuthSvc: authService,
		Health:       healthHandler,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
