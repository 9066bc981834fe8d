package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	"github.com/BruksfildServices01/clinic-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-booking/internal/db"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/clinic-booking/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-booking/internal/logger"
	"github.com/BruksfildServices01/clinic-booking/internal/middleware"
	"github.com/BruksfildServices01/clinic-booking/internal/routes"
)

func main() {

	cfg := config.Load()

	log, err := logger.New(cfg)
	if err != nil {
		stdlog.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var sink audit.Sink = audit.NewLogSink(log)
	if cfg.DBUrl != "" {
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			log.Fatal("failed to open audit database", zap.Error(err))
		}
		sink = audit.New(db)
		log.Info("audit trail stored in database")
	}
	auditDispatcher := audit.NewDispatcher(sink, log)

	roster := domain.DefaultRoster()
	if len(cfg.DoctorRoster) > 0 {
		roster = domain.NewRoster(cfg.DoctorRoster...)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Repo:        infraRepo.NewAppointmentMemoryRepository(),
		Roster:      roster,
		Audit:       auditDispatcher,
		Limiter:     limiter,
		Logger:      log,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.Strings("doctors", roster.Names()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	limiter.Close()
	auditDispatcher.Close()
}
