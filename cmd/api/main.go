package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartewaste/ewaste-backend/internal/api"
	"github.com/smartewaste/ewaste-backend/internal/auth"
	"github.com/smartewaste/ewaste-backend/internal/config"
	"github.com/smartewaste/ewaste-backend/internal/db"
	"github.com/smartewaste/ewaste-backend/internal/logger"
	"github.com/smartewaste/ewaste-backend/internal/metrics"
	"github.com/smartewaste/ewaste-backend/internal/report"
	"github.com/smartewaste/ewaste-backend/internal/repository/postgres"
	"github.com/smartewaste/ewaste-backend/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)

	userSvc := services.NewUserService(repos.Users, repos.Profiles, tm)
	requestSvc := services.NewRequestService(repos.Requests, repos.Users, repos.Profiles)
	statsSvc := services.NewStatsService(repos.Requests)
	reportSvc := services.NewReportService(repos.Requests, report.NewPDFRenderer())

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		TM:         tm,
		UserSvc:    userSvc,
		RequestSvc: requestSvc,
		StatsSvc:   statsSvc,
		ReportSvc:  reportSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
