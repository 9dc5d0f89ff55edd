package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/closurelabs/traininglog/internal/api"
	"github.com/closurelabs/traininglog/internal/auth"
	"github.com/closurelabs/traininglog/internal/config"
	"github.com/closurelabs/traininglog/internal/db"
	"github.com/closurelabs/traininglog/internal/jobs"
	"github.com/closurelabs/traininglog/internal/logging"
	"github.com/closurelabs/traininglog/internal/observability"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "traininglog")
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Sugar.Fatalw("db open failed", "err", err)
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		lg.Sugar.Fatalw("migrate failed", "err", err)
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			lg.Sugar.Fatalw("hash admin password", "err", err)
		}
		seeded, err := db.SeedAdmin(ctx, database, cfg.AdminEmail, hash)
		if err != nil {
			lg.Sugar.Fatalw("seed admin", "err", err)
		}
		if seeded {
			lg.Sugar.Infow("seeded bootstrap admin", "email", cfg.AdminEmail)
		}
	}

	runner := jobs.New(ctx, lg.Sugar)
	runner.Every(time.Minute, "refresh_stats", jobs.RefreshStats(database))

	srv := api.New(cfg, database, lg.Base)
	go func() {
		lg.Sugar.Infow("listening", "addr", cfg.HTTPAddr)
		if err := srv.Start(cfg.HTTPAddr); err != nil {
			lg.Sugar.Infow("server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		lg.Base.Warn("shutdown", zap.Error(err))
	}
}
