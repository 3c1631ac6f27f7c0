package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"gymdesk/internal/config"
	"gymdesk/internal/domain/attendance"
	"gymdesk/internal/domain/billing"
	"gymdesk/internal/domain/members"
	"gymdesk/internal/domain/plans"
	"gymdesk/internal/export"
	"gymdesk/internal/infra/db"
	httpx "gymdesk/internal/infra/http"
	"gymdesk/internal/infra/logger"
	"gymdesk/internal/infra/metrics"
	"gymdesk/migrations"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	goose.SetBaseFS(migrations.FS)
	return goose.Up(sqlDB, ".")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	cat := plans.DefaultCatalog()
	met := metrics.New(prometheus.DefaultRegisterer)

	memberRepo := members.NewRepo(pool, cat)
	attendanceRepo := attendance.NewRepo(pool, met)
	engine := billing.NewService(pool, cat, met)

	// startup snapshot for the ops log
	if roster, err := memberRepo.List(ctx, members.Filter{}); err == nil {
		log.Info("roster loaded", "members", len(roster))
	}
	if n, err := attendanceRepo.CountOn(ctx, time.Now()); err == nil {
		log.Info("attendance today", "count", n)
	}
	if expiring, err := memberRepo.ListExpiring(ctx, time.Now(), export.ExpiringSoonDays); err == nil {
		var due int64
		for i := range expiring {
			due += engine.RemainingDue(&expiring[i])
		}
		log.Info("expiring soon", "members", len(expiring), "due", plans.FormatAmount(due))
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
