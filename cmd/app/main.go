package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"quran-daily-bot/internal/application"
	"quran-daily-bot/internal/config"
	pg "quran-daily-bot/internal/infra/db/postgres"
	httpapi "quran-daily-bot/internal/infra/http"
	"quran-daily-bot/internal/infra/logging"
	"quran-daily-bot/internal/infra/quran"
	red "quran-daily-bot/internal/infra/redis"
	"quran-daily-bot/internal/infra/sched"
	tele "quran-daily-bot/internal/infra/telegram"
	"quran-daily-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "development mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema")
	}

	// ---- Redis content cache (optional) ----
	var cache quran.Cache
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		cache = red.NewContentCache(redisClient, cfg.Redis.TTL)
	} else {
		logger.Info().Msg("redis.url not set; content cache disabled")
	}

	// ---- Repositories ----
	prefRepo := pg.NewPreferenceRepo(pool)
	ledgerRepo := pg.NewDeliveryLogRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Content provider ----
	provider := quran.NewClient(cfg.Quran.BaseURL, cfg.Quran.Timeout, cache, logger)

	// ---- Use cases ----
	prefUC := usecase.NewPreferenceUseCase(prefRepo, txManager, logger)
	contentUC := usecase.NewContentUseCase(provider, logger)

	// ---- Facade + Telegram ----
	facade := application.NewBotFacade(prefUC, contentUC, logger)
	botAdapter, err := tele.NewRealBotAdapter(&cfg.Bot, facade, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Daily fan-out ----
	deliveryUC := usecase.NewDeliveryUseCase(prefUC, contentUC, ledgerRepo, botAdapter, cfg.Scheduler.FanoutWorkers, logger)
	dailyWorker := sched.NewDailyWorker(cfg.Scheduler.DailyCron, deliveryUC, logger)
	go func() { _ = dailyWorker.Run(ctx) }()

	// ---- Health + metrics server ----
	srv := httpapi.NewServer(cfg.Admin.Port, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	_ = srv.Shutdown(context.Background())
}
