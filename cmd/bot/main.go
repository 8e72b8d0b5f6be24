package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jobtracker-bot/internal/api/jobtracker"
	"jobtracker-bot/internal/bot"
	"jobtracker-bot/internal/bot/scheduler"
	"jobtracker-bot/internal/config"
	"jobtracker-bot/internal/logger"
	"jobtracker-bot/internal/storage/postgres"
	"jobtracker-bot/internal/storage/redis"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting job tracker bot",
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("reminder_interval", cfg.ReminderInterval),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	log.Info("PostgreSQL connected successfully")

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	log.Info("Redis connected successfully")

	apiClient := jobtracker.New(cfg.BackendBaseURL, cfg.BackendTimeout, log)
	log.Info("tracker API client created", zap.String("base_url", cfg.BackendBaseURL))

	log.Info("initializing Telegram bot...")
	tgBot, err := bot.New(cfg, store, cache, apiClient, log)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}

	log.Info("Telegram bot initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	log.Info("starting interview reminder...")
	reminder := scheduler.New(
		tgBot.GetBot(),
		store,
		cfg,
		log,
	)

	go reminder.Start(ctx)

	log.Info("bot is running...")
	log.Info("press Ctrl+C to stop")

	if err := tgBot.Start(ctx); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
	}

	log.Info("shutting down gracefully...")

	log.Info("bot stopped")
}
