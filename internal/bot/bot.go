package bot

import (
	"context"
	"fmt"
	"time"

	"jobtracker-bot/internal/api/jobtracker"
	"jobtracker-bot/internal/bot/handlers"
	"jobtracker-bot/internal/bot/middleware"
	"jobtracker-bot/internal/config"
	"jobtracker-bot/internal/storage/postgres"
	"jobtracker-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot represents Telegram bot
type Bot struct {
	bot    *tele.Bot
	store  *postgres.Store
	cache  *redis.Cache
	api    *jobtracker.Client
	config *config.Config
	logger *zap.Logger
}

func New(
	cfg *config.Config,
	store *postgres.Store,
	cache *redis.Cache,
	api *jobtracker.Client,
	logger *zap.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		store:  store,
		cache:  cache,
		api:    api,
		config: cfg,
		logger: logger,
	}

	bot.setupMiddleware()

	bot.registerHandlers()

	logger.Info("bot initialized successfully")

	return bot, nil
}

func (b *Bot) setupMiddleware() {
	b.bot.Use(middleware.Recovery(b.logger))

	b.bot.Use(middleware.Logger(b.logger))

	b.bot.Use(middleware.RateLimit(b.cache, b.logger))
}

func (b *Bot) registerHandlers() {
	ctx := &handlers.Context{
		Store:  b.store,
		Cache:  b.cache,
		API:    b.api,
		Config: b.config,
		Logger: b.logger,
	}

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/jobs", handlers.HandleJobs(ctx))
	b.bot.Handle("/addjob", handlers.HandleAddJob(ctx))
	b.bot.Handle("/interviews", handlers.HandleInterviews(ctx))
	b.bot.Handle("/dashboard", handlers.HandleDashboard(ctx))
	b.bot.Handle("/analytics", handlers.HandleAnalytics(ctx))

	b.bot.Handle(tele.OnText, handlers.HandleText(ctx))

	b.bot.Handle(tele.OnCallback, handlers.HandleCallback(ctx))

	b.logger.Info("handlers registered")
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}

func (b *Bot) Stop() {
	b.logger.Info("bot stopped")
	b.bot.Stop()
}

func (b *Bot) GetBot() *tele.Bot {
	return b.bot
}
