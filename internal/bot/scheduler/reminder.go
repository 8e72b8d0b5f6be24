package scheduler

import (
	"context"
	"time"

	"jobtracker-bot/internal/bot/utils"
	"jobtracker-bot/internal/config"
	"jobtracker-bot/internal/storage/postgres"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Reminder periodically looks for interviews starting within the reminder
// window and notifies their owners. Each interview is reminded once.
type Reminder struct {
	bot    *tele.Bot
	store  *postgres.Store
	config *config.Config
	logger *zap.Logger
}

func New(
	bot *tele.Bot,
	store *postgres.Store,
	cfg *config.Config,
	logger *zap.Logger,
) *Reminder {
	return &Reminder{
		bot:    bot,
		store:  store,
		config: cfg,
		logger: logger,
	}
}

func (r *Reminder) Start(ctx context.Context) {
	ticker := time.NewTicker(r.config.ReminderInterval)
	defer ticker.Stop()

	r.logger.Info("interview reminder started",
		zap.Duration("interval", r.config.ReminderInterval),
		zap.Duration("window", r.config.ReminderWindow),
	)

	r.sendDueReminders(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("interview reminder stopped")
			return
		case <-ticker.C:
			r.sendDueReminders(ctx)
		}
	}
}

func (r *Reminder) sendDueReminders(ctx context.Context) {
	dbCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	due, err := r.store.GetDueReminders(dbCtx, r.config.ReminderWindow)
	if err != nil {
		r.logger.Error("failed to get due reminders", zap.Error(err))
		return
	}

	if len(due) == 0 {
		r.logger.Debug("no reminders due")
		return
	}

	r.logger.Info("sending interview reminders", zap.Int("count", len(due)))

	for i := range due {
		iv := due[i]
		recipient := &tele.User{ID: iv.UserID}

		if _, err := r.bot.Send(recipient, utils.FormatInterviewReminder(&iv), tele.ModeMarkdownV2); err != nil {
			r.logger.Error("failed to send reminder",
				zap.Int64("user_id", iv.UserID),
				zap.Int64("interview_id", iv.ID),
				zap.Error(err),
			)
			continue
		}

		if err := r.store.MarkReminderSent(dbCtx, iv.ID); err != nil {
			r.logger.Error("failed to mark reminder sent",
				zap.Int64("interview_id", iv.ID),
				zap.Error(err),
			)
		}

		time.Sleep(500 * time.Millisecond)
	}
}
