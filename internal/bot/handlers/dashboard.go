package handlers

import (
	"time"

	"jobtracker-bot/internal/bot/utils"
	"jobtracker-bot/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /dashboard command
func HandleDashboard(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		all, err := fetchJobs(ctx)
		if err != nil {
			ctx.Logger.Error("failed to fetch jobs for dashboard",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return c.Send(
				utils.FormatFetchErrorMessage(),
				utils.InlineRetryKeyboard("dashboard"),
				tele.ModeMarkdownV2,
			)
		}

		if len(all) == 0 {
			return c.Send(
				utils.FormatNoJobsMessage(),
				utils.MainMenuKeyboard(),
				tele.ModeMarkdownV2,
			)
		}

		dbCtx, cancel := dbContext()
		defer cancel()

		var upcoming []models.Interview
		interviews, err := ctx.Store.GetUserInterviews(dbCtx, userID)
		if err != nil {
			// the dashboard still renders without the interview section
			ctx.Logger.Warn("failed to get interviews for dashboard",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		} else {
			now := time.Now()
			for _, iv := range interviews {
				if iv.ScheduledAt.After(now) {
					upcoming = append(upcoming, iv)
				}
				if len(upcoming) == 3 {
					break
				}
			}
		}

		return c.Send(
			utils.FormatDashboard(all, upcoming),
			utils.MainMenuKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}
