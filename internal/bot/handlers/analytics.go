package handlers

import (
	"jobtracker-bot/internal/bot/utils"
	"jobtracker-bot/internal/jobs"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	weeklyTrendWeeks = 4
	topEntriesLimit  = 5
)

// /analytics command. Everything derives from one snapshot so the numbers
// in every section agree with each other.
func HandleAnalytics(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		all, err := fetchJobs(ctx)
		if err != nil {
			ctx.Logger.Error("failed to fetch jobs for analytics",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return c.Send(
				utils.FormatFetchErrorMessage(),
				utils.InlineRetryKeyboard("analytics"),
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

		if err := c.Send(
			utils.FormatOverallStats(jobs.Overall(all)),
			utils.MainMenuKeyboard(),
			tele.ModeMarkdownV2,
		); err != nil {
			return err
		}

		trends := utils.FormatMonthlyBuckets(jobs.MonthlyBuckets(all)) +
			"\n" +
			utils.FormatWeeklyTrend(jobs.WeeklyTrend(all, weeklyTrendWeeks))
		if err := c.Send(trends, tele.ModeMarkdownV2); err != nil {
			return err
		}

		breakdown := utils.FormatResponseDistribution(jobs.ResponseTimeDistribution(all)) +
			"\n" +
			utils.FormatTopCompanies(jobs.TopCompanies(all, topEntriesLimit)) +
			"\n" +
			utils.FormatTopPositions(jobs.TopPositions(all, topEntriesLimit))

		return c.Send(breakdown, tele.ModeMarkdownV2)
	}
}
