package handlers

import (
	"context"
	"fmt"
	"strings"

	"jobtracker-bot/internal/bot/utils"
	"jobtracker-bot/internal/jobs"
	"jobtracker-bot/internal/models"
	"jobtracker-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// User states for conversation flow
const (
	StateIdle                   = ""
	StateAwaitingSearch         = "awaiting_search"
	StateAwaitingStatusFilter   = "awaiting_status_filter"
	StateAwaitingLocationFilter = "awaiting_location_filter"
)

// maxCardsPerRender caps how many application cards one render sends.
const maxCardsPerRender = 5

// /jobs command
func HandleJobs(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		if err := clearUserState(ctx, userID); err != nil {
			ctx.Logger.Warn("failed to clear user state", zap.Error(err))
		}

		return renderJobList(ctx, c)
	}
}

func renderJobList(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	all, err := fetchJobs(ctx)
	if err != nil {
		ctx.Logger.Error("failed to fetch jobs",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Send(
			utils.FormatFetchErrorMessage(),
			utils.InlineRetryKeyboard("jobs"),
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

	filter := loadFilter(ctx, userID)
	matched := jobs.SortByRecency(filter.Apply(all))

	header := utils.FormatJobListHeader(len(matched), len(all), filter)
	if err := c.Send(header, utils.FiltersMenuKeyboard(), tele.ModeMarkdownV2); err != nil {
		return err
	}

	if len(matched) == 0 {
		return c.Send("🤷 Nothing matches the current filters\\.", tele.ModeMarkdownV2)
	}

	shown := matched
	if len(shown) > maxCardsPerRender {
		shown = shown[:maxCardsPerRender]
	}

	for i := range shown {
		job := shown[i]
		if err := c.Send(
			utils.FormatJobCard(&job),
			utils.InlineJobKeyboard(job.ID, job.JobLink),
			tele.ModeMarkdownV2,
		); err != nil {
			ctx.Logger.Warn("failed to send job card",
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
		}
	}

	if len(matched) > maxCardsPerRender {
		return c.Send(fmt.Sprintf(
			"Showing %d of %d\\. Narrow the list with filters\\.",
			maxCardsPerRender, len(matched),
		), tele.ModeMarkdownV2)
	}

	return nil
}

// HandleText processes all text messages
func HandleText(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		text := strings.TrimSpace(c.Text())
		userID := c.Sender().ID

		state, err := getUserState(ctx, userID)
		if err != nil && err != redis.ErrNotFound {
			ctx.Logger.Warn("failed to get user state", zap.Error(err))
			state = StateIdle
		}

		if state != StateIdle {
			return handleStateInput(ctx, c, state)
		}

		switch text {
		// Main menu
		case "📋 Applications":
			return HandleJobs(ctx)(c)
		case "➕ Add application":
			return HandleAddJob(ctx)(c)
		case "🗓 Interviews":
			return HandleInterviews(ctx)(c)
		case "📊 Dashboard":
			return HandleDashboard(ctx)(c)
		case "📈 Analytics":
			return HandleAnalytics(ctx)(c)
		case "❓ Help":
			return HandleHelp(ctx)(c)

		// Filters menu
		case "🔍 Search text":
			return startSearchFilter(ctx, c)
		case "🏷 Status":
			return startStatusFilter(ctx, c)
		case "📍 Location":
			return startLocationFilter(ctx, c)
		case "🗑 Clear filters":
			return clearFilters(ctx, c)
		case "◀️ Back":
			return c.Send("Main menu", utils.MainMenuKeyboard())

		// Cancel
		case "❌ Cancel":
			return cancelConversation(ctx, c)

		default:
			return c.Reply("Use the menu buttons or commands")
		}
	}
}

func handleStateInput(ctx *Context, c tele.Context, state string) error {
	switch state {
	case StateAwaitingSearch:
		return handleSearchFilterInput(ctx, c)
	case StateAwaitingStatusFilter:
		return handleStatusFilterInput(ctx, c)
	case StateAwaitingLocationFilter:
		return handleLocationFilterInput(ctx, c)
	default:
		if strings.HasPrefix(state, jobFormStatePrefix) {
			return handleJobFormInput(ctx, c, state)
		}
		if strings.HasPrefix(state, interviewFormStatePrefix) {
			return handleInterviewFormInput(ctx, c, state)
		}

		_ = clearUserState(ctx, c.Sender().ID)
		return c.Reply("Use the menu buttons or commands")
	}
}

// ==================== Search Filter ====================

func startSearchFilter(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	if err := setUserState(ctx, userID, StateAwaitingSearch); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}

	return c.Send(
		"🔍 Enter text to search job title, company or location:",
		utils.CancelKeyboard(),
	)
}

func handleSearchFilterInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	userID := c.Sender().ID

	if text == "" || text == "❌ Cancel" {
		return cancelConversation(ctx, c)
	}

	filter := loadFilter(ctx, userID)
	filter.Search = text
	saveFilter(ctx, userID, filter)

	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	return renderJobList(ctx, c)
}

// ==================== Status Filter ====================

func startStatusFilter(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	if err := setUserState(ctx, userID, StateAwaitingStatusFilter); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}

	return c.Send(
		"🏷 Pick a status to filter by:",
		utils.StatusKeyboard(true),
	)
}

func handleStatusFilterInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	userID := c.Sender().ID

	if text == "" || text == "❌ Cancel" {
		return cancelConversation(ctx, c)
	}

	filter := loadFilter(ctx, userID)

	if text == "📋 All" {
		filter.Status = jobs.FilterAll
	} else {
		status, ok := statusFromButton(text)
		if !ok {
			return c.Send("Pick one of the options below", utils.StatusKeyboard(true))
		}
		filter.Status = string(status)
	}

	saveFilter(ctx, userID, filter)

	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	return renderJobList(ctx, c)
}

// statusFromButton matches keyboard labels like "🔵 Applied" or plain text.
func statusFromButton(text string) (models.Status, bool) {
	for _, def := range models.StatusDefinitions {
		if text == def.Badge+" "+def.Label || strings.EqualFold(text, def.Label) {
			return def.Key, true
		}
	}
	return "", false
}

// ==================== Location Filter ====================

func startLocationFilter(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	all, err := fetchJobs(ctx)
	if err != nil {
		ctx.Logger.Error("failed to fetch jobs for locations", zap.Error(err))
		return c.Send(utils.FormatFetchErrorMessage(), tele.ModeMarkdownV2)
	}

	locations := jobs.DistinctLocations(all)
	if len(locations) == 0 {
		return c.Send("ℹ️ No locations recorded yet")
	}

	if err := setUserState(ctx, userID, StateAwaitingLocationFilter); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}

	return c.Send(
		"📍 Pick a location to filter by:",
		utils.LocationKeyboard(locations),
	)
}

func handleLocationFilterInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	userID := c.Sender().ID

	if text == "" || text == "❌ Cancel" {
		return cancelConversation(ctx, c)
	}

	filter := loadFilter(ctx, userID)
	if text == "📋 All" {
		filter.Location = jobs.FilterAll
	} else {
		filter.Location = text
	}
	saveFilter(ctx, userID, filter)

	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	return renderJobList(ctx, c)
}

// ==================== Clear & Persistence ====================

func clearFilters(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	if err := ctx.Cache.DeleteFilter(context.Background(), userID); err != nil {
		ctx.Logger.Warn("failed to delete filter", zap.Error(err))
	}

	return renderJobList(ctx, c)
}

func loadFilter(ctx *Context, userID int64) jobs.Filter {
	var filter jobs.Filter
	err := ctx.Cache.GetFilter(context.Background(), userID, &filter)
	if err != nil && err != redis.ErrNotFound {
		ctx.Logger.Warn("failed to load filter",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
	return filter
}

func saveFilter(ctx *Context, userID int64, filter jobs.Filter) {
	if err := ctx.Cache.SetFilter(context.Background(), userID, filter); err != nil {
		ctx.Logger.Warn("failed to save filter",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

func cancelConversation(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	return c.Send(
		"❌ Cancelled",
		utils.MainMenuKeyboard(),
	)
}
