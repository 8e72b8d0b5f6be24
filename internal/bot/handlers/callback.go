package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"jobtracker-bot/internal/api/jobtracker"
	"jobtracker-bot/internal/bot/utils"
	"jobtracker-bot/internal/jobs"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// HandleCallback processes all callback queries from inline buttons
func HandleCallback(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			ctx.Logger.Warn("callback is nil")
			return nil
		}

		ctx.Logger.Debug("received callback",
			zap.String("data", cb.Data),
			zap.Int64("user_id", c.Sender().ID),
		)

		data := cb.Data

		// Remove form feed character if present (telebot adds \f prefix)
		if len(data) > 0 && data[0] == '\f' {
			data = data[1:]
		}

		parts := strings.Split(data, "|")
		if len(parts) < 1 {
			ctx.Logger.Warn("invalid callback format", zap.String("data", data))
			return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
		}
		action := parts[0]

		switch action {
		case "job_status":
			return handleJobStatusMenu(ctx, c, parts)
		case "job_setstatus":
			return handleJobSetStatus(ctx, c, parts)
		case "job_edit":
			return handleJobEdit(ctx, c, parts)
		case "job_delete":
			return handleJobDeleteAsk(ctx, c, parts)
		case "job_delete_yes":
			return handleJobDeleteConfirm(ctx, c, parts)
		case "job_delete_no":
			return handleJobDeleteAbort(ctx, c, parts)
		case "retry":
			return handleRetry(ctx, c, parts)
		case "iv_new":
			_ = c.Respond(&tele.CallbackResponse{})
			return startInterviewScheduling(ctx, c)
		case "iv_pick":
			return handleInterviewPick(ctx, c, parts)
		case "iv_edit":
			return handleInterviewEdit(ctx, c, parts)
		case "iv_delete":
			return handleInterviewDelete(ctx, c, parts)
		default:
			ctx.Logger.Warn("unknown callback action",
				zap.String("action", action),
				zap.String("data", data),
			)
			return c.Respond(&tele.CallbackResponse{Text: "❓ Unknown action"})
		}
	}
}

// ==================== Status Change ====================

func handleJobStatusMenu(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}
	jobID := parts[1]

	if err := c.Edit(utils.InlineStatusKeyboard(jobID)); err != nil {
		ctx.Logger.Warn("failed to edit keyboard", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "Pick the new status"})
}

func handleJobSetStatus(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 3 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}
	jobID, status := parts[1], parts[2]

	reqCtx, cancel := context.WithTimeout(context.Background(), ctx.Config.BackendTimeout)
	defer cancel()

	// the displayed card only changes after the backend confirms
	record, err := ctx.API.UpdateJobStatus(reqCtx, jobID, status)
	if err != nil {
		if errors.Is(err, jobtracker.ErrNotFound) {
			_ = c.Edit("🤷 This application no longer exists\\.", tele.ModeMarkdownV2)
			return c.Respond(&tele.CallbackResponse{Text: "Not found"})
		}
		ctx.Logger.Error("failed to update status",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "😔 Update failed, status unchanged"})
	}

	editJobCard(ctx, c, record)

	return c.Respond(&tele.CallbackResponse{Text: "✅ Status updated"})
}

// ==================== Edit ====================

func handleJobEdit(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}

	_ = c.Respond(&tele.CallbackResponse{})
	return startJobEdit(ctx, c, parts[1])
}

// ==================== Delete ====================

func handleJobDeleteAsk(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}
	jobID := parts[1]

	if err := c.Edit(utils.InlineDeleteConfirmKeyboard(jobID)); err != nil {
		ctx.Logger.Warn("failed to edit keyboard", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "Delete this application?"})
}

func handleJobDeleteConfirm(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}
	jobID := parts[1]
	userID := c.Sender().ID

	reqCtx, cancel := context.WithTimeout(context.Background(), ctx.Config.BackendTimeout)
	defer cancel()

	if err := ctx.API.DeleteJob(reqCtx, jobID); err != nil && !errors.Is(err, jobtracker.ErrNotFound) {
		ctx.Logger.Error("failed to delete job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "😔 Delete failed"})
	}

	dbCtx, cancel2 := dbContext()
	defer cancel2()

	if err := ctx.Store.DeleteInterviewsForApplication(dbCtx, userID, jobID); err != nil {
		ctx.Logger.Warn("failed to delete attached interviews",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
	}

	if err := c.Edit("🗑 Application deleted\\.", tele.ModeMarkdownV2); err != nil {
		ctx.Logger.Warn("failed to edit message", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "✅ Deleted"})
}

func handleJobDeleteAbort(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}
	jobID := parts[1]

	all, err := fetchJobs(ctx)
	if err == nil {
		for i := range all {
			if all[i].ID == jobID {
				job := all[i]
				if editErr := c.Edit(
					utils.FormatJobCard(&job),
					utils.InlineJobKeyboard(job.ID, job.JobLink),
					tele.ModeMarkdownV2,
				); editErr != nil {
					ctx.Logger.Warn("failed to restore job card", zap.Error(editErr))
				}
				break
			}
		}
	}

	return c.Respond(&tele.CallbackResponse{Text: "Kept"})
}

// ==================== Retry ====================

func handleRetry(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}

	_ = c.Respond(&tele.CallbackResponse{Text: "🔄 Retrying..."})

	switch parts[1] {
	case "jobs":
		return renderJobList(ctx, c)
	case "dashboard":
		return HandleDashboard(ctx)(c)
	case "analytics":
		return HandleAnalytics(ctx)(c)
	default:
		return nil
	}
}

// ==================== Interviews ====================

func handleInterviewPick(ctx *Context, c tele.Context, parts []string) error {
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}

	_ = c.Respond(&tele.CallbackResponse{})
	return startInterviewForm(ctx, c, parts[1])
}

func handleInterviewEdit(ctx *Context, c tele.Context, parts []string) error {
	interviewID, ok := parseInterviewID(parts)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}

	_ = c.Respond(&tele.CallbackResponse{})
	return startInterviewEdit(ctx, c, interviewID)
}

func handleInterviewDelete(ctx *Context, c tele.Context, parts []string) error {
	interviewID, ok := parseInterviewID(parts)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid action"})
	}
	userID := c.Sender().ID

	dbCtx, cancel := dbContext()
	defer cancel()

	if err := ctx.Store.DeleteInterview(dbCtx, userID, interviewID); err != nil {
		ctx.Logger.Error("failed to delete interview",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "😔 Delete failed"})
	}

	if err := c.Edit("🗑 Interview cancelled\\.", tele.ModeMarkdownV2); err != nil {
		ctx.Logger.Warn("failed to edit message", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "✅ Cancelled"})
}

func parseInterviewID(parts []string) (int64, bool) {
	if len(parts) < 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ==================== Helpers ====================

// editJobCard re-renders a card in place from a fresh backend record.
func editJobCard(ctx *Context, c tele.Context, record *jobtracker.JobRecord) {
	normalized := jobs.Normalize([]jobtracker.JobRecord{*record})
	if len(normalized) != 1 {
		return
	}
	job := normalized[0]

	if err := c.Edit(
		utils.FormatJobCard(&job),
		utils.InlineJobKeyboard(job.ID, job.JobLink),
		tele.ModeMarkdownV2,
	); err != nil {
		ctx.Logger.Warn("failed to edit job card",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
	}
}
