package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jobtracker-bot/internal/bot/utils"
	"jobtracker-bot/internal/models"
	"jobtracker-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Interview form states, routed by prefix like the application form.
const (
	interviewFormStatePrefix = "iv_form_"

	StateInterviewFormDate        = "iv_form_date"
	StateInterviewFormType        = "iv_form_type"
	StateInterviewFormStage       = "iv_form_stage"
	StateInterviewFormVenue       = "iv_form_venue"
	StateInterviewFormInterviewer = "iv_form_interviewer"
	StateInterviewFormEmail       = "iv_form_email"
	StateInterviewFormDuration    = "iv_form_duration"
	StateInterviewFormNotes       = "iv_form_notes"
)

const interviewFormName = "interview"

const dateTimeInputLayout = "2006-01-02 15:04"

type interviewDraft struct {
	EditingID int64 `json:"editing_id,omitempty"`

	ApplicationID string `json:"application_id"`
	Company       string `json:"company"`
	Position      string `json:"position"`

	ScheduledAt      string `json:"scheduled_at"`
	Type             string `json:"type"`
	Stage            string `json:"stage"`
	Venue            string `json:"venue"`
	Interviewer      string `json:"interviewer"`
	InterviewerEmail string `json:"interviewer_email"`
	DurationMinutes  int    `json:"duration_minutes"`
	PreparationNotes string `json:"preparation_notes"`
}

// /interviews command
func HandleInterviews(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		if err := clearUserState(ctx, userID); err != nil {
			ctx.Logger.Warn("failed to clear user state", zap.Error(err))
		}

		dbCtx, cancel := dbContext()
		defer cancel()

		interviews, err := ctx.Store.GetUserInterviews(dbCtx, userID)
		if err != nil {
			ctx.Logger.Error("failed to get interviews", zap.Error(err))
			return c.Send("😔 Could not load your interviews. Please try again later.")
		}

		menu := &tele.ReplyMarkup{}
		btnNew := menu.Data("➕ Schedule interview", "iv_new")
		menu.Inline(menu.Row(btnNew))

		if len(interviews) == 0 {
			return c.Send(
				"🗓 *No interviews scheduled*\n\nSchedule one for an application in Interview status\\.",
				menu,
				tele.ModeMarkdownV2,
			)
		}

		if err := c.Send(
			fmt.Sprintf("🗓 *Your interviews:* %d", len(interviews)),
			menu,
			tele.ModeMarkdownV2,
		); err != nil {
			return err
		}

		for i := range interviews {
			iv := interviews[i]
			if err := c.Send(
				utils.FormatInterview(&iv),
				utils.InlineInterviewKeyboard(iv.ID),
				tele.ModeMarkdownV2,
			); err != nil {
				ctx.Logger.Warn("failed to send interview card",
					zap.Int64("interview_id", iv.ID),
					zap.Error(err),
				)
			}
		}

		return nil
	}
}

// startInterviewScheduling offers the applications an interview can be
// scheduled for: Interview status, no interview attached yet.
func startInterviewScheduling(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	all, err := fetchJobs(ctx)
	if err != nil {
		ctx.Logger.Error("failed to fetch jobs for scheduling", zap.Error(err))
		return c.Send(utils.FormatFetchErrorMessage(), tele.ModeMarkdownV2)
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	scheduled, err := ctx.Store.ScheduledApplicationIDs(dbCtx, userID)
	if err != nil {
		ctx.Logger.Error("failed to get scheduled ids", zap.Error(err))
		return c.Send("😔 Could not load your interviews. Please try again later.")
	}

	var available []models.Job
	for _, job := range all {
		if job.Status == models.StatusInterview && !scheduled[job.ID] {
			available = append(available, job)
		}
	}

	if len(available) == 0 {
		return c.Send(
			"ℹ️ *No applications to schedule for*\n\nMove an application to Interview status first, or it already has an interview\\.",
			tele.ModeMarkdownV2,
		)
	}

	return c.Send(
		"Pick the application to schedule an interview for:",
		utils.InlineApplicationPicker(available),
	)
}

// startInterviewForm begins the wizard for one application.
func startInterviewForm(ctx *Context, c tele.Context, jobID string) error {
	userID := c.Sender().ID

	all, err := fetchJobs(ctx)
	if err != nil {
		ctx.Logger.Error("failed to fetch jobs for interview form", zap.Error(err))
		return c.Send(utils.FormatFetchErrorMessage(), tele.ModeMarkdownV2)
	}

	var draft *interviewDraft
	for _, job := range all {
		if job.ID == jobID {
			draft = &interviewDraft{
				ApplicationID: job.ID,
				Company:       job.Company,
				Position:      job.JobTitle,
			}
			break
		}
	}

	if draft == nil {
		return c.Send("🤷 This application no longer exists\\.", tele.ModeMarkdownV2)
	}

	saveInterviewDraft(ctx, userID, draft)

	if err := setUserState(ctx, userID, StateInterviewFormDate); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}

	return c.Send(
		fmt.Sprintf("🗓 *Scheduling for %s*\n\nWhen is the interview? Send date and time as YYYY\\-MM\\-DD HH:MM\\.",
			utils.EscapeMarkdown(draft.Company)),
		utils.CancelKeyboard(),
		tele.ModeMarkdownV2,
	)
}

// startInterviewEdit reopens the wizard prefilled from a stored interview.
func startInterviewEdit(ctx *Context, c tele.Context, interviewID int64) error {
	userID := c.Sender().ID

	dbCtx, cancel := dbContext()
	defer cancel()

	iv, err := ctx.Store.GetInterview(dbCtx, userID, interviewID)
	if err != nil {
		ctx.Logger.Error("failed to get interview", zap.Error(err))
		return c.Send("😔 Could not load the interview. Please try again later.")
	}
	if iv == nil {
		return c.Send("🤷 This interview no longer exists\\.", tele.ModeMarkdownV2)
	}

	draft := &interviewDraft{
		EditingID:        iv.ID,
		ApplicationID:    iv.ApplicationID,
		Company:          iv.Company,
		Position:         iv.Position,
		ScheduledAt:      iv.ScheduledAt.Format(dateTimeInputLayout),
		Type:             iv.Type,
		Stage:            iv.Stage,
		Venue:            iv.Venue,
		Interviewer:      iv.Interviewer,
		InterviewerEmail: iv.InterviewerEmail,
		DurationMinutes:  iv.DurationMinutes,
		PreparationNotes: iv.PreparationNotes,
	}
	saveInterviewDraft(ctx, userID, draft)

	if err := setUserState(ctx, userID, StateInterviewFormDate); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}

	return c.Send(
		fmt.Sprintf("✏️ *Rescheduling %s*\n\nNew date and time as YYYY\\-MM\\-DD HH:MM, or skip to keep %s\\.",
			utils.EscapeMarkdown(draft.Company),
			utils.EscapeMarkdown(draft.ScheduledAt)),
		utils.SkipCancelKeyboard(),
		tele.ModeMarkdownV2,
	)
}

func handleInterviewFormInput(ctx *Context, c tele.Context, state string) error {
	text := strings.TrimSpace(c.Text())
	userID := c.Sender().ID

	if text == "❌ Cancel" {
		clearInterviewForm(ctx, userID)
		return c.Send("❌ Scheduling cancelled", utils.MainMenuKeyboard())
	}

	draft, err := loadInterviewDraft(ctx, userID)
	if err != nil {
		_ = clearUserState(ctx, userID)
		return c.Send("⏳ The form expired. Start over with /interviews", utils.MainMenuKeyboard())
	}

	skip := text == "⏭ Skip"

	switch state {
	case StateInterviewFormDate:
		if !skip {
			t, err := time.ParseInLocation(dateTimeInputLayout, text, time.Local)
			if err != nil {
				return c.Send(
					"❌ I could not read that. Use YYYY-MM-DD HH:MM, for example 2026-09-03 14:30.",
					utils.CancelKeyboard(),
				)
			}
			draft.ScheduledAt = t.Format(dateTimeInputLayout)
		}
		if draft.ScheduledAt == "" {
			return c.Send("❌ Date and time are required. Use YYYY-MM-DD HH:MM.", utils.CancelKeyboard())
		}
		saveInterviewDraft(ctx, userID, draft)
		_ = setUserState(ctx, userID, StateInterviewFormType)
		return c.Send("What kind of interview is it?", utils.InterviewTypeKeyboard())

	case StateInterviewFormType:
		if !skip {
			if !models.IsValidInterviewType(text) {
				return c.Send("Pick one of the options below", utils.InterviewTypeKeyboard())
			}
			draft.Type = text
		}
		if draft.Type == "" {
			return c.Send("Pick one of the options below", utils.InterviewTypeKeyboard())
		}
		saveInterviewDraft(ctx, userID, draft)
		_ = setUserState(ctx, userID, StateInterviewFormStage)
		return c.Send("Which stage?", utils.InterviewStageKeyboard())

	case StateInterviewFormStage:
		if !skip {
			if !models.IsValidInterviewStage(text) {
				return c.Send("Pick one of the options below, or skip", utils.InterviewStageKeyboard())
			}
			draft.Stage = text
		}
		saveInterviewDraft(ctx, userID, draft)
		_ = setUserState(ctx, userID, StateInterviewFormVenue)
		return c.Send("Where does it take place? Office address or meeting link.", utils.SkipCancelKeyboard())

	case StateInterviewFormVenue:
		if !skip {
			draft.Venue = text
		}
		saveInterviewDraft(ctx, userID, draft)
		_ = setUserState(ctx, userID, StateInterviewFormInterviewer)
		return c.Send("Who is the interviewer?", utils.SkipCancelKeyboard())

	case StateInterviewFormInterviewer:
		if !skip {
			draft.Interviewer = text
		}
		saveInterviewDraft(ctx, userID, draft)
		_ = setUserState(ctx, userID, StateInterviewFormEmail)
		return c.Send("Interviewer's email, for your records?", utils.SkipCancelKeyboard())

	case StateInterviewFormEmail:
		if !skip {
			if !strings.Contains(text, "@") {
				return c.Send("❌ That does not look like an email. Send one or skip.", utils.SkipCancelKeyboard())
			}
			draft.InterviewerEmail = text
		}
		saveInterviewDraft(ctx, userID, draft)
		_ = setUserState(ctx, userID, StateInterviewFormDuration)
		return c.Send("How long, in minutes?", utils.SkipCancelKeyboard())

	case StateInterviewFormDuration:
		if !skip {
			minutes, err := strconv.Atoi(text)
			if err != nil || minutes <= 0 {
				return c.Send("❌ Send a number of minutes, for example 60.", utils.SkipCancelKeyboard())
			}
			draft.DurationMinutes = minutes
		}
		saveInterviewDraft(ctx, userID, draft)
		_ = setUserState(ctx, userID, StateInterviewFormNotes)
		return c.Send("Anything to prepare?", utils.SkipCancelKeyboard())

	case StateInterviewFormNotes:
		if !skip {
			draft.PreparationNotes = text
		}
		return submitInterviewForm(ctx, c, draft)

	default:
		_ = clearUserState(ctx, userID)
		return c.Reply("Use the menu buttons or commands")
	}
}

func submitInterviewForm(ctx *Context, c tele.Context, draft *interviewDraft) error {
	userID := c.Sender().ID

	scheduledAt, err := time.ParseInLocation(dateTimeInputLayout, draft.ScheduledAt, time.Local)
	if err != nil {
		clearInterviewForm(ctx, userID)
		return c.Send("😔 The form got corrupted. Start over with /interviews", utils.MainMenuKeyboard())
	}

	interview := &models.Interview{
		ID:               draft.EditingID,
		UserID:           userID,
		ApplicationID:    draft.ApplicationID,
		Company:          draft.Company,
		Position:         draft.Position,
		ScheduledAt:      scheduledAt,
		Type:             draft.Type,
		Stage:            draft.Stage,
		Venue:            draft.Venue,
		Interviewer:      draft.Interviewer,
		InterviewerEmail: draft.InterviewerEmail,
		DurationMinutes:  draft.DurationMinutes,
		PreparationNotes: draft.PreparationNotes,
	}

	if err := interview.Validate(); err != nil {
		return c.Send(
			fmt.Sprintf("❌ %s", utils.EscapeMarkdown(err.Error())),
			utils.CancelKeyboard(),
			tele.ModeMarkdownV2,
		)
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	if draft.EditingID != 0 {
		err = ctx.Store.UpdateInterview(dbCtx, interview)
	} else {
		err = ctx.Store.CreateInterview(dbCtx, interview)
	}
	if err != nil {
		ctx.Logger.Error("failed to save interview",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Send("😔 Could not save the interview. Please try again later.", utils.MainMenuKeyboard())
	}

	clearInterviewForm(ctx, userID)

	confirmation := "✅ Interview scheduled\\!"
	if draft.EditingID != 0 {
		confirmation = "✅ Interview updated\\!"
	}
	if err := c.Send(confirmation, utils.MainMenuKeyboard(), tele.ModeMarkdownV2); err != nil {
		return err
	}

	return c.Send(
		utils.FormatInterview(interview),
		utils.InlineInterviewKeyboard(interview.ID),
		tele.ModeMarkdownV2,
	)
}

func clearInterviewForm(ctx *Context, userID int64) {
	_ = clearUserState(ctx, userID)
	_ = ctx.Cache.DeleteFormDraft(context.Background(), userID, interviewFormName)
}

func saveInterviewDraft(ctx *Context, userID int64, draft *interviewDraft) {
	if err := ctx.Cache.SetFormDraft(context.Background(), userID, interviewFormName, draft); err != nil {
		ctx.Logger.Warn("failed to save interview draft",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

func loadInterviewDraft(ctx *Context, userID int64) (*interviewDraft, error) {
	var draft interviewDraft
	if err := ctx.Cache.GetFormDraft(context.Background(), userID, interviewFormName, &draft); err != nil {
		if err != redis.ErrNotFound {
			ctx.Logger.Warn("failed to load interview draft",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
		return nil, err
	}
	return &draft, nil
}
