package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobtracker-bot/internal/api/jobtracker"
	"jobtracker-bot/internal/bot/utils"
	"jobtracker-bot/internal/jobs"
	"jobtracker-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Application form states. The prefix routes any of them to
// handleJobFormInput from the shared text handler.
const (
	jobFormStatePrefix = "job_form_"

	StateJobFormTitle    = "job_form_title"
	StateJobFormCompany  = "job_form_company"
	StateJobFormPosition = "job_form_position"
	StateJobFormLocation = "job_form_location"
	StateJobFormDate     = "job_form_date"
	StateJobFormLink     = "job_form_link"
	StateJobFormNotes    = "job_form_notes"
)

const jobFormName = "job"

const dateInputLayout = "2006-01-02"

// jobDraft is the partially filled form, kept in redis between messages.
// EditingID is set when the form edits an existing record instead of
// creating one.
type jobDraft struct {
	EditingID string `json:"editing_id,omitempty"`
	Status    string `json:"status,omitempty"`

	JobTitle        string `json:"job_title"`
	Company         string `json:"company"`
	Position        string `json:"position"`
	Location        string `json:"location"`
	ApplicationDate string `json:"application_date"`
	JobLink         string `json:"job_link"`
	Notes           string `json:"notes"`
}

func (d *jobDraft) editing() bool {
	return d.EditingID != ""
}

// /addjob command
func HandleAddJob(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		draft := &jobDraft{}
		saveJobDraft(ctx, userID, draft)

		if err := setUserState(ctx, userID, StateJobFormTitle); err != nil {
			ctx.Logger.Error("failed to set user state", zap.Error(err))
		}

		return c.Send(
			"➕ *New application*\n\nWhat is the job title?",
			utils.CancelKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}

// startJobEdit prefills the form from an existing record.
func startJobEdit(ctx *Context, c tele.Context, jobID string) error {
	userID := c.Sender().ID

	all, err := fetchJobs(ctx)
	if err != nil {
		ctx.Logger.Error("failed to fetch jobs for edit", zap.Error(err))
		return c.Send(utils.FormatFetchErrorMessage(), tele.ModeMarkdownV2)
	}

	var draft *jobDraft
	for _, job := range all {
		if job.ID != jobID {
			continue
		}
		draft = &jobDraft{
			EditingID: job.ID,
			Status:    string(job.Status),
			JobTitle:  job.JobTitle,
			Company:   job.Company,
			Position:  job.Position,
			Location:  job.Location,
			JobLink:   job.JobLink,
			Notes:     job.Notes,
		}
		if !job.ApplicationDate.IsZero() {
			draft.ApplicationDate = job.ApplicationDate.Format(dateInputLayout)
		}
		break
	}

	if draft == nil {
		return c.Send("🤷 This application no longer exists\\.", tele.ModeMarkdownV2)
	}

	saveJobDraft(ctx, userID, draft)

	if err := setUserState(ctx, userID, StateJobFormTitle); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}

	return c.Send(
		fmt.Sprintf("✏️ *Editing application*\n\nJob title \\(current: %s\\)\\. Send a new one or skip\\.",
			utils.EscapeMarkdown(draft.JobTitle)),
		utils.SkipCancelKeyboard(),
		tele.ModeMarkdownV2,
	)
}

func handleJobFormInput(ctx *Context, c tele.Context, state string) error {
	text := strings.TrimSpace(c.Text())
	userID := c.Sender().ID

	if text == "❌ Cancel" {
		return cancelJobForm(ctx, c)
	}

	draft, err := loadJobDraft(ctx, userID)
	if err != nil {
		_ = clearUserState(ctx, userID)
		return c.Send("⏳ The form expired. Start over with /addjob", utils.MainMenuKeyboard())
	}

	skip := text == "⏭ Skip"

	switch state {
	case StateJobFormTitle:
		if !skip {
			draft.JobTitle = text
		}
		if draft.JobTitle == "" {
			return c.Send("❌ Job title is required. What is the job title?", utils.CancelKeyboard())
		}
		return advanceJobForm(ctx, c, draft, StateJobFormCompany,
			"Which company?", draft.Company)

	case StateJobFormCompany:
		if !skip {
			draft.Company = text
		}
		if draft.Company == "" {
			return c.Send("❌ Company is required. Which company?", utils.CancelKeyboard())
		}
		return advanceJobForm(ctx, c, draft, StateJobFormPosition,
			"Position, if different from the title?", draft.Position)

	case StateJobFormPosition:
		if !skip {
			draft.Position = text
		}
		return advanceJobForm(ctx, c, draft, StateJobFormLocation,
			"Where is the job located?", draft.Location)

	case StateJobFormLocation:
		if !skip {
			draft.Location = text
		}
		return advanceJobForm(ctx, c, draft, StateJobFormDate,
			"When did you apply? Send the date as YYYY-MM-DD or 'today'.", draft.ApplicationDate)

	case StateJobFormDate:
		if !skip {
			date, err := parseFormDate(text)
			if err != nil {
				return c.Send(
					"❌ I could not read that date. Use YYYY-MM-DD, for example 2026-08-15, or 'today'.",
					utils.CancelKeyboard(),
				)
			}
			draft.ApplicationDate = date
		}
		if draft.ApplicationDate == "" {
			return c.Send("❌ Application date is required. Use YYYY-MM-DD or 'today'.", utils.CancelKeyboard())
		}
		return advanceJobForm(ctx, c, draft, StateJobFormLink,
			"Link to the posting?", draft.JobLink)

	case StateJobFormLink:
		if !skip {
			draft.JobLink = text
		}
		return advanceJobForm(ctx, c, draft, StateJobFormNotes,
			"Any notes?", draft.Notes)

	case StateJobFormNotes:
		if !skip {
			draft.Notes = text
		}
		return submitJobForm(ctx, c, draft)

	default:
		_ = clearUserState(ctx, userID)
		return c.Reply("Use the menu buttons or commands")
	}
}

// advanceJobForm stores the draft and prompts for the next field. Optional
// fields and edit mode get a skip button, with the current value shown when
// one exists.
func advanceJobForm(ctx *Context, c tele.Context, draft *jobDraft, nextState, prompt, current string) error {
	userID := c.Sender().ID

	saveJobDraft(ctx, userID, draft)

	if err := setUserState(ctx, userID, nextState); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}

	required := nextState == StateJobFormCompany || nextState == StateJobFormDate

	msg := utils.EscapeMarkdown(prompt)
	if current != "" {
		msg += fmt.Sprintf("\n_Current: %s_", utils.EscapeMarkdown(current))
	}

	keyboard := utils.SkipCancelKeyboard()
	if required && current == "" {
		keyboard = utils.CancelKeyboard()
	}

	return c.Send(msg, keyboard, tele.ModeMarkdownV2)
}

func submitJobForm(ctx *Context, c tele.Context, draft *jobDraft) error {
	userID := c.Sender().ID

	status := draft.Status
	if status == "" {
		status = "Applied"
	}

	req := jobtracker.CreateJobRequest{
		JobTitle:        draft.JobTitle,
		Company:         draft.Company,
		Position:        draft.Position,
		Status:          status,
		ApplicationDate: draft.ApplicationDate,
		Notes:           draft.Notes,
		JobLink:         draft.JobLink,
		Location:        draft.Location,
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), ctx.Config.BackendTimeout)
	defer cancel()

	var (
		record *jobtracker.JobRecord
		err    error
	)
	if draft.editing() {
		record, err = ctx.API.UpdateJob(reqCtx, draft.EditingID, req)
	} else {
		record, err = ctx.API.CreateJob(reqCtx, req)
	}

	if err != nil {
		var vErr *jobtracker.ValidationError
		if errors.As(err, &vErr) {
			// the form stays open so the user can fix the fields
			return c.Send(
				formatValidationErrors(vErr),
				utils.CancelKeyboard(),
				tele.ModeMarkdownV2,
			)
		}

		ctx.Logger.Error("failed to submit application",
			zap.Int64("user_id", userID),
			zap.Bool("editing", draft.editing()),
			zap.Error(err),
		)
		return c.Send(
			"😔 Could not reach the tracker backend\\. The form is kept, send any field again to retry\\.",
			utils.CancelKeyboard(),
			tele.ModeMarkdownV2,
		)
	}

	clearJobForm(ctx, userID)

	saved := jobs.Normalize([]jobtracker.JobRecord{*record})
	verb := "added"
	if draft.editing() {
		verb = "updated"
	}

	if err := c.Send(
		fmt.Sprintf("✅ Application %s\\!", verb),
		utils.MainMenuKeyboard(),
		tele.ModeMarkdownV2,
	); err != nil {
		return err
	}

	if len(saved) == 1 {
		job := saved[0]
		return c.Send(
			utils.FormatJobCard(&job),
			utils.InlineJobKeyboard(job.ID, job.JobLink),
			tele.ModeMarkdownV2,
		)
	}

	return nil
}

func formatValidationErrors(vErr *jobtracker.ValidationError) string {
	var sb strings.Builder
	sb.WriteString("❌ *The backend rejected the form:*\n\n")
	for field, msg := range vErr.Fields {
		sb.WriteString(fmt.Sprintf("• *%s:* %s\n",
			utils.EscapeMarkdown(field),
			utils.EscapeMarkdown(msg),
		))
	}
	sb.WriteString("\nFix the fields and resubmit, or cancel\\.")
	return sb.String()
}

func cancelJobForm(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID
	clearJobForm(ctx, userID)
	return c.Send("❌ Form discarded", utils.MainMenuKeyboard())
}

func clearJobForm(ctx *Context, userID int64) {
	_ = clearUserState(ctx, userID)
	_ = ctx.Cache.DeleteFormDraft(context.Background(), userID, jobFormName)
}

func parseFormDate(text string) (string, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "today" {
		return time.Now().Format(dateInputLayout), nil
	}

	t, err := time.Parse(dateInputLayout, text)
	if err != nil {
		return "", err
	}
	return t.Format(dateInputLayout), nil
}

func saveJobDraft(ctx *Context, userID int64, draft *jobDraft) {
	if err := ctx.Cache.SetFormDraft(context.Background(), userID, jobFormName, draft); err != nil {
		ctx.Logger.Warn("failed to save job draft",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

func loadJobDraft(ctx *Context, userID int64) (*jobDraft, error) {
	var draft jobDraft
	if err := ctx.Cache.GetFormDraft(context.Background(), userID, jobFormName, &draft); err != nil {
		if err != redis.ErrNotFound {
			ctx.Logger.Warn("failed to load job draft",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
		return nil, err
	}
	return &draft, nil
}
