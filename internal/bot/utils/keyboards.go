package utils

import (
	"strconv"

	"jobtracker-bot/internal/models"

	tele "gopkg.in/telebot.v3"
)

func MainMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnJobs := menu.Text("📋 Applications")
	btnAdd := menu.Text("➕ Add application")
	btnInterviews := menu.Text("🗓 Interviews")
	btnDashboard := menu.Text("📊 Dashboard")
	btnAnalytics := menu.Text("📈 Analytics")
	btnHelp := menu.Text("❓ Help")

	menu.Reply(
		menu.Row(btnJobs, btnAdd),
		menu.Row(btnInterviews, btnDashboard),
		menu.Row(btnAnalytics, btnHelp),
	)

	return menu
}

func FiltersMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnSearch := menu.Text("🔍 Search text")
	btnStatus := menu.Text("🏷 Status")
	btnLocation := menu.Text("📍 Location")
	btnClear := menu.Text("🗑 Clear filters")
	btnBack := menu.Text("◀️ Back")

	menu.Reply(
		menu.Row(btnSearch, btnStatus),
		menu.Row(btnLocation),
		menu.Row(btnClear, btnBack),
	)

	return menu
}

// StatusKeyboard lists the canonical statuses, with an "All" row when the
// keyboard drives the list filter rather than a form field.
func StatusKeyboard(includeAll bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	var rows []tele.Row
	if includeAll {
		rows = append(rows, menu.Row(menu.Text("📋 All")))
	}

	for _, def := range models.StatusDefinitions {
		btn := menu.Text(def.Badge + " " + def.Label)
		rows = append(rows, menu.Row(btn))
	}

	btnCancel := menu.Text("❌ Cancel")
	rows = append(rows, menu.Row(btnCancel))

	menu.Reply(rows...)

	return menu
}

// LocationKeyboard offers the distinct locations of the current records.
func LocationKeyboard(locations []string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	rows := []tele.Row{menu.Row(menu.Text("📋 All"))}
	for _, location := range locations {
		rows = append(rows, menu.Row(menu.Text(location)))
	}

	btnCancel := menu.Text("❌ Cancel")
	rows = append(rows, menu.Row(btnCancel))

	menu.Reply(rows...)

	return menu
}

func InterviewTypeKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	var rows []tele.Row
	for _, option := range models.InterviewTypes {
		btn := menu.Text(option)
		rows = append(rows, menu.Row(btn))
	}

	btnCancel := menu.Text("❌ Cancel")
	rows = append(rows, menu.Row(btnCancel))

	menu.Reply(rows...)

	return menu
}

func InterviewStageKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	var rows []tele.Row
	for _, option := range models.InterviewStages {
		btn := menu.Text(option)
		rows = append(rows, menu.Row(btn))
	}

	btnSkip := menu.Text("⏭ Skip")
	btnCancel := menu.Text("❌ Cancel")
	rows = append(rows, menu.Row(btnSkip, btnCancel))

	menu.Reply(rows...)

	return menu
}

func CancelKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnCancel := menu.Text("❌ Cancel")
	menu.Reply(menu.Row(btnCancel))

	return menu
}

// SkipCancelKeyboard is used on optional form fields.
func SkipCancelKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnSkip := menu.Text("⏭ Skip")
	btnCancel := menu.Text("❌ Cancel")
	menu.Reply(menu.Row(btnSkip, btnCancel))

	return menu
}

func ConfirmKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnYes := menu.Text("✅ Yes")
	btnNo := menu.Text("❌ No")

	menu.Reply(menu.Row(btnYes, btnNo))

	return menu
}

func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// InlineJobKeyboard is attached to every application card: status change,
// edit, delete and the posting link when present.
func InlineJobKeyboard(jobID, jobLink string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	btnStatus := menu.Data("🏷 Status", "job_status", jobID)
	btnEdit := menu.Data("✏️ Edit", "job_edit", jobID)
	btnDelete := menu.Data("🗑 Delete", "job_delete", jobID)

	rows := []tele.Row{menu.Row(btnStatus, btnEdit, btnDelete)}
	if jobLink != "" {
		rows = append(rows, menu.Row(menu.URL("🔗 Open posting", jobLink)))
	}

	menu.Inline(rows...)

	return menu
}

// InlineStatusKeyboard offers the canonical statuses for one application.
func InlineStatusKeyboard(jobID string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	var rows []tele.Row
	for _, def := range models.StatusDefinitions {
		btn := menu.Data(def.Badge+" "+def.Label, "job_setstatus", jobID, string(def.Key))
		rows = append(rows, menu.Row(btn))
	}

	menu.Inline(rows...)

	return menu
}

func InlineDeleteConfirmKeyboard(jobID string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	btnYes := menu.Data("✅ Delete", "job_delete_yes", jobID)
	btnNo := menu.Data("❌ Keep", "job_delete_no", jobID)

	menu.Inline(menu.Row(btnYes, btnNo))

	return menu
}

func InlineRetryKeyboard(action string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	btnRetry := menu.Data("🔄 Retry", "retry", action)
	menu.Inline(menu.Row(btnRetry))

	return menu
}

// InlineApplicationPicker lists candidate applications for scheduling.
func InlineApplicationPicker(jobs []models.Job) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	var rows []tele.Row
	for _, job := range jobs {
		label := TruncateString(job.JobTitle+" - "+job.Company, 60)
		btn := menu.Data(label, "iv_pick", job.ID)
		rows = append(rows, menu.Row(btn))
	}

	menu.Inline(rows...)

	return menu
}

// InlineInterviewKeyboard is attached to a scheduled interview card.
func InlineInterviewKeyboard(interviewID int64) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	id := strconv.FormatInt(interviewID, 10)
	btnReschedule := menu.Data("🗓 Reschedule", "iv_edit", id)
	btnDelete := menu.Data("🗑 Cancel interview", "iv_delete", id)

	menu.Inline(menu.Row(btnReschedule, btnDelete))

	return menu
}
