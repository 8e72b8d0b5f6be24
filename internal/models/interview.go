package models

import (
	"fmt"
	"strings"
	"time"
)

// Interview is scheduled against exactly one application. Interviews are
// bot-local: the backend exposes no interview endpoint, so they live in
// our own store.
type Interview struct {
	ID               int64     `db:"id"`
	UserID           int64     `db:"user_id"`
	ApplicationID    string    `db:"application_id"`
	Company          string    `db:"company"`
	Position         string    `db:"position"`
	ScheduledAt      time.Time `db:"scheduled_at"`
	Type             string    `db:"interview_type"`
	Stage            string    `db:"stage"`
	Venue            string    `db:"venue"`
	Interviewer      string    `db:"interviewer"`
	InterviewerEmail string    `db:"interviewer_email"`
	DurationMinutes  int       `db:"duration_minutes"`
	PreparationNotes string    `db:"preparation_notes"`
	CreatedAt        time.Time `db:"created_at"`
	ReminderSentAt   *time.Time `db:"reminder_sent_at"`
}

var InterviewTypes = []string{
	"Technical",
	"Behavioral",
	"Portfolio Review",
	"HR Screening",
	"Final Round",
	"Panel Interview",
}

var InterviewStages = []string{
	"Round 1",
	"Round 2",
	"Round 3",
	"Final Round",
	"HR Screening",
}

func IsValidInterviewType(text string) bool {
	for _, t := range InterviewTypes {
		if strings.EqualFold(t, text) {
			return true
		}
	}
	return false
}

func IsValidInterviewStage(text string) bool {
	for _, s := range InterviewStages {
		if strings.EqualFold(s, text) {
			return true
		}
	}
	return false
}

// Validate checks the fields the scheduling form requires.
func (i *Interview) Validate() error {
	if i.ApplicationID == "" {
		return fmt.Errorf("application id is required")
	}
	if i.ScheduledAt.IsZero() {
		return fmt.Errorf("interview date and time are required")
	}
	if !IsValidInterviewType(i.Type) {
		return fmt.Errorf("invalid interview type: %s", i.Type)
	}
	if i.Stage != "" && !IsValidInterviewStage(i.Stage) {
		return fmt.Errorf("invalid interview stage: %s", i.Stage)
	}
	return nil
}
