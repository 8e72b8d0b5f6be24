package postgres

import (
	"context"
	"fmt"
	"time"

	"jobtracker-bot/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// Interviews are bot-local: the backend has no interview endpoint, so this
// store is their system of record. The unique (user_id, application_id)
// constraint enforces the at-most-one-interview-per-application policy the
// UI assumes.

func (s *Store) CreateInterview(ctx context.Context, interview *models.Interview) error {
	query := `
		INSERT INTO interviews (
			user_id, application_id, company, position, scheduled_at,
			interview_type, stage, venue, interviewer, interviewer_email,
			duration_minutes, preparation_notes, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
		RETURNING id
	`

	var id int64
	err := s.sess.
		SelectBySql(query,
			interview.UserID, interview.ApplicationID, interview.Company,
			interview.Position, interview.ScheduledAt, interview.Type,
			interview.Stage, interview.Venue, interview.Interviewer,
			interview.InterviewerEmail, interview.DurationMinutes,
			interview.PreparationNotes,
		).
		LoadOneContext(ctx, &id)
	if err != nil {
		s.logger.Error("failed to create interview",
			zap.Int64("user_id", interview.UserID),
			zap.String("application_id", interview.ApplicationID),
			zap.Error(err),
		)
		return fmt.Errorf("create interview: %w", err)
	}

	interview.ID = id

	s.logger.Info("interview scheduled",
		zap.Int64("user_id", interview.UserID),
		zap.String("application_id", interview.ApplicationID),
		zap.Time("scheduled_at", interview.ScheduledAt),
	)

	return nil
}

func (s *Store) UpdateInterview(ctx context.Context, interview *models.Interview) error {
	result, err := s.sess.
		Update("interviews").
		Set("scheduled_at", interview.ScheduledAt).
		Set("interview_type", interview.Type).
		Set("stage", interview.Stage).
		Set("venue", interview.Venue).
		Set("interviewer", interview.Interviewer).
		Set("interviewer_email", interview.InterviewerEmail).
		Set("duration_minutes", interview.DurationMinutes).
		Set("preparation_notes", interview.PreparationNotes).
		Set("reminder_sent_at", nil).
		Where("id = ? AND user_id = ?", interview.ID, interview.UserID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update interview",
			zap.Int64("interview_id", interview.ID),
			zap.Error(err),
		)
		return fmt.Errorf("update interview: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("interview not found")
	}

	return nil
}

func (s *Store) DeleteInterview(ctx context.Context, userID, interviewID int64) error {
	result, err := s.sess.
		DeleteFrom("interviews").
		Where("id = ? AND user_id = ?", interviewID, userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete interview",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		return fmt.Errorf("delete interview: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("interview not found")
	}

	s.logger.Info("interview deleted",
		zap.Int64("user_id", userID),
		zap.Int64("interview_id", interviewID),
	)

	return nil
}

// DeleteInterviewsForApplication removes any interview attached to a job
// the user deleted, so stale references never linger.
func (s *Store) DeleteInterviewsForApplication(ctx context.Context, userID int64, applicationID string) error {
	_, err := s.sess.
		DeleteFrom("interviews").
		Where("user_id = ? AND application_id = ?", userID, applicationID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete interviews for application",
			zap.Int64("user_id", userID),
			zap.String("application_id", applicationID),
			zap.Error(err),
		)
		return fmt.Errorf("delete interviews for application: %w", err)
	}

	return nil
}

func (s *Store) GetInterview(ctx context.Context, userID, interviewID int64) (*models.Interview, error) {
	var interview models.Interview

	err := s.sess.
		Select("*").
		From("interviews").
		Where("id = ? AND user_id = ?", interviewID, userID).
		LoadOneContext(ctx, &interview)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get interview",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get interview: %w", err)
	}

	return &interview, nil
}

func (s *Store) GetUserInterviews(ctx context.Context, userID int64) ([]models.Interview, error) {
	var interviews []models.Interview

	_, err := s.sess.
		Select("*").
		From("interviews").
		Where("user_id = ?", userID).
		OrderBy("scheduled_at").
		LoadContext(ctx, &interviews)

	if err != nil {
		s.logger.Error("failed to get user interviews",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user interviews: %w", err)
	}

	return interviews, nil
}

// ScheduledApplicationIDs returns the application ids that already have an
// interview, used to filter the "available applications" list.
func (s *Store) ScheduledApplicationIDs(ctx context.Context, userID int64) (map[string]bool, error) {
	var ids []string

	_, err := s.sess.
		Select("application_id").
		From("interviews").
		Where("user_id = ?", userID).
		LoadContext(ctx, &ids)

	if err != nil {
		s.logger.Error("failed to get scheduled application ids",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("scheduled application ids: %w", err)
	}

	scheduled := make(map[string]bool, len(ids))
	for _, id := range ids {
		scheduled[id] = true
	}

	return scheduled, nil
}

// GetDueReminders returns interviews starting within the window that have
// not been reminded yet.
func (s *Store) GetDueReminders(ctx context.Context, window time.Duration) ([]models.Interview, error) {
	var interviews []models.Interview

	_, err := s.sess.
		Select("*").
		From("interviews").
		Where("scheduled_at > NOW() AND scheduled_at <= NOW() + ?::interval AND reminder_sent_at IS NULL",
			fmt.Sprintf("%d seconds", int(window.Seconds()))).
		OrderBy("scheduled_at").
		LoadContext(ctx, &interviews)

	if err != nil {
		s.logger.Error("failed to get due reminders", zap.Error(err))
		return nil, fmt.Errorf("get due reminders: %w", err)
	}

	return interviews, nil
}

func (s *Store) MarkReminderSent(ctx context.Context, interviewID int64) error {
	_, err := s.sess.
		UpdateBySql("UPDATE interviews SET reminder_sent_at = NOW() WHERE id = ?", interviewID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to mark reminder sent",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		return fmt.Errorf("mark reminder sent: %w", err)
	}

	return nil
}
