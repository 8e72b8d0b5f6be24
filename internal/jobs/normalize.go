package jobs

import (
	"time"

	"jobtracker-bot/internal/api/jobtracker"
	"jobtracker-bot/internal/models"
)

// Date layouts the backend has been observed to emit.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

func parseDate(raw string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Normalize coerces raw backend records into the canonical shape every
// derived view works on: status canonicalized, notes resolved across the
// two historical field names, dates parsed. Location stays as-is; the
// "Not specified" placeholder is display formatting, not normalization.
// Malformed records degrade (unknown status, zero dates), never error.
func Normalize(records []jobtracker.JobRecord) []models.Job {
	normalized := make([]models.Job, 0, len(records))

	for i := range records {
		rec := &records[i]
		normalized = append(normalized, models.Job{
			ID:              rec.Identifier(),
			JobTitle:        rec.JobTitle,
			Company:         rec.Company,
			Position:        rec.Position,
			Location:        rec.Location,
			Status:          models.ParseStatus(rec.Status),
			ApplicationDate: parseDate(rec.ApplicationDate),
			JobLink:         rec.JobLink,
			Notes:           rec.NotesText(),
			CreatedAt:       parseDate(rec.CreatedAt),
			UpdatedAt:       parseDate(rec.UpdatedAt),
		})
	}

	return normalized
}
