package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker-bot/internal/api/jobtracker"
	"jobtracker-bot/internal/models"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.Status
	}{
		{"canonical casing", "Applied", models.StatusApplied},
		{"lowercase", "applied", models.StatusApplied},
		{"uppercase", "OFFER", models.StatusOffer},
		{"historical interviewing variant", "interviewing", models.StatusInterview},
		{"offer received variant", "Offer Received", models.StatusOffer},
		{"pending interview prefers interview", "Accepted - Pending Interview", models.StatusInterview},
		{"unknown value", "withdrawn", models.StatusUnknown},
		{"empty", "", models.StatusUnknown},
		{"whitespace only", "   ", models.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ParseStatus(tt.raw))
		})
	}
}

func TestNormalize(t *testing.T) {
	records := []jobtracker.JobRecord{
		{
			MongoID:         "64f1",
			JobTitle:        "Frontend Developer",
			Company:         "Acme",
			Status:          "applied",
			ApplicationDate: "2025-01-15",
			Note:            "legacy notes field",
		},
		{
			ID:              "64f2",
			JobTitle:        "Backend Engineer",
			Company:         "Globex",
			Status:          "something odd",
			ApplicationDate: "not a date",
		},
	}

	normalized := Normalize(records)
	require.Len(t, normalized, 2)

	first := normalized[0]
	assert.Equal(t, "64f1", first.ID)
	assert.Equal(t, models.StatusApplied, first.Status)
	assert.Equal(t, "legacy notes field", first.Notes)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), first.ApplicationDate)

	second := normalized[1]
	assert.Equal(t, "64f2", second.ID)
	assert.Equal(t, models.StatusUnknown, second.Status)
	assert.Empty(t, second.Notes)
	assert.True(t, second.ApplicationDate.IsZero())
}

func TestNormalize_NotesFieldPrecedence(t *testing.T) {
	records := []jobtracker.JobRecord{
		{JobTitle: "a", Company: "a", Status: "Applied", Notes: "new", Note: "old"},
	}

	normalized := Normalize(records)
	require.Len(t, normalized, 1)
	assert.Equal(t, "new", normalized[0].Notes)
}

func TestNormalize_Idempotent(t *testing.T) {
	records := []jobtracker.JobRecord{
		{
			ID:              "1",
			JobTitle:        "Data Scientist",
			Company:         "Initech",
			Location:        "Remote",
			Status:          "Interview",
			ApplicationDate: "2025-03-02",
			Notes:           "phone screen done",
		},
	}

	once := Normalize(records)
	require.Len(t, once, 1)

	// feed the normalized record back through the wire shape
	again := Normalize([]jobtracker.JobRecord{
		{
			ID:              once[0].ID,
			JobTitle:        once[0].JobTitle,
			Company:         once[0].Company,
			Location:        once[0].Location,
			Status:          string(once[0].Status),
			ApplicationDate: once[0].ApplicationDate.Format("2006-01-02"),
			Notes:           once[0].Notes,
		},
	})

	require.Len(t, again, 1)
	assert.Equal(t, once[0], again[0])
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize([]jobtracker.JobRecord{}))
}
