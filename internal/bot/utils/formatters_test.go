package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobtracker-bot/internal/jobs"
	"jobtracker-bot/internal/models"
)

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `Senior Dev \(Remote\)`, EscapeMarkdown("Senior Dev (Remote)"))
	assert.Equal(t, `a\.b\-c\_d`, EscapeMarkdown("a.b-c_d"))
	assert.Equal(t, "plain", EscapeMarkdown("plain"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "exactlyten", TruncateString("exactlyten", 10))

	got := TruncateString("something far too long", 10)
	assert.Len(t, got, 10)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestFormatJobCard_MissingLocationPlaceholder(t *testing.T) {
	job := &models.Job{
		ID:       "1",
		JobTitle: "Backend Engineer",
		Company:  "Globex",
		Status:   models.StatusApplied,
	}

	card := FormatJobCard(job)

	assert.Contains(t, card, "Not specified")
	assert.Contains(t, card, "Backend Engineer")
	assert.NotContains(t, card, "Open posting")
}

func TestFormatJobCard_NotesTruncated(t *testing.T) {
	job := &models.Job{
		JobTitle: "Dev",
		Company:  "Acme",
		Status:   models.StatusApplied,
		Notes:    strings.Repeat("x", 500),
	}

	card := FormatJobCard(job)
	assert.NotContains(t, card, strings.Repeat("x", 250))
}

func TestBarChart(t *testing.T) {
	assert.Equal(t, "", barChart(0, 10, 10))
	assert.Equal(t, strings.Repeat("█", 10), barChart(10, 10, 10))
	assert.Equal(t, strings.Repeat("█", 5), barChart(5, 10, 10))

	// non-zero values always render at least one block
	assert.Equal(t, "█", barChart(1, 100, 10))
}

func TestFormatWeeklyTrend_LabelsCarryYear(t *testing.T) {
	buckets := []jobs.WeekBucket{
		{Year: 2025, Week: 3, Applications: 2},
		{Year: 2026, Week: 3, Applications: 5},
	}

	out := FormatWeeklyTrend(buckets)

	assert.Contains(t, out, "W03/2025")
	assert.Contains(t, out, "W03/2026")
}

func TestFormatDashboard_CountsAndRecent(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC) }
	all := []models.Job{
		{ID: "1", JobTitle: "Dev", Company: "Acme", Status: models.StatusApplied, ApplicationDate: day(1)},
		{ID: "2", JobTitle: "SRE", Company: "Globex", Status: models.StatusInterview, ApplicationDate: day(20)},
		{ID: "3", JobTitle: "PM", Company: "Initech", Status: models.StatusOffer, ApplicationDate: day(10)},
	}

	out := FormatDashboard(all, nil)

	assert.Contains(t, out, "3")
	assert.Contains(t, out, "Applied: 1")
	assert.Contains(t, out, "Interview: 1")
	assert.Contains(t, out, "Offer: 1")
	assert.Contains(t, out, "Recent applications")
}

func TestFormatResponseDistribution_Empty(t *testing.T) {
	out := FormatResponseDistribution([]jobs.ResponseBand{
		{Label: "1-3 days"}, {Label: "4-7 days"},
	})

	assert.Contains(t, out, "Not enough data")
}
