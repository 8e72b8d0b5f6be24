package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker-bot/internal/models"
)

func jobOn(date time.Time, status models.Status) models.Job {
	return models.Job{ApplicationDate: date, Status: status}
}

func TestMonthlyBuckets_SortedByCalendarDate(t *testing.T) {
	all := []models.Job{
		jobOn(time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), models.StatusApplied),
		jobOn(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), models.StatusOffer),
		jobOn(time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC), models.StatusInterview),
		jobOn(time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), models.StatusRejected),
	}

	buckets := MonthlyBuckets(all)
	require.Len(t, buckets, 3)

	// December 2024 sorts before January 2025 even though "January" < "December"
	// as a string
	assert.Equal(t, 2024, buckets[0].Year)
	assert.Equal(t, time.December, buckets[0].Month)
	assert.Equal(t, time.January, buckets[1].Month)
	assert.Equal(t, time.March, buckets[2].Month)

	jan := buckets[1]
	assert.Equal(t, 2, jan.Applications)
	assert.Equal(t, 1, jan.Interviews)
	assert.Equal(t, 1, jan.Rejected)
}

func TestMonthlyBuckets_SkipsUndatedRecords(t *testing.T) {
	all := []models.Job{{Status: models.StatusApplied}}
	assert.Empty(t, MonthlyBuckets(all))
}

func TestWeeklyTrend_YearInKey(t *testing.T) {
	// same week index in two different years must not collide
	all := []models.Job{
		jobOn(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), models.StatusApplied),
		jobOn(time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), models.StatusApplied),
	}

	buckets := WeeklyTrend(all, 0)
	require.Len(t, buckets, 2)
	assert.Equal(t, buckets[0].Week, buckets[1].Week)
	assert.NotEqual(t, buckets[0].Year, buckets[1].Year)
}

func TestWeeklyTrend_TruncatesToMostRecent(t *testing.T) {
	var all []models.Job
	for week := 0; week < 6; week++ {
		date := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, week*7)
		all = append(all, jobOn(date, models.StatusApplied))
	}

	buckets := WeeklyTrend(all, 4)
	require.Len(t, buckets, 4)

	// ascending, ending at the latest week
	for i := 1; i < len(buckets); i++ {
		assert.Greater(t, buckets[i].Week, buckets[i-1].Week)
	}
	assert.Equal(t, 6, buckets[len(buckets)-1].Week)
}

func TestWeekOfYear(t *testing.T) {
	assert.Equal(t, 1, weekOfYear(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, weekOfYear(time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, weekOfYear(time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)))
}

func TestOverall_EmptyInput(t *testing.T) {
	var stats OverallStats
	assert.NotPanics(t, func() { stats = Overall(nil) })

	assert.Equal(t, 0, stats.TotalApplications)
	assert.Zero(t, stats.SuccessRate)
	assert.Zero(t, stats.InterviewRate)
	assert.Zero(t, stats.OfferRate)
	assert.Zero(t, stats.AvgResponseDays)
}

func TestOverall_RatesWithinBounds(t *testing.T) {
	all := []models.Job{
		{Status: models.StatusOffer},
		{Status: models.StatusInterview},
		{Status: models.StatusApplied},
		{Status: models.StatusRejected},
	}

	stats := Overall(all)

	assert.Equal(t, 4, stats.TotalApplications)
	assert.InDelta(t, 25.0, stats.SuccessRate, 0.001)
	assert.InDelta(t, 25.0, stats.InterviewRate, 0.001)
	assert.InDelta(t, 25.0, stats.OfferRate, 0.001)

	for _, r := range []float64{stats.SuccessRate, stats.InterviewRate, stats.OfferRate} {
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 100.0)
	}
}

func TestResponseTimeDistribution(t *testing.T) {
	applied := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		updatedAt time.Time
		wantBand  string
	}{
		{"4 days lands in 4-7", applied.AddDate(0, 0, 4), "4-7 days"},
		{"same day lands in 1-3", applied, "1-3 days"},
		{"10 days lands in 8-14", applied.AddDate(0, 0, 10), "8-14 days"},
		{"30 days lands in 15-30", applied.AddDate(0, 0, 30), "15-30 days"},
		{"45 days lands in 31+", applied.AddDate(0, 0, 45), "31+ days"},
		{"negative delta clamps to 1-3", applied.AddDate(0, 0, -5), "1-3 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := ResponseTimeDistribution([]models.Job{
				{ApplicationDate: applied, UpdatedAt: tt.updatedAt},
			})

			for _, band := range bands {
				if band.Label == tt.wantBand {
					assert.Equal(t, 1, band.Count)
					assert.InDelta(t, 100.0, band.Percentage, 0.001)
				} else {
					assert.Zero(t, band.Count, "unexpected count in %s", band.Label)
				}
			}
		})
	}
}

func TestResponseTimeDistribution_ExcludesUndated(t *testing.T) {
	bands := ResponseTimeDistribution([]models.Job{{Status: models.StatusApplied}})
	for _, band := range bands {
		assert.Zero(t, band.Count)
		assert.Zero(t, band.Percentage)
	}
}

func TestTopCompanies(t *testing.T) {
	var all []models.Job
	add := func(company string, status models.Status, n int) {
		for i := 0; i < n; i++ {
			all = append(all, models.Job{Company: company, Status: status})
		}
	}

	add("LowRate", models.StatusApplied, 9)
	add("LowRate", models.StatusInterview, 1) // 10%
	add("HighRate", models.StatusInterview, 1)
	add("HighRate", models.StatusApplied, 1) // 50%
	add("TiedRate", models.StatusInterview, 1)
	add("TiedRate", models.StatusApplied, 1) // 50%, seen after HighRate

	top := TopCompanies(all, 5)
	require.Len(t, top, 3)

	assert.Equal(t, "HighRate", top[0].Company, "ties break by first-seen order")
	assert.Equal(t, "TiedRate", top[1].Company)
	assert.Equal(t, "LowRate", top[2].Company)

	for _, s := range top {
		assert.Positive(t, s.Applications, "no zero-application entries")
	}
}

func TestTopCompanies_LimitAndEmpty(t *testing.T) {
	var all []models.Job
	for _, c := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		all = append(all, models.Job{Company: c, Status: models.StatusApplied})
	}

	assert.Len(t, TopCompanies(all, 5), 5)
	assert.Empty(t, TopCompanies(nil, 5))
}

func TestTopPositions_RankedByVolume(t *testing.T) {
	var all []models.Job
	add := func(position string, status models.Status, n int) {
		for i := 0; i < n; i++ {
			all = append(all, models.Job{Position: position, Status: status})
		}
	}

	add("Frontend", models.StatusApplied, 5)
	add("Frontend", models.StatusOffer, 1)
	add("Backend", models.StatusApplied, 2)

	top := TopPositions(all, 5)
	require.Len(t, top, 2)

	assert.Equal(t, "Frontend", top[0].Position)
	assert.Equal(t, 6, top[0].Applications)
	assert.InDelta(t, 100.0/6.0, top[0].SuccessRate, 0.001)
	assert.Equal(t, "Backend", top[1].Position)
}

func TestTopPositions_FallsBackToJobTitle(t *testing.T) {
	all := []models.Job{{JobTitle: "DevOps Engineer", Status: models.StatusApplied}}

	top := TopPositions(all, 5)
	require.Len(t, top, 1)
	assert.Equal(t, "DevOps Engineer", top[0].Position)
}
