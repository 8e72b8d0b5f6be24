package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker-bot/internal/models"
)

func sampleJobs() []models.Job {
	return []models.Job{
		{ID: "1", JobTitle: "Frontend Developer", Company: "Acme", Location: "Berlin", Status: models.StatusApplied},
		{ID: "2", JobTitle: "Backend Engineer", Company: "Globex", Location: "Remote", Status: models.StatusInterview},
		{ID: "3", JobTitle: "Data Scientist", Company: "Initech", Location: "", Status: models.StatusOffer},
		{ID: "4", JobTitle: "SRE", Company: "Acme", Location: "Berlin", Status: models.StatusRejected},
	}
}

func TestFilter_Apply(t *testing.T) {
	all := sampleJobs()

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{"no criteria returns everything", Filter{}, []string{"1", "2", "3", "4"}},
		{"all sentinels return everything", Filter{Status: FilterAll, Location: FilterAll}, []string{"1", "2", "3", "4"}},
		{"search matches company case-insensitively", Filter{Search: "acme"}, []string{"1", "4"}},
		{"search matches title", Filter{Search: "backend"}, []string{"2"}},
		{"search matches location", Filter{Search: "remote"}, []string{"2"}},
		{"status filter case-insensitive", Filter{Status: "interview"}, []string{"2"}},
		{"location substring", Filter{Location: "berl"}, []string{"1", "4"}},
		{"criteria combine with AND", Filter{Search: "acme", Status: "Rejected"}, []string{"4"}},
		{"no match yields empty", Filter{Search: "nonexistent"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(all)

			var ids []string
			for _, job := range got {
				ids = append(ids, job.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilter_SubsetAndOrderPreserving(t *testing.T) {
	all := sampleJobs()
	got := Filter{Location: "Berlin"}.Apply(all)

	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), len(all))

	// every result is one of the inputs, in input order
	idx := 0
	for _, job := range got {
		found := false
		for ; idx < len(all); idx++ {
			if all[idx].ID == job.ID {
				found = true
				idx++
				break
			}
		}
		assert.True(t, found, "result %s out of order or not in input", job.ID)
	}
}

func TestFilter_EmptySearchNeverExcludes(t *testing.T) {
	all := sampleJobs()

	withSearch := Filter{Status: "Applied", Search: ""}.Apply(all)
	withoutSearch := Filter{Status: "Applied"}.Apply(all)

	assert.Equal(t, withoutSearch, withSearch)
}

func TestFilter_MissingLocationDoesNotPanic(t *testing.T) {
	all := []models.Job{{ID: "1", JobTitle: "Dev", Company: "X"}}

	assert.NotPanics(t, func() {
		Filter{Search: "dev"}.Apply(all)
		Filter{Location: "anywhere"}.Apply(all)
	})
}

func TestFilter_EmptyInput(t *testing.T) {
	assert.Empty(t, Filter{Search: "x"}.Apply(nil))
}

func TestSortByRecency(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC) }
	all := []models.Job{
		{ID: "old", ApplicationDate: day(1)},
		{ID: "new", ApplicationDate: day(20)},
		{ID: "mid", ApplicationDate: day(10)},
	}

	sorted := SortByRecency(all)

	assert.Equal(t, "new", sorted[0].ID)
	assert.Equal(t, "mid", sorted[1].ID)
	assert.Equal(t, "old", sorted[2].ID)

	// input untouched
	assert.Equal(t, "old", all[0].ID)
}
