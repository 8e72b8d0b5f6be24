package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobtracker-bot/internal/models"
)

func TestCountByStatus_SumsToLength(t *testing.T) {
	all := []models.Job{
		{Status: models.StatusApplied},
		{Status: models.StatusInterview},
		{Status: models.StatusInterview},
		{Status: models.StatusUnknown},
		{Status: models.StatusOffer},
	}

	counts := CountByStatus(all)

	sum := 0
	for _, n := range counts {
		sum += n
	}
	assert.Equal(t, len(all), sum)
	assert.Equal(t, 1, counts[models.StatusUnknown], "unknown records must not be dropped")
}

func TestCountByStatus_MixedCaseScenario(t *testing.T) {
	// raw statuses with drifted casing, canonicalized at the boundary
	raw := []string{"Applied", "Interview", "offer"}

	var all []models.Job
	for _, s := range raw {
		all = append(all, models.Job{Status: models.ParseStatus(s)})
	}

	counts := CountByStatus(all)
	assert.Equal(t, 1, counts[models.StatusApplied])
	assert.Equal(t, 1, counts[models.StatusInterview])
	assert.Equal(t, 1, counts[models.StatusOffer])
}

func TestCountByStatus_Idempotent(t *testing.T) {
	all := []models.Job{{Status: models.StatusApplied}, {Status: models.StatusOffer}}
	assert.Equal(t, CountByStatus(all), CountByStatus(all))
}

func TestDistinctLocations(t *testing.T) {
	all := []models.Job{
		{Location: "Berlin"},
		{Location: ""},
		{Location: "Remote"},
		{Location: "Berlin"},
		{Location: "remote"}, // case-sensitive dedupe keeps both spellings
	}

	assert.Equal(t, []string{"Berlin", "Remote", "remote"}, DistinctLocations(all))
}

func TestDistinctLocations_Empty(t *testing.T) {
	assert.Empty(t, DistinctLocations(nil))
	assert.Empty(t, DistinctLocations([]models.Job{{Location: ""}}))
}

func TestCompaniesCount(t *testing.T) {
	all := []models.Job{
		{Company: "Acme"},
		{Company: "Acme"},
		{Company: "Globex"},
		{Company: ""},
	}

	assert.Equal(t, 2, CompaniesCount(all))
}
