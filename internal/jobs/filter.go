package jobs

import (
	"sort"
	"strings"

	"jobtracker-bot/internal/models"
)

// FilterAll is the sentinel meaning "no constraint" for the categorical
// filters.
const FilterAll = "all"

// Filter holds the user-chosen list criteria.
type Filter struct {
	Search   string // free text, empty matches everything
	Status   string // FilterAll or a status key
	Location string // FilterAll or a location substring
}

func (f Filter) IsZero() bool {
	return f.Search == "" &&
		(f.Status == "" || f.Status == FilterAll) &&
		(f.Location == "" || f.Location == FilterAll)
}

// Apply reduces jobs to those matching every criterion. Order-preserving
// subset of the input; the input slice is never mutated.
func (f Filter) Apply(all []models.Job) []models.Job {
	matched := make([]models.Job, 0, len(all))
	for _, job := range all {
		if f.matches(job) {
			matched = append(matched, job)
		}
	}
	return matched
}

func (f Filter) matches(job models.Job) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		hit := strings.Contains(strings.ToLower(job.JobTitle), term) ||
			strings.Contains(strings.ToLower(job.Company), term) ||
			strings.Contains(strings.ToLower(job.Location), term)
		if !hit {
			return false
		}
	}

	if f.Status != "" && f.Status != FilterAll {
		if !strings.EqualFold(string(job.Status), f.Status) {
			return false
		}
	}

	if f.Location != "" && f.Location != FilterAll {
		if !strings.Contains(strings.ToLower(job.Location), strings.ToLower(f.Location)) {
			return false
		}
	}

	return true
}

// SortByRecency returns a copy sorted by application date, newest first.
// Sorting is a separate stage so filtering stays order-preserving.
func SortByRecency(all []models.Job) []models.Job {
	sorted := make([]models.Job, len(all))
	copy(sorted, all)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ApplicationDate.After(sorted[j].ApplicationDate)
	})

	return sorted
}
