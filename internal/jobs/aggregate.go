package jobs

import "jobtracker-bot/internal/models"

// CountByStatus buckets records by canonical status. Unknown-status records
// count under models.StatusUnknown, so the counts always sum to len(all).
func CountByStatus(all []models.Job) map[models.Status]int {
	counts := make(map[models.Status]int)
	for _, job := range all {
		counts[job.Status]++
	}
	return counts
}

// DistinctLocations returns the non-empty locations in first-occurrence
// order, for populating the location filter. Dedupe is case-sensitive:
// "Remote" and "remote" are distinct selector entries.
func DistinctLocations(all []models.Job) []string {
	seen := make(map[string]bool)
	var locations []string

	for _, job := range all {
		if job.Location == "" || seen[job.Location] {
			continue
		}
		seen[job.Location] = true
		locations = append(locations, job.Location)
	}

	return locations
}

// CompaniesCount is the number of distinct company names.
func CompaniesCount(all []models.Job) int {
	seen := make(map[string]bool)
	for _, job := range all {
		if job.Company != "" {
			seen[job.Company] = true
		}
	}
	return len(seen)
}
