package jobs

import (
	"sort"
	"time"

	"jobtracker-bot/internal/models"
)

// MonthBucket aggregates the applications of one calendar month.
type MonthBucket struct {
	Year  int
	Month time.Month

	Applications int
	Interviews   int
	Offers       int
	Rejected     int
	Pending      int
}

// MonthlyBuckets groups records by (month, year) of the application date
// and tallies per-status counts. Buckets are sorted by the underlying
// calendar date, not the month-name label. Records without a parseable
// application date are skipped.
func MonthlyBuckets(all []models.Job) []MonthBucket {
	type key struct {
		year  int
		month time.Month
	}

	buckets := make(map[key]*MonthBucket)
	var order []key

	for _, job := range all {
		if job.ApplicationDate.IsZero() {
			continue
		}

		k := key{year: job.ApplicationDate.Year(), month: job.ApplicationDate.Month()}
		b, ok := buckets[k]
		if !ok {
			b = &MonthBucket{Year: k.year, Month: k.month}
			buckets[k] = b
			order = append(order, k)
		}

		b.Applications++
		switch job.Status {
		case models.StatusInterview:
			b.Interviews++
		case models.StatusOffer:
			b.Offers++
		case models.StatusRejected:
			b.Rejected++
		case models.StatusApplied, models.StatusPending:
			b.Pending++
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].month < order[j].month
	})

	result := make([]MonthBucket, 0, len(order))
	for _, k := range order {
		result = append(result, *buckets[k])
	}
	return result
}

// WeekBucket aggregates one week of one year. The year is part of the key
// so week 3 of different years never collide.
type WeekBucket struct {
	Year int
	Week int

	Applications int
	Interviews   int
	Offers       int
}

// weekOfYear is ceil(dayOfYear / 7), a fixed 7-day index from Jan 1.
func weekOfYear(t time.Time) int {
	return (t.YearDay()-1)/7 + 1
}

// WeeklyTrend groups records into (year, week) buckets and returns the most
// recent limit buckets in ascending order.
func WeeklyTrend(all []models.Job, limit int) []WeekBucket {
	type key struct {
		year int
		week int
	}

	buckets := make(map[key]*WeekBucket)

	for _, job := range all {
		if job.ApplicationDate.IsZero() {
			continue
		}

		k := key{year: job.ApplicationDate.Year(), week: weekOfYear(job.ApplicationDate)}
		b, ok := buckets[k]
		if !ok {
			b = &WeekBucket{Year: k.year, Week: k.week}
			buckets[k] = b
		}

		b.Applications++
		switch job.Status {
		case models.StatusInterview:
			b.Interviews++
		case models.StatusOffer:
			b.Offers++
		}
	}

	result := make([]WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Week < result[j].Week
	})

	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result
}

// OverallStats is the top-level summary shown on the analytics view.
// Every rate is in [0, 100] and defined as 0 when there are no records.
type OverallStats struct {
	TotalApplications int
	Interviews        int
	Offers            int
	Rejected          int
	Pending           int

	SuccessRate   float64
	InterviewRate float64
	OfferRate     float64

	AvgResponseDays float64
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Overall computes the summary stats over one record snapshot.
func Overall(all []models.Job) OverallStats {
	counts := CountByStatus(all)

	stats := OverallStats{
		TotalApplications: len(all),
		Interviews:        counts[models.StatusInterview],
		Offers:            counts[models.StatusOffer],
		Rejected:          counts[models.StatusRejected],
		Pending:           counts[models.StatusApplied] + counts[models.StatusPending],
	}

	stats.SuccessRate = rate(stats.Offers, stats.TotalApplications)
	stats.InterviewRate = rate(stats.Interviews, stats.TotalApplications)
	stats.OfferRate = rate(stats.Offers, stats.TotalApplications)

	var daysTotal, counted int
	for _, job := range all {
		if d, ok := responseTimeDays(job); ok {
			daysTotal += d
			counted++
		}
	}
	if counted > 0 {
		stats.AvgResponseDays = float64(daysTotal) / float64(counted)
	}

	return stats
}

// responseTimeDays is the whole days between the last update and the
// application date. A negative delta means bad data and clamps to 0.
func responseTimeDays(job models.Job) (int, bool) {
	if job.ApplicationDate.IsZero() || job.UpdatedAt.IsZero() {
		return 0, false
	}

	days := int(job.UpdatedAt.Sub(job.ApplicationDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}

// ResponseBand is one fixed response-time band with its share of the
// records that have a measurable response time.
type ResponseBand struct {
	Label      string
	Count      int
	Percentage float64
}

var responseBands = []struct {
	label   string
	maxDays int // inclusive; last band is open-ended
}{
	{"1-3 days", 3},
	{"4-7 days", 7},
	{"8-14 days", 14},
	{"15-30 days", 30},
	{"31+ days", -1},
}

// ResponseTimeDistribution buckets records into the fixed response-time
// bands. Records without both dates are excluded from the distribution.
func ResponseTimeDistribution(all []models.Job) []ResponseBand {
	counts := make([]int, len(responseBands))
	total := 0

	for _, job := range all {
		days, ok := responseTimeDays(job)
		if !ok {
			continue
		}
		total++
		for i, band := range responseBands {
			if band.maxDays < 0 || days <= band.maxDays {
				counts[i]++
				break
			}
		}
	}

	bands := make([]ResponseBand, len(responseBands))
	for i, band := range responseBands {
		bands[i] = ResponseBand{
			Label:      band.label,
			Count:      counts[i],
			Percentage: rate(counts[i], total),
		}
	}
	return bands
}

// CompanyStats is the per-company breakdown for the top-performers view.
type CompanyStats struct {
	Company       string
	Applications  int
	Interviews    int
	Offers        int
	InterviewRate float64
}

// TopCompanies groups by company and returns the limit best by interview
// rate, ties broken by first-seen order. Never returns an entry with zero
// applications since entries only exist for observed records.
func TopCompanies(all []models.Job, limit int) []CompanyStats {
	grouped := make(map[string]*CompanyStats)
	var order []string

	for _, job := range all {
		if job.Company == "" {
			continue
		}

		s, ok := grouped[job.Company]
		if !ok {
			s = &CompanyStats{Company: job.Company}
			grouped[job.Company] = s
			order = append(order, job.Company)
		}

		s.Applications++
		switch job.Status {
		case models.StatusInterview:
			s.Interviews++
		case models.StatusOffer:
			s.Offers++
		}
	}

	result := make([]CompanyStats, 0, len(order))
	for _, company := range order {
		s := grouped[company]
		s.InterviewRate = rate(s.Interviews, s.Applications)
		result = append(result, *s)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].InterviewRate > result[j].InterviewRate
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// PositionStats is the per-position breakdown, same shape as companies but
// ranked by application volume.
type PositionStats struct {
	Position     string
	Applications int
	Interviews   int
	Offers       int
	SuccessRate  float64
}

// TopPositions groups by the position field (job title when position is
// absent) and returns the limit largest groups by application volume, with
// a per-group success rate.
func TopPositions(all []models.Job, limit int) []PositionStats {
	grouped := make(map[string]*PositionStats)
	var order []string

	for _, job := range all {
		position := job.Position
		if position == "" {
			position = job.JobTitle
		}
		if position == "" {
			continue
		}

		s, ok := grouped[position]
		if !ok {
			s = &PositionStats{Position: position}
			grouped[position] = s
			order = append(order, position)
		}

		s.Applications++
		switch job.Status {
		case models.StatusInterview:
			s.Interviews++
		case models.StatusOffer:
			s.Offers++
		}
	}

	result := make([]PositionStats, 0, len(order))
	for _, position := range order {
		s := grouped[position]
		s.SuccessRate = rate(s.Offers, s.Applications)
		result = append(result, *s)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Applications > result[j].Applications
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
