package utils

import (
	"fmt"
	"strings"

	"jobtracker-bot/internal/jobs"
	"jobtracker-bot/internal/models"
)

const notSpecified = "Not specified"

// Format a single application card for Telegram
func FormatJobCard(job *models.Job) string {
	var sb strings.Builder

	def := models.GetStatusDefinition(job.Status)

	// Job title in bold
	sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(job.JobTitle)))
	sb.WriteString(fmt.Sprintf("%s %s\n\n", def.Badge, EscapeMarkdown(def.Label)))

	// Company
	if job.Company != "" {
		sb.WriteString(fmt.Sprintf("🏢 *Company:* %s\n", EscapeMarkdown(job.Company)))
	}

	// Position, when it differs from the title
	if job.Position != "" && !strings.EqualFold(job.Position, job.JobTitle) {
		sb.WriteString(fmt.Sprintf("💼 *Position:* %s\n", EscapeMarkdown(job.Position)))
	}

	// Location
	location := job.Location
	if location == "" {
		location = notSpecified
	}
	sb.WriteString(fmt.Sprintf("📍 *Location:* %s\n", EscapeMarkdown(location)))

	// Applied date
	if !job.ApplicationDate.IsZero() {
		sb.WriteString(fmt.Sprintf("📅 *Applied:* %s\n", EscapeMarkdown(job.ApplicationDate.Format("02.01.2006"))))
	}

	// Notes
	if job.Notes != "" {
		sb.WriteString(fmt.Sprintf("📝 *Notes:* %s\n", EscapeMarkdown(TruncateString(job.Notes, 200))))
	}

	// Link
	if job.JobLink != "" {
		sb.WriteString(fmt.Sprintf("\n🔗 [Open posting](%s)", job.JobLink))
	}

	return sb.String()
}

func FormatJobListHeader(shown, total int, filter jobs.Filter) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📋 *Applications:* %d\n", total))
	if shown != total {
		sb.WriteString(fmt.Sprintf("*Matching filters:* %d\n", shown))
	}

	if !filter.IsZero() {
		sb.WriteString("\n")
		if filter.Search != "" {
			sb.WriteString(fmt.Sprintf("🔍 *Search:* %s\n", EscapeMarkdown(filter.Search)))
		}
		if filter.Status != "" && filter.Status != jobs.FilterAll {
			def := models.GetStatusDefinition(models.Status(filter.Status))
			sb.WriteString(fmt.Sprintf("%s *Status:* %s\n", def.Badge, EscapeMarkdown(def.Label)))
		}
		if filter.Location != "" && filter.Location != jobs.FilterAll {
			sb.WriteString(fmt.Sprintf("📍 *Location:* %s\n", EscapeMarkdown(filter.Location)))
		}
	}

	return sb.String()
}

func FormatDashboard(all []models.Job, upcoming []models.Interview) string {
	var sb strings.Builder

	counts := jobs.CountByStatus(all)

	sb.WriteString("*📊 Dashboard*\n\n")
	sb.WriteString(fmt.Sprintf("*Total applications:* %d\n", len(all)))
	sb.WriteString(fmt.Sprintf("*Companies:* %d\n\n", jobs.CompaniesCount(all)))

	for _, def := range models.StatusDefinitions {
		sb.WriteString(fmt.Sprintf("%s %s: %d\n", def.Badge, EscapeMarkdown(def.Label), counts[def.Key]))
	}
	if unknown := counts[models.StatusUnknown]; unknown > 0 {
		sb.WriteString(fmt.Sprintf("⚪ Other: %d\n", unknown))
	}

	recent := jobs.SortByRecency(all)
	if len(recent) > 3 {
		recent = recent[:3]
	}
	if len(recent) > 0 {
		sb.WriteString("\n*Recent applications:*\n")
		for _, job := range recent {
			def := models.GetStatusDefinition(job.Status)
			sb.WriteString(fmt.Sprintf("%s %s \\- %s\n",
				def.Badge,
				EscapeMarkdown(job.JobTitle),
				EscapeMarkdown(job.Company),
			))
		}
	}

	if len(upcoming) > 0 {
		sb.WriteString("\n*Upcoming interviews:*\n")
		for _, iv := range upcoming {
			sb.WriteString(fmt.Sprintf("🗓 %s \\- %s \\(%s\\)\n",
				EscapeMarkdown(iv.Company),
				EscapeMarkdown(iv.Type),
				EscapeMarkdown(iv.ScheduledAt.Format("02.01 15:04")),
			))
		}
	}

	return sb.String()
}

func FormatOverallStats(stats jobs.OverallStats) string {
	var sb strings.Builder

	sb.WriteString("*📈 Analytics*\n\n")
	sb.WriteString(fmt.Sprintf("*Total applications:* %d\n", stats.TotalApplications))
	sb.WriteString(fmt.Sprintf("🟡 Interviews: %d\n", stats.Interviews))
	sb.WriteString(fmt.Sprintf("🟢 Offers: %d\n", stats.Offers))
	sb.WriteString(fmt.Sprintf("🔴 Rejected: %d\n", stats.Rejected))
	sb.WriteString(fmt.Sprintf("🟠 Pending: %d\n\n", stats.Pending))

	sb.WriteString(fmt.Sprintf("*Success rate:* %s%%\n", formatPercent(stats.SuccessRate)))
	sb.WriteString(fmt.Sprintf("*Interview rate:* %s%%\n", formatPercent(stats.InterviewRate)))
	sb.WriteString(fmt.Sprintf("*Offer rate:* %s%%\n", formatPercent(stats.OfferRate)))

	if stats.AvgResponseDays > 0 {
		sb.WriteString(fmt.Sprintf("*Avg response time:* %s days\n", formatPercent(stats.AvgResponseDays)))
	}

	return sb.String()
}

func FormatMonthlyBuckets(buckets []jobs.MonthBucket) string {
	if len(buckets) == 0 {
		return "_No application activity yet_"
	}

	var sb strings.Builder
	sb.WriteString("*📅 Monthly activity*\n\n")

	max := 0
	for _, b := range buckets {
		if b.Applications > max {
			max = b.Applications
		}
	}

	for _, b := range buckets {
		label := fmt.Sprintf("%s %d", b.Month.String()[:3], b.Year)
		sb.WriteString(fmt.Sprintf("`%s` %s %d\n",
			EscapeMarkdown(label),
			barChart(b.Applications, max, 10),
			b.Applications,
		))
		if b.Interviews > 0 || b.Offers > 0 {
			sb.WriteString(fmt.Sprintf("        🟡 %d  🟢 %d\n", b.Interviews, b.Offers))
		}
	}

	return sb.String()
}

func FormatWeeklyTrend(buckets []jobs.WeekBucket) string {
	if len(buckets) == 0 {
		return "_No recent activity_"
	}

	var sb strings.Builder
	sb.WriteString("*📆 Weekly trend*\n\n")

	max := 0
	for _, b := range buckets {
		if b.Applications > max {
			max = b.Applications
		}
	}

	for _, b := range buckets {
		label := fmt.Sprintf("W%02d/%d", b.Week, b.Year)
		sb.WriteString(fmt.Sprintf("`%s` %s %d\n",
			EscapeMarkdown(label),
			barChart(b.Applications, max, 10),
			b.Applications,
		))
	}

	return sb.String()
}

func FormatResponseDistribution(bands []jobs.ResponseBand) string {
	total := 0
	for _, b := range bands {
		total += b.Count
	}
	if total == 0 {
		return "_Not enough data for response times_"
	}

	var sb strings.Builder
	sb.WriteString("*⏱ Response time*\n\n")

	max := 0
	for _, b := range bands {
		if b.Count > max {
			max = b.Count
		}
	}

	for _, b := range bands {
		if b.Count == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("`%-11s` %s %s%%\n",
			b.Label,
			barChart(b.Count, max, 8),
			formatPercent(b.Percentage),
		))
	}

	return sb.String()
}

func FormatTopCompanies(companies []jobs.CompanyStats) string {
	if len(companies) == 0 {
		return "_No company data yet_"
	}

	var sb strings.Builder
	sb.WriteString("*🏢 Top companies by interview rate*\n\n")

	for i, c := range companies {
		sb.WriteString(fmt.Sprintf("*%d\\. %s*\n", i+1, EscapeMarkdown(c.Company)))
		sb.WriteString(fmt.Sprintf("   %d applications, %d interviews \\(%s%%\\)\n",
			c.Applications, c.Interviews, formatPercent(c.InterviewRate)))
	}

	return sb.String()
}

func FormatTopPositions(positions []jobs.PositionStats) string {
	if len(positions) == 0 {
		return "_No position data yet_"
	}

	var sb strings.Builder
	sb.WriteString("*💼 Top positions by volume*\n\n")

	for i, p := range positions {
		sb.WriteString(fmt.Sprintf("*%d\\. %s*\n", i+1, EscapeMarkdown(p.Position)))
		sb.WriteString(fmt.Sprintf("   %d applications, %d offers \\(%s%% success\\)\n",
			p.Applications, p.Offers, formatPercent(p.SuccessRate)))
	}

	return sb.String()
}

func FormatInterview(iv *models.Interview) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n\n", EscapeMarkdown(iv.Company)))

	if iv.Position != "" {
		sb.WriteString(fmt.Sprintf("💼 *Position:* %s\n", EscapeMarkdown(iv.Position)))
	}
	sb.WriteString(fmt.Sprintf("🗓 *When:* %s\n", EscapeMarkdown(iv.ScheduledAt.Format("02.01.2006 15:04"))))
	sb.WriteString(fmt.Sprintf("📋 *Type:* %s\n", EscapeMarkdown(iv.Type)))

	if iv.Stage != "" {
		sb.WriteString(fmt.Sprintf("🎯 *Stage:* %s\n", EscapeMarkdown(iv.Stage)))
	}
	if iv.Venue != "" {
		sb.WriteString(fmt.Sprintf("📍 *Venue:* %s\n", EscapeMarkdown(iv.Venue)))
	}
	if iv.Interviewer != "" {
		sb.WriteString(fmt.Sprintf("👤 *Interviewer:* %s\n", EscapeMarkdown(iv.Interviewer)))
	}
	if iv.InterviewerEmail != "" {
		sb.WriteString(fmt.Sprintf("📧 %s\n", EscapeMarkdown(iv.InterviewerEmail)))
	}
	if iv.DurationMinutes > 0 {
		sb.WriteString(fmt.Sprintf("⏰ *Duration:* %d min\n", iv.DurationMinutes))
	}
	if iv.PreparationNotes != "" {
		sb.WriteString(fmt.Sprintf("📝 *Prep notes:* %s\n", EscapeMarkdown(TruncateString(iv.PreparationNotes, 200))))
	}

	return sb.String()
}

func FormatInterviewReminder(iv *models.Interview) string {
	var sb strings.Builder

	sb.WriteString("🔔 *Interview reminder*\n\n")
	sb.WriteString(fmt.Sprintf("*%s* \\- %s\n", EscapeMarkdown(iv.Company), EscapeMarkdown(iv.Type)))
	sb.WriteString(fmt.Sprintf("🗓 %s\n", EscapeMarkdown(iv.ScheduledAt.Format("02.01.2006 15:04"))))

	if iv.Venue != "" {
		sb.WriteString(fmt.Sprintf("📍 %s\n", EscapeMarkdown(iv.Venue)))
	}
	if iv.PreparationNotes != "" {
		sb.WriteString(fmt.Sprintf("\n📝 %s\n", EscapeMarkdown(TruncateString(iv.PreparationNotes, 200))))
	}

	return sb.String()
}

func FormatWelcomeMessage(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf(`👋 Hi, *%s*\!

I track your job applications and keep the numbers honest\.

*What I can do:*
• List and filter your applications
• Add new applications step by step
• Schedule interviews with reminders
• Show dashboard counts and analytics

*Commands:*
/jobs \- your applications
/addjob \- add an application
/interviews \- interview schedule
/dashboard \- status overview
/analytics \- trends and rates
/help \- help

Start by adding an application \- /addjob`, EscapeMarkdown(name))
}

func FormatHelpMessage() string {
	return `*📖 Help*

*Commands:*

/start \- start working with the bot
/jobs \- list applications with filters
/addjob \- add a new application
/interviews \- schedule and manage interviews
/dashboard \- status counts and recent activity
/analytics \- monthly trends, rates and top companies
/help \- this help

*How it works:*

1️⃣ Add applications with /addjob
   \- Job title and company are required
   \- Date must be YYYY\-MM\-DD

2️⃣ Browse them with /jobs
   \- Search by title, company or location
   \- Filter by status and location
   \- Change status or delete inline

3️⃣ Schedule interviews with /interviews
   \- Only applications in Interview status qualify
   \- I remind you before each one`
}

func FormatNoJobsMessage() string {
	return `😔 *No applications yet*

Add your first one with /addjob`
}

func FormatFetchErrorMessage() string {
	return `⚠️ *Could not load applications*

The tracker backend did not respond\. Try again in a moment\.`
}

func formatPercent(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, ".0")
	return EscapeMarkdown(s)
}

// barChart renders a proportional bar, at least one block for non-zero values
func barChart(value, max, width int) string {
	if value <= 0 || max <= 0 {
		return ""
	}
	n := value * width / max
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	return replacer.Replace(text)
}

func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
