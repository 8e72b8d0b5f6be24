package models

import (
	"strings"
	"time"
)

// Status is the canonical lifecycle stage of an application.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
	StatusPending   Status = "Pending"
	StatusUnknown   Status = "unknown"
)

// KnownStatuses lists the canonical statuses in classification order.
// ParseStatus tries them in this order, so the more specific "interview"
// wins over "pending" for inputs like "pending interview".
var KnownStatuses = []Status{
	StatusApplied,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusPending,
}

// ParseStatus canonicalizes a raw status string. Historical records carry
// mixed casing and variants ("applied", "Interviewing", "Offer Received"),
// so matching is case-insensitive with substring tolerance in both
// directions. Anything that matches no known status classifies as
// StatusUnknown rather than failing.
func ParseStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusUnknown
	}

	for _, status := range KnownStatuses {
		key := strings.ToLower(string(status))
		if s == key || strings.Contains(s, key) || strings.Contains(key, s) {
			return status
		}
	}

	return StatusUnknown
}

// StatusDefinition maps a status key to its display label and badge.
// Static configuration, never persisted.
type StatusDefinition struct {
	Key   Status
	Label string
	Badge string
}

var StatusDefinitions = []StatusDefinition{
	{Key: StatusApplied, Label: "Applied", Badge: "🔵"},
	{Key: StatusInterview, Label: "Interview", Badge: "🟡"},
	{Key: StatusOffer, Label: "Offer", Badge: "🟢"},
	{Key: StatusRejected, Label: "Rejected", Badge: "🔴"},
	{Key: StatusPending, Label: "Pending", Badge: "🟠"},
}

// GetStatusDefinition returns the definition for a status, falling back to
// a gray badge for unknown values (mirrors the list view behavior).
func GetStatusDefinition(status Status) StatusDefinition {
	for _, def := range StatusDefinitions {
		if def.Key == status {
			return def
		}
	}
	return StatusDefinition{Key: status, Label: string(status), Badge: "⚪"}
}

// Job is the canonical application record every derived view works on.
// Raw backend records pass through jobs.Normalize before reaching here.
type Job struct {
	ID              string
	JobTitle        string
	Company         string
	Position        string
	Location        string
	Status          Status
	ApplicationDate time.Time
	JobLink         string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
