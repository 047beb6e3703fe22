// Package formatter holds the pure helpers used to total, count and label
// submissions for the dashboards.
package formatter

import (
	"strings"
	"time"
	"unicode"

	"github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

const (
	dateLayout      = "Jan 2, 2006"
	timestampLayout = "Jan 2, 15:04"
)

// Stats counts a user's submissions. Total counts every submission, including
// APPROVED and REJECTED ones that are neither Submitted nor Draft.
type Stats struct {
	Submitted int `json:"submitted"`
	Draft     int `json:"draft"`
	Total     int `json:"total"`
}

// TotalHours sums logged hours, counting a missing value as zero.
func TotalHours(submissions []model.Submission) float64 {
	total := 0.0
	for _, s := range submissions {
		total += s.HoursOrZero()
	}
	return total
}

// SubmissionStats tallies submitted and draft submissions.
func SubmissionStats(submissions []model.Submission) Stats {
	stats := Stats{Total: len(submissions)}
	for _, s := range submissions {
		switch s.Status {
		case model.StatusSubmitted:
			stats.Submitted++
		case model.StatusDraft:
			stats.Draft++
		}
	}
	return stats
}

// CompletionRate is the submitted share of all submissions as a percentage.
func CompletionRate(stats Stats) float64 {
	if stats.Total == 0 {
		return 0
	}
	return float64(stats.Submitted) / float64(stats.Total) * 100
}

// Initials returns the upper-cased first letter of each word of name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// FormatDate renders an ISO date or timestamp as "Jan 2, 2006". Input that
// cannot be parsed is returned as is.
func FormatDate(iso string) string {
	t, err := utils.ParseTime(iso)
	if err != nil {
		return iso
	}
	return t.Format(dateLayout)
}

// FormatOptionalDate is FormatDate for nullable fields, giving "N/A" when the
// value is missing or unparseable.
func FormatOptionalDate(iso *string) string {
	if iso == nil || *iso == "" {
		return constants.NotAvailable
	}
	t, err := utils.ParseTime(*iso)
	if err != nil {
		return constants.NotAvailable
	}
	return t.Format(dateLayout)
}

// FormatTimestamp renders an activity time as "Jan 2, 15:04".
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
