package model

import (
	"time"

	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// SchoolActivity is the per-school rollup of the activity feed
type SchoolActivity struct {
	School       string    `json:"school"`
	Created      int       `json:"created"`
	Submitted    int       `json:"submitted"`
	Approved     int       `json:"approved"`
	Rejected     int       `json:"rejected"`
	TotalActions int       `json:"totalActions"`
	TotalHours   float64   `json:"totalHours"`
	LastActivity time.Time `json:"lastActivity"`
	ApprovalRate float64   `json:"approvalRate"`
}

// Filter narrows the activity feed. Empty or "ALL" fields match everything.
type Filter struct {
	Action string `json:"action"`
	School string `json:"school"`
}

// Query holds the audit dashboard request parameters
type Query struct {
	Range  string
	Start  string
	End    string
	Limit  int
	Filter Filter
}

// DescribedEntry is a feed entry with its human readable description
type DescribedEntry struct {
	backendmodel.RecentActivityEntry
	Description string `json:"description"`
	DisplayTime string `json:"displayTime"`
}

// Dashboard is the audit view of one caller. Statistics come from the backend
// for the date range; Schools and Leaderboard are derived from the feed. The
// two are not reconciled.
type Dashboard struct {
	Scope            string                        `json:"scope"`
	DateRange        utils.DateRange               `json:"dateRange"`
	Filter           Filter                        `json:"filter"`
	Statistics       *backendmodel.AuditStatistics `json:"statistics"`
	Activity         []DescribedEntry              `json:"activity"`
	Schools          []SchoolActivity              `json:"schools"`
	Leaderboard      []SchoolActivity              `json:"leaderboard"`
	AvailableSchools []string                      `json:"availableSchools"`
}
