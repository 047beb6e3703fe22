package model

import "time"

// AuditAction is the kind of status transition recorded in the audit log
type AuditAction string

const (
	ActionCreated   AuditAction = "CREATED"
	ActionSubmitted AuditAction = "SUBMITTED"
	ActionApproved  AuditAction = "APPROVED"
	ActionRejected  AuditAction = "REJECTED"
)

// AuditActions lists the known actions in lifecycle order
var AuditActions = []AuditAction{ActionCreated, ActionSubmitted, ActionApproved, ActionRejected}

// AuditTrailEntry is one immutable status transition of one submission
type AuditTrailEntry struct {
	ID              string            `json:"id"`
	SubmissionID    string            `json:"submissionId"`
	Action          AuditAction       `json:"action"`
	PreviousStatus  *SubmissionStatus `json:"previousStatus"`
	NewStatus       SubmissionStatus  `json:"newStatus"`
	PerformedBy     string            `json:"performedBy"`
	PerformedByName string            `json:"performedByName"`
	PerformedByRole string            `json:"performedByRole"`
	Reason          *string           `json:"reason"`
	Timestamp       time.Time         `json:"timestamp"`
}

// RecentActivityEntry is an audit record denormalized with student and school
type RecentActivityEntry struct {
	AuditTrailEntry
	StudentName     string   `json:"studentName"`
	SchoolName      *string  `json:"schoolName"`
	OrgName         *string  `json:"orgName"`
	SubmissionHours *float64 `json:"submissionHours"`
}

// School returns the entry's school name, or "" when unset
func (e RecentActivityEntry) School() string {
	if e.SchoolName == nil {
		return ""
	}
	return *e.SchoolName
}

// ActionCount is one (action, role, count) tuple of the statistics endpoint
type ActionCount struct {
	Action AuditAction `json:"action"`
	Role   string      `json:"role"`
	Count  int         `json:"count"`
}

// StatisticsSummary holds the backend's rolled-up counts for a date range
type StatisticsSummary struct {
	TotalActions     int `json:"totalActions"`
	TotalSubmissions int `json:"totalSubmissions"`
	TotalApprovals   int `json:"totalApprovals"`
	TotalRejections  int `json:"totalRejections"`
}

// AuditStatistics is the date-range-scoped summary returned by the backend
type AuditStatistics struct {
	DateRange struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	} `json:"dateRange"`
	ActionCounts []ActionCount     `json:"actionCounts"`
	Summary      StatisticsSummary `json:"summary"`
}
