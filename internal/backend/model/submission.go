package model

// SubmissionStatus is the lifecycle state of a community-hours submission
type SubmissionStatus string

const (
	StatusDraft     SubmissionStatus = "DRAFT"
	StatusSubmitted SubmissionStatus = "SUBMITTED"
	StatusApproved  SubmissionStatus = "APPROVED"
	StatusRejected  SubmissionStatus = "REJECTED"
)

// IsValid reports whether s is one of the four known statuses
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Submission is one student's logged community-service record
type Submission struct {
	ID                      string           `json:"id"`
	OrgName                 *string          `json:"orgName"`
	Hours                   *float64         `json:"hours"`
	Telephone               *int64           `json:"telephone"`
	SupervisorName          *string          `json:"supervisorName"`
	SubmissionDate          *string          `json:"submissionDate"`
	Description             *string          `json:"description"`
	CreatedAt               string           `json:"createdAt"`
	UpdatedAt               string           `json:"updatedAt"`
	StudentID               string           `json:"studentId"`
	PreApprovedSignatureURL *string          `json:"preApprovedSignatureUrl"`
	SupervisorSignatureURL  *string          `json:"supervisorSignatureUrl"`
	Status                  SubmissionStatus `json:"status"`
}

// HoursOrZero returns the logged hours, treating a missing value as zero
func (s Submission) HoursOrZero() float64 {
	if s.Hours == nil {
		return 0
	}
	return *s.Hours
}

// CanMakeDecision reports whether an admin may approve or reject the submission
func (s Submission) CanMakeDecision() bool {
	return s.Status == StatusSubmitted
}

// BulkDecisionRequest is the body of the bulk approve/reject endpoints
type BulkDecisionRequest struct {
	SubmissionIDs []string `json:"submissionIds"`
	Reason        *string  `json:"reason,omitempty"`
}

// RejectRequest is the body of the single reject endpoint
type RejectRequest struct {
	Reason *string `json:"reason,omitempty"`
}
