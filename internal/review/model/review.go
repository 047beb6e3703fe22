package model

import (
	"encoding/json"

	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/formatter"
)

// Action is an administrator's decision on a submission
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// IsValid reports whether a is approve or reject
func (a Action) IsValid() bool {
	return a == ActionApprove || a == ActionReject
}

// Decision is one bulk approve or reject request
type Decision struct {
	Action Action
	IDs    []string
	Reason string
}

// DecisionRequest is the body of the bulk and single decision endpoints
type DecisionRequest struct {
	SubmissionIDs []string `json:"submissionIds"`
	Reason        string   `json:"reason"`
}

// BulkResult is the outcome of a bulk decision. Results holds the backend's
// per-submission results unchanged.
type BulkResult struct {
	Dispatched int                `json:"dispatched"`
	Results    []json.RawMessage  `json:"results"`
	User       *backendmodel.User `json:"user,omitempty"`
}

// DecisionResult is the outcome of a single decision
type DecisionResult struct {
	Submission *backendmodel.Submission       `json:"submission"`
	AuditTrail []backendmodel.AuditTrailEntry `json:"auditTrail"`
}

// UserDetail is a student with the submissions an administrator may select
type UserDetail struct {
	User            *backendmodel.User `json:"user"`
	TotalHours      float64            `json:"totalHours"`
	Stats           formatter.Stats    `json:"stats"`
	SelectableIDs   []string           `json:"selectableIds"`
	StudentSignedOn string             `json:"studentSignedOn"`
	ParentSignedOn  string             `json:"parentSignedOn"`
}

// SubmissionDetail is one submission with its decision state. The dates are
// display strings, "N/A" when the backend has none.
type SubmissionDetail struct {
	Submission      *backendmodel.Submission `json:"submission"`
	CanMakeDecision bool                     `json:"canMakeDecision"`
	SubmittedOn     string                   `json:"submittedOn"`
	CreatedOn       string                   `json:"createdOn"`
}
