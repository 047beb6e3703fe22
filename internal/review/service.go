package review

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/communityhours/hours-dashboard/internal/authguard"
	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/formatter"
	"github.com/communityhours/hours-dashboard/internal/review/model"
	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/log"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// ReviewBackend is the set of backend calls used to review submissions
type ReviewBackend interface {
	GetUser(ctx context.Context, id string) (*backendmodel.User, error)
	GetSubmission(ctx context.Context, id string) (*backendmodel.Submission, error)
	ApproveSubmission(ctx context.Context, id string) (*backendmodel.Submission, error)
	RejectSubmission(ctx context.Context, id string, reason *string) (*backendmodel.Submission, error)
	BulkApproveSubmissions(ctx context.Context, ids []string) ([]json.RawMessage, error)
	BulkRejectSubmissions(ctx context.Context, ids []string, reason *string) ([]json.RawMessage, error)
	GetSubmissionAuditTrail(ctx context.Context, id string) ([]backendmodel.AuditTrailEntry, error)
}

// ReviewServiceInterface defines the contract for submission review operations
type ReviewServiceInterface interface {
	GetUser(ctx context.Context, principal utils.Principal, userID string) (*model.UserDetail, *serviceerror.ServiceError)
	GetSubmission(ctx context.Context, principal utils.Principal, submissionID string) (*model.SubmissionDetail, *serviceerror.ServiceError)
	BulkDecide(ctx context.Context, principal utils.Principal, userID string, decision model.Decision) (*model.BulkResult, *serviceerror.ServiceError)
	Decide(ctx context.Context, principal utils.Principal, submissionID string, action model.Action, reason string) (*model.DecisionResult, *serviceerror.ServiceError)
}

// reviewService implements the ReviewServiceInterface
type reviewService struct {
	backend ReviewBackend
	guard   *authguard.Guard
}

// newReviewService creates a new review service
func newReviewService(backend ReviewBackend, guard *authguard.Guard) *reviewService {
	return &reviewService{
		backend: backend,
		guard:   guard,
	}
}

// GetUser returns a student with the ids an administrator may select
func (s *reviewService) GetUser(
	ctx context.Context,
	principal utils.Principal,
	userID string,
) (*model.UserDetail, *serviceerror.ServiceError) {
	user, svcErr := s.loadUser(ctx, principal, userID)
	if svcErr != nil {
		return nil, svcErr
	}
	return &model.UserDetail{
		User:          user,
		TotalHours:    formatter.TotalHours(user.Submissions),
		Stats:         formatter.SubmissionStats(user.Submissions),
		SelectableIDs: SelectableIDs(*user),

		StudentSignedOn: formatter.FormatOptionalDate(user.StudentSignatureDate),
		ParentSignedOn:  formatter.FormatOptionalDate(user.ParentSignatureDate),
	}, nil
}

// GetSubmission returns one submission and whether it can be decided
func (s *reviewService) GetSubmission(
	ctx context.Context,
	principal utils.Principal,
	submissionID string,
) (*model.SubmissionDetail, *serviceerror.ServiceError) {
	if submissionID == "" {
		return nil, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, "submission ID is required")
	}

	submission, err := s.backend.GetSubmission(ctx, submissionID)
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to load submission"); svcErr != nil {
		return nil, svcErr
	}
	if !principal.IsBoardAdmin() {
		if svcErr := s.checkOwner(ctx, principal, submission); svcErr != nil {
			return nil, svcErr
		}
	}
	return &model.SubmissionDetail{
		Submission:      submission,
		CanMakeDecision: submission.CanMakeDecision(),
		SubmittedOn:     formatter.FormatOptionalDate(submission.SubmissionDate),
		CreatedOn:       formatter.FormatOptionalDate(&submission.CreatedAt),
	}, nil
}

// BulkDecide approves or rejects the selected submissions of one user with a
// single backend request and then reloads the user. Nothing is retried.
func (s *reviewService) BulkDecide(
	ctx context.Context,
	principal utils.Principal,
	userID string,
	decision model.Decision,
) (*model.BulkResult, *serviceerror.ServiceError) {
	if !decision.Action.IsValid() {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError,
			fmt.Sprintf("unknown decision: %s", decision.Action))
	}
	if len(decision.IDs) == 0 {
		return &model.BulkResult{Results: []json.RawMessage{}}, nil
	}

	user, svcErr := s.loadUser(ctx, principal, userID)
	if svcErr != nil {
		return nil, svcErr
	}
	selection, err := NewSelection(*user, decision.IDs)
	if err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}

	var results []json.RawMessage
	switch decision.Action {
	case model.ActionApprove:
		results, err = s.backend.BulkApproveSubmissions(ctx, selection)
	case model.ActionReject:
		results, err = s.backend.BulkRejectSubmissions(ctx, selection, normalizeReason(decision.Reason))
	}
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to "+string(decision.Action)+" submissions"); svcErr != nil {
		return nil, svcErr
	}

	log.GetLogger().WithFields(map[string]interface{}{
		"userId":      userID,
		"action":      decision.Action,
		"submissions": len(selection),
		"performedBy": principal.Subject,
	}).Info("Bulk decision dispatched")

	refreshed, err := s.backend.GetUser(ctx, userID)
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to reload user"); svcErr != nil {
		return nil, svcErr
	}
	return &model.BulkResult{
		Dispatched: len(selection),
		Results:    results,
		User:       refreshed,
	}, nil
}

// Decide approves or rejects one submission and returns its refreshed history
func (s *reviewService) Decide(
	ctx context.Context,
	principal utils.Principal,
	submissionID string,
	action model.Action,
	reason string,
) (*model.DecisionResult, *serviceerror.ServiceError) {
	if !action.IsValid() {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError,
			fmt.Sprintf("unknown decision: %s", action))
	}

	detail, svcErr := s.GetSubmission(ctx, principal, submissionID)
	if svcErr != nil {
		return nil, svcErr
	}
	if !detail.CanMakeDecision {
		return nil, serviceerror.CustomServiceError(serviceerror.ConflictError,
			fmt.Sprintf("submission %s is %s and cannot be decided", submissionID, detail.Submission.Status))
	}

	var (
		decided *backendmodel.Submission
		err     error
	)
	switch action {
	case model.ActionApprove:
		decided, err = s.backend.ApproveSubmission(ctx, submissionID)
	case model.ActionReject:
		decided, err = s.backend.RejectSubmission(ctx, submissionID, normalizeReason(reason))
	}
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to "+string(action)+" submission"); svcErr != nil {
		return nil, svcErr
	}

	// The decision already happened; a failed history reload only leaves the trail empty.
	trail, err := s.backend.GetSubmissionAuditTrail(ctx, submissionID)
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to reload audit trail"); svcErr != nil {
		trail = []backendmodel.AuditTrailEntry{}
	}
	return &model.DecisionResult{
		Submission: decided,
		AuditTrail: trail,
	}, nil
}

// checkOwner keeps school administrators to submissions of their own students
func (s *reviewService) checkOwner(
	ctx context.Context,
	principal utils.Principal,
	submission *backendmodel.Submission,
) *serviceerror.ServiceError {
	if submission.StudentID == "" {
		return serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"submission has no owning student")
	}
	owner, svcErr := s.loadUser(ctx, principal, submission.StudentID)
	if svcErr != nil {
		return svcErr
	}
	if _, ok := owner.FindSubmission(submission.ID); !ok {
		return serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			fmt.Sprintf("submission %s does not belong to student %s", submission.ID, owner.ID))
	}
	return nil
}

// loadUser fetches a user and keeps school administrators within their school
func (s *reviewService) loadUser(
	ctx context.Context,
	principal utils.Principal,
	userID string,
) (*backendmodel.User, *serviceerror.ServiceError) {
	if userID == "" {
		return nil, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, "user ID is required")
	}

	user, err := s.backend.GetUser(ctx, userID)
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to load user"); svcErr != nil {
		return nil, svcErr
	}
	if !principal.IsBoardAdmin() && user.School() != principal.SchoolID {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"school administrators may only review students of their own school")
	}
	return user, nil
}
