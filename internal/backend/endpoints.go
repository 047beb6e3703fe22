package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// GetAllUsers lists all users with their nested submissions
func (c *Client) GetAllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users/all", nil, &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns a single user with submissions
func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

// GetSubmission returns a single submission
func (c *Client) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	if err := c.do(ctx, http.MethodGet, "/submissions/"+url.PathEscape(id), nil, &submission); err != nil {
		return nil, fmt.Errorf("failed to get submission %s: %w", id, err)
	}
	return &submission, nil
}

// ApproveSubmission approves one submission and returns the server's copy
func (c *Client) ApproveSubmission(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	path := fmt.Sprintf("/submissions/%s/approve", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, nil, &submission); err != nil {
		return nil, fmt.Errorf("failed to approve submission %s: %w", id, err)
	}
	return &submission, nil
}

// RejectSubmission rejects one submission with an optional reason
func (c *Client) RejectSubmission(ctx context.Context, id string, reason *string) (*model.Submission, error) {
	var submission model.Submission
	path := fmt.Sprintf("/submissions/%s/reject", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, model.RejectRequest{Reason: reason}, &submission); err != nil {
		return nil, fmt.Errorf("failed to reject submission %s: %w", id, err)
	}
	return &submission, nil
}

// BulkApproveSubmissions approves all ids in one request. The backend's
// per-id results are returned undecoded.
func (c *Client) BulkApproveSubmissions(ctx context.Context, ids []string) ([]json.RawMessage, error) {
	var results []json.RawMessage
	body := model.BulkDecisionRequest{SubmissionIDs: ids}
	if err := c.do(ctx, http.MethodPatch, "/submissions/bulk/approve", body, &results); err != nil {
		return nil, fmt.Errorf("failed to bulk approve %d submissions: %w", len(ids), err)
	}
	return results, nil
}

// BulkRejectSubmissions rejects all ids in one request
func (c *Client) BulkRejectSubmissions(ctx context.Context, ids []string, reason *string) ([]json.RawMessage, error) {
	var results []json.RawMessage
	body := model.BulkDecisionRequest{SubmissionIDs: ids, Reason: reason}
	if err := c.do(ctx, http.MethodPatch, "/submissions/bulk/reject", body, &results); err != nil {
		return nil, fmt.Errorf("failed to bulk reject %d submissions: %w", len(ids), err)
	}
	return results, nil
}

// GetSubmissionAuditTrail returns the ordered audit entries of one submission
func (c *Client) GetSubmissionAuditTrail(ctx context.Context, id string) ([]model.AuditTrailEntry, error) {
	var entries []model.AuditTrailEntry
	path := fmt.Sprintf("/submissions/%s/audit-trail", url.PathEscape(id))
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to get audit trail for %s: %w", id, err)
	}
	return entries, nil
}

// GetRecentAuditActivity returns up to limit recent cross-school audit events
func (c *Client) GetRecentAuditActivity(ctx context.Context, limit int) ([]model.RecentActivityEntry, error) {
	var entries []model.RecentActivityEntry
	path := "/submissions/audit/recent-activity?limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}
	return entries, nil
}

// GetAuditStatistics returns the backend's aggregated counts for a date range
func (c *Client) GetAuditStatistics(ctx context.Context, start, end time.Time) (*model.AuditStatistics, error) {
	query := url.Values{}
	query.Set("startDate", utils.ISO(start))
	query.Set("endDate", utils.ISO(end))

	var stats model.AuditStatistics
	if err := c.do(ctx, http.MethodGet, "/submissions/audit/statistics?"+query.Encode(), nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to get audit statistics: %w", err)
	}
	return &stats, nil
}
