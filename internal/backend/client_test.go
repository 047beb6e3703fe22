package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/system/config"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenProvider) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.BackendConfig{
		BaseURL:      server.URL,
		Timeout:      5 * time.Second,
		TokenTimeout: 50 * time.Millisecond,
	}
	return NewClient(cfg, tokens, quietLogger())
}

func TestClient_ForwardsCallerToken(t *testing.T) {
	var gotAuth, gotCorrelation string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get("X-Correlation-ID")
		assert.Equal(t, "/users/all", r.URL.Path)
		w.Write([]byte(`[{"id":"u1","name":"Jane Doe","Submissions":[{"id":"s1","hours":2.5,"status":"SUBMITTED"}]}]`))
	}, nil)

	ctx := utils.WithBearerToken(context.Background(), "caller-token")
	ctx = middleware.WithCorrelationID(ctx, "corr-1")

	users, err := client.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Bearer caller-token", gotAuth)
	assert.Equal(t, "corr-1", gotCorrelation)
	assert.Equal(t, model.StatusSubmitted, users[0].Submissions[0].Status)
	assert.Equal(t, 2.5, users[0].Submissions[0].HoursOrZero())
}

func TestClient_TokenTimeoutProceedsWithoutCredentials(t *testing.T) {
	var gotAuth string
	called := false
	slowProvider := func(ctx context.Context) (string, error) {
		select {
		case <-time.After(time.Second):
			return "late-token", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"s1","status":"DRAFT"}`))
	}, slowProvider)

	start := time.Now()
	submission, err := client.GetSubmission(context.Background(), "s1")
	require.NoError(t, err)

	assert.True(t, called)
	assert.Empty(t, gotAuth)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
	assert.Equal(t, model.StatusDraft, submission.Status)
}

func TestClient_ProviderErrorProceedsWithoutCredentials(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, func(context.Context) (string, error) {
		return "", errors.New("session not loaded")
	})

	_, err := client.GetRecentAuditActivity(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_BulkApproveBody(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/submissions/bulk/approve", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`[{"id":"s1","status":"APPROVED"},{"id":"s2","status":"APPROVED"}]`))
	}, StaticToken("svc"))

	results, err := client.BulkApproveSubmissions(context.Background(), []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, []interface{}{"s1", "s2"}, body["submissionIds"])
	_, hasReason := body["reason"]
	assert.False(t, hasReason)
}

func TestClient_StatisticsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/audit/statistics", r.URL.Path)
		assert.Equal(t, "2025-01-01T00:00:00.000Z", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2025-01-31T00:00:00.000Z", r.URL.Query().Get("endDate"))
		w.Write([]byte(`{"actionCounts":[{"action":"APPROVED","role":"SCHOOL_ADMIN","count":4}],
			"summary":{"totalActions":9,"totalSubmissions":3,"totalApprovals":4,"totalRejections":2}}`))
	}, nil)

	stats, err := client.GetAuditStatistics(context.Background(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 9, stats.Summary.TotalActions)
	assert.Equal(t, model.ActionApproved, stats.ActionCounts[0].Action)
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{name: "structured code", status: 401, body: `{"code":"TOKEN_EXPIRED","message":"Session expired"}`, wantCode: "TOKEN_EXPIRED", wantMessage: "Session expired"},
		{name: "message list", status: 400, body: `{"message":["hours must be positive","name required"]}`, wantMessage: "hours must be positive; name required"},
		{name: "error field only", status: 403, body: `{"error":"Forbidden"}`, wantMessage: "Forbidden"},
		{name: "plain text", status: 500, body: "boom", wantMessage: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, nil)

			_, err := client.GetUser(context.Background(), "u1")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(&config.BackendConfig{BaseURL: server.URL, TokenTimeout: time.Second}, nil, quietLogger())
	_, err := client.GetAllUsers(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}
