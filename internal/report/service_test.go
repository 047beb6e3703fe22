package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/communityhours/hours-dashboard/internal/authguard"
	"github.com/communityhours/hours-dashboard/internal/backend"
	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/report/model"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// MockReportStore is a mock implementation of ReportStore
type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) Create(ctx context.Context, snapshot *model.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockReportStore) GetByID(ctx context.Context, id string) (*model.Snapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Snapshot), args.Error(1)
}

func (m *MockReportStore) List(ctx context.Context, limit, offset int) ([]model.Snapshot, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Snapshot), args.Int(1), args.Error(2)
}

// MockUserSource is a mock implementation of dashboard.UserSource
type MockUserSource struct {
	mock.Mock
}

func (m *MockUserSource) GetAllUsers(ctx context.Context) ([]backendmodel.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]backendmodel.User), args.Error(1)
}

var (
	boardAdmin  = utils.Principal{Subject: "board-1", Role: constants.RoleBoardAdmin, SessionID: "sess-b"}
	schoolAdmin = utils.Principal{Subject: "a1", Role: constants.RoleSchoolAdmin, SchoolID: "north-high", SessionID: "sess-a"}
)

func reportUsers() []backendmodel.User {
	north := "north-high"
	h := func(v float64) *float64 { return &v }
	return []backendmodel.User{
		{ID: "u1", SchoolID: &north, Submissions: []backendmodel.Submission{
			{ID: "s1", Status: backendmodel.StatusSubmitted, Hours: h(4)},
			{ID: "s2", Status: backendmodel.StatusApproved, Hours: h(6)},
		}},
		{ID: "u2", Submissions: []backendmodel.Submission{
			{ID: "s3", Status: backendmodel.StatusDraft, Hours: nil},
		}},
	}
}

func newTestService(store ReportStore, users *MockUserSource) *reportService {
	s := newReportService(store, users, authguard.NewGuard(3, time.Hour))
	s.now = func() int64 { return 1735689600000 }
	return s
}

func TestGenerate(t *testing.T) {
	store := new(MockReportStore)
	users := new(MockUserSource)
	users.On("GetAllUsers", mock.Anything).Return(reportUsers(), nil)
	store.On("Create", mock.Anything, mock.AnythingOfType("*model.Snapshot")).Return(nil)

	snapshot, svcErr := newTestService(store, users).Generate(context.Background(), boardAdmin)
	require.Nil(t, svcErr)

	assert.True(t, utils.IsValidUUID(snapshot.ID))
	assert.Equal(t, model.ReportTypeOnSIS, snapshot.ReportType)
	assert.Equal(t, "board-1", snapshot.GeneratedBy)
	assert.Equal(t, int64(1735689600000), snapshot.GeneratedTime)
	assert.Equal(t, "2025-01-01T00:00:00.000Z", snapshot.GeneratedAt)
	assert.Equal(t, 2, snapshot.TotalUsers)
	assert.Equal(t, 3, snapshot.TotalSubmissions)
	assert.Equal(t, 1, snapshot.TotalSubmitted)
	assert.Equal(t, 10.0, snapshot.TotalHours)
	require.Len(t, snapshot.Schools, 2)
	assert.Equal(t, "Unknown School", snapshot.Schools[0].SchoolID)
	assert.Equal(t, snapshot.ID, snapshot.Schools[1].ReportID)
	store.AssertExpectations(t)
}

func TestGenerate_SchoolAdminForbidden(t *testing.T) {
	store := new(MockReportStore)
	users := new(MockUserSource)

	_, svcErr := newTestService(store, users).Generate(context.Background(), schoolAdmin)
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.ForbiddenError.Code, svcErr.Code)
	users.AssertNotCalled(t, "GetAllUsers", mock.Anything)
}

func TestGenerate_BackendUnavailable(t *testing.T) {
	store := new(MockReportStore)
	users := new(MockUserSource)
	users.On("GetAllUsers", mock.Anything).Return(nil, &backend.NetworkError{URL: "http://x", Err: errors.New("refused")})

	_, svcErr := newTestService(store, users).Generate(context.Background(), boardAdmin)
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.UpstreamUnavailableError.Code, svcErr.Code)
	assert.True(t, svcErr.Retryable)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_StoreFailure(t *testing.T) {
	store := new(MockReportStore)
	users := new(MockUserSource)
	users.On("GetAllUsers", mock.Anything).Return(reportUsers(), nil)
	store.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, svcErr := newTestService(store, users).Generate(context.Background(), boardAdmin)
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.DatabaseError.Code, svcErr.Code)
}

func TestGet(t *testing.T) {
	const (
		storedID  = "3f2b8c1e-9a4d-4e5f-8b6a-1c2d3e4f5a6b"
		missingID = "00000000-0000-4000-8000-000000000000"
	)
	store := new(MockReportStore)
	store.On("GetByID", mock.Anything, storedID).Return(&model.Snapshot{ID: storedID, GeneratedTime: 1736935200000}, nil)
	store.On("GetByID", mock.Anything, missingID).Return(nil, ErrSnapshotNotFound)
	svc := newTestService(store, new(MockUserSource))

	snapshot, svcErr := svc.Get(context.Background(), boardAdmin, storedID)
	require.Nil(t, svcErr)
	assert.Equal(t, storedID, snapshot.ID)
	assert.Equal(t, "2025-01-15T10:00:00.000Z", snapshot.GeneratedAt)

	_, svcErr = svc.Get(context.Background(), boardAdmin, missingID)
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.ResourceNotFoundError.Code, svcErr.Code)
}

func TestGet_RejectsMalformedID(t *testing.T) {
	store := new(MockReportStore)
	svc := newTestService(store, new(MockUserSource))

	_, svcErr := svc.Get(context.Background(), boardAdmin, "not-a-uuid")
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.InvalidRequestError.Code, svcErr.Code)
	store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestList_ClampsLimit(t *testing.T) {
	store := new(MockReportStore)
	store.On("List", mock.Anything, 20, 0).Return([]model.Snapshot{{ID: "r1"}}, 1, nil)
	store.On("List", mock.Anything, 100, 10).Return([]model.Snapshot{}, 1, nil)
	svc := newTestService(store, new(MockUserSource))

	page, svcErr := svc.List(context.Background(), boardAdmin, 0, 0)
	require.Nil(t, svcErr)
	assert.Equal(t, 20, page.Limit)
	assert.Len(t, page.Data, 1)

	page, svcErr = svc.List(context.Background(), boardAdmin, 500, 10)
	require.Nil(t, svcErr)
	assert.Equal(t, 100, page.Limit)

	_, svcErr = svc.List(context.Background(), boardAdmin, -1, 0)
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.ValidationError.Code, svcErr.Code)
}

func TestHandler_GenerateReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := new(MockReportStore)
	users := new(MockUserSource)
	users.On("GetAllUsers", mock.Anything).Return(reportUsers(), nil)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyPrincipal, boardAdmin)
		c.Next()
	})
	registerRoutes(r.Group("/api/v1"), newReportHandler(newTestService(store, users)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/reports/board", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var snapshot model.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, 2, snapshot.TotalUsers)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports?limit=x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
