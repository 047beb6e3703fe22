package dashboard

import (
	"context"
	"encoding/json"
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
	"github.com/communityhours/hours-dashboard/internal/dashboard/model"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// MockUserSource is a mock implementation of UserSource
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
	boardAdmin = utils.Principal{Subject: "b1", Role: constants.RoleBoardAdmin, SessionID: "sess-b"}
	northAdmin = utils.Principal{Subject: "a1", Role: constants.RoleSchoolAdmin, SchoolID: "north-high", SessionID: "sess-a"}
	student    = utils.Principal{Subject: "st", Role: constants.RoleStudent, SessionID: "sess-s"}
	fixedNow   = time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	anyContext = mock.Anything
)

func newTestService(users UserSource) *dashboardService {
	s := newDashboardService(users, authguard.NewGuard(3, time.Hour))
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestBoardDashboard(t *testing.T) {
	source := new(MockUserSource)
	source.On("GetAllUsers", anyContext).Return(fixtureUsers(), nil)

	dash, svcErr := newTestService(source).BoardDashboard(context.Background(), boardAdmin, "")
	require.Nil(t, svcErr)

	assert.Equal(t, 3, dash.Summary.TotalUsers)
	assert.Equal(t, 5, dash.Summary.TotalSubmissions)
	assert.Equal(t, 2, dash.Summary.TotalSubmittedSubmissions)
	assert.Equal(t, 24.0, dash.Summary.TotalHours)
	assert.Equal(t, 2, dash.TotalSchools)
	assert.Equal(t, 2, dash.PendingCount)
	assert.Equal(t, 5, dash.RecentCount)
	source.AssertExpectations(t)
}

func TestBoardDashboard_SearchNarrowsSchoolsOnly(t *testing.T) {
	source := new(MockUserSource)
	source.On("GetAllUsers", anyContext).Return(fixtureUsers(), nil)

	dash, svcErr := newTestService(source).BoardDashboard(context.Background(), boardAdmin, "south")
	require.Nil(t, svcErr)

	require.Len(t, dash.Schools, 1)
	assert.Equal(t, 2, dash.TotalSchools)
	assert.Equal(t, 3, dash.Summary.TotalUsers)
}

func TestBoardDashboard_RejectsSchoolAdmin(t *testing.T) {
	source := new(MockUserSource)

	_, svcErr := newTestService(source).BoardDashboard(context.Background(), northAdmin, "")
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.ForbiddenError.Code, svcErr.Code)
	source.AssertNotCalled(t, "GetAllUsers", anyContext)
}

func TestSchoolDashboard_SchoolAdminSeesOwnSchool(t *testing.T) {
	source := new(MockUserSource)
	source.On("GetAllUsers", anyContext).Return(fixtureUsers(), nil)

	dash, svcErr := newTestService(source).SchoolDashboard(context.Background(), northAdmin, "", "")
	require.Nil(t, svcErr)

	assert.Equal(t, "north-high", dash.SchoolID)
	assert.Equal(t, 2, dash.Summary.TotalUsers)
	assert.Len(t, dash.Students, 2)
	assert.Equal(t, 2, dash.PendingCount)
}

func TestSchoolDashboard_SchoolAdminCannotReadOtherSchool(t *testing.T) {
	source := new(MockUserSource)

	_, svcErr := newTestService(source).SchoolDashboard(context.Background(), northAdmin, "South Secondary", "")
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.ForbiddenError.Code, svcErr.Code)
	source.AssertNotCalled(t, "GetAllUsers", anyContext)
}

func TestSchoolDashboard_BoardAdminChoosesSchool(t *testing.T) {
	source := new(MockUserSource)
	source.On("GetAllUsers", anyContext).Return(fixtureUsers(), nil)
	svc := newTestService(source)

	dash, svcErr := svc.SchoolDashboard(context.Background(), boardAdmin, "South Secondary", "")
	require.Nil(t, svcErr)
	assert.Equal(t, 1, dash.Summary.TotalUsers)

	_, svcErr = svc.SchoolDashboard(context.Background(), boardAdmin, "", "")
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.ValidationError.Code, svcErr.Code)
}

func TestSchoolDashboard_StudentForbidden(t *testing.T) {
	_, svcErr := newTestService(new(MockUserSource)).SchoolDashboard(context.Background(), student, "", "")
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.ForbiddenError.Code, svcErr.Code)
}

func TestBoardDashboard_BackendFailures(t *testing.T) {
	source := new(MockUserSource)
	source.On("GetAllUsers", anyContext).Return(nil, &backend.APIError{StatusCode: 401, Message: "No token provided"})
	svc := newTestService(source)

	for i := 0; i < 2; i++ {
		_, svcErr := svc.BoardDashboard(context.Background(), boardAdmin, "")
		require.NotNil(t, svcErr)
		assert.True(t, svcErr.Retryable)
		assert.False(t, svcErr.SignOut)
	}

	_, svcErr := svc.BoardDashboard(context.Background(), boardAdmin, "")
	require.NotNil(t, svcErr)
	assert.True(t, svcErr.SignOut)
}

func TestHandler_SchoolDashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	source := new(MockUserSource)
	source.On("GetAllUsers", anyContext).Return(fixtureUsers(), nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyPrincipal, northAdmin)
		c.Next()
	})
	Initialize(r.Group("/api/v1"), source, authguard.NewGuard(3, time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/school?search=jane", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var dash model.SchoolDashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
	assert.Equal(t, "north-high", dash.SchoolID)
	require.Len(t, dash.Students, 1)
	assert.Equal(t, "JD", dash.Students[0].Initials)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/board", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
