package dashboard

import (
	"context"
	"time"

	"github.com/communityhours/hours-dashboard/internal/authguard"
	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/dashboard/model"
	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// UserSource is the backend call the dashboards are built from
type UserSource interface {
	GetAllUsers(ctx context.Context) ([]backendmodel.User, error)
}

// DashboardServiceInterface defines the contract for the role-scoped dashboards
type DashboardServiceInterface interface {
	BoardDashboard(ctx context.Context, principal utils.Principal, search string) (*model.BoardDashboard, *serviceerror.ServiceError)
	SchoolDashboard(ctx context.Context, principal utils.Principal, schoolID, search string) (*model.SchoolDashboard, *serviceerror.ServiceError)
}

// dashboardService implements the DashboardServiceInterface
type dashboardService struct {
	users UserSource
	guard *authguard.Guard
	now   func() time.Time
}

// newDashboardService creates a new dashboard service
func newDashboardService(users UserSource, guard *authguard.Guard) *dashboardService {
	return &dashboardService{
		users: users,
		guard: guard,
		now:   time.Now,
	}
}

// BoardDashboard builds the cross-school view for a board administrator
func (s *dashboardService) BoardDashboard(
	ctx context.Context,
	principal utils.Principal,
	search string,
) (*model.BoardDashboard, *serviceerror.ServiceError) {
	if !principal.IsBoardAdmin() {
		return nil, serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"only board administrators may view the board dashboard")
	}

	users, err := s.users.GetAllUsers(ctx)
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to load users"); svcErr != nil {
		return nil, svcErr
	}

	schools := RollupSchools(users)
	now := s.now()
	return &model.BoardDashboard{
		Summary:      Summarize(users),
		TotalSchools: len(schools),
		Schools:      SearchSchools(schools, search),
		PendingCount: PendingCount(users),
		RecentCount:  RecentCount(users, now, RecentWindowDays),
		GeneratedAt:  now,
	}, nil
}

// SchoolDashboard builds the view of one school. School administrators always
// get their own school; board administrators choose one with schoolID.
func (s *dashboardService) SchoolDashboard(
	ctx context.Context,
	principal utils.Principal,
	schoolID, search string,
) (*model.SchoolDashboard, *serviceerror.ServiceError) {
	schoolID, svcErr := resolveSchool(principal, schoolID)
	if svcErr != nil {
		return nil, svcErr
	}

	users, err := s.users.GetAllUsers(ctx)
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to load users"); svcErr != nil {
		return nil, svcErr
	}

	students := filterBySchool(users, schoolID)
	now := s.now()
	return &model.SchoolDashboard{
		SchoolID:     schoolID,
		Summary:      Summarize(students),
		Students:     StudentCards(SearchUsers(students, search)),
		PendingCount: PendingCount(students),
		RecentCount:  RecentCount(students, now, RecentWindowDays),
		GeneratedAt:  now,
	}, nil
}

func resolveSchool(principal utils.Principal, requested string) (string, *serviceerror.ServiceError) {
	if principal.IsBoardAdmin() {
		if requested == "" {
			return "", serviceerror.CustomServiceError(serviceerror.ValidationError, "schoolId is required")
		}
		return requested, nil
	}
	if !principal.IsAdmin() {
		return "", serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"only administrators may view school dashboards")
	}
	if principal.SchoolID == "" {
		return "", serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"no school is assigned to this administrator")
	}
	if requested != "" && requested != principal.SchoolID {
		return "", serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"school administrators may only view their own school")
	}
	return principal.SchoolID, nil
}
