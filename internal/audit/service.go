package audit

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/communityhours/hours-dashboard/internal/audit/model"
	"github.com/communityhours/hours-dashboard/internal/authguard"
	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

const (
	scopeBoard  = "board"
	scopeSchool = "school"
)

// AuditSource is the set of backend calls the audit views are built from
type AuditSource interface {
	GetRecentAuditActivity(ctx context.Context, limit int) ([]backendmodel.RecentActivityEntry, error)
	GetAuditStatistics(ctx context.Context, start, end time.Time) (*backendmodel.AuditStatistics, error)
	GetSubmissionAuditTrail(ctx context.Context, id string) ([]backendmodel.AuditTrailEntry, error)
}

// Limits holds the feed sizes used when the caller does not pass one
type Limits struct {
	BoardActivity   int
	SchoolActivity  int
	LeaderboardSize int
}

// AuditServiceInterface defines the contract for audit reporting operations
type AuditServiceInterface interface {
	GetDashboard(ctx context.Context, principal utils.Principal, query model.Query) (*model.Dashboard, *serviceerror.ServiceError)
	GetAuditTrail(ctx context.Context, principal utils.Principal, submissionID string) ([]backendmodel.AuditTrailEntry, *serviceerror.ServiceError)
	ExportActivity(ctx context.Context, principal utils.Principal, query model.Query) ([]backendmodel.RecentActivityEntry, *serviceerror.ServiceError)
}

// auditService implements the AuditServiceInterface
type auditService struct {
	source AuditSource
	guard  *authguard.Guard
	limits Limits
	now    func() time.Time
}

// newAuditService creates a new audit service
func newAuditService(source AuditSource, guard *authguard.Guard, limits Limits) *auditService {
	return &auditService{
		source: source,
		guard:  guard,
		limits: limits,
		now:    time.Now,
	}
}

// GetDashboard fetches the statistics and the activity feed together and
// derives the per-school rollup from the feed
func (s *auditService) GetDashboard(
	ctx context.Context,
	principal utils.Principal,
	query model.Query,
) (*model.Dashboard, *serviceerror.ServiceError) {
	scope, svcErr := scopeFor(principal)
	if svcErr != nil {
		return nil, svcErr
	}
	dateRange, limit, svcErr := s.validateQuery(scope, query)
	if svcErr != nil {
		return nil, svcErr
	}

	var (
		stats *backendmodel.AuditStatistics
		feed  []backendmodel.RecentActivityEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.source.GetAuditStatistics(gctx, dateRange.Start, dateRange.End)
		return err
	})
	g.Go(func() error {
		var err error
		feed, err = s.source.GetRecentAuditActivity(gctx, limit)
		return err
	})
	err := g.Wait()
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to load audit data"); svcErr != nil {
		return nil, svcErr
	}

	feed = restrictToSchool(feed, principal)
	schools := RollupBySchool(feed)

	return &model.Dashboard{
		Scope:            scope,
		DateRange:        dateRange,
		Filter:           query.Filter,
		Statistics:       stats,
		Activity:         describeAll(Filter(feed, query.Filter), scope == scopeBoard),
		Schools:          schools,
		Leaderboard:      top(schools, s.limits.LeaderboardSize),
		AvailableSchools: AvailableSchools(feed),
	}, nil
}

// GetAuditTrail returns the ordered status history of one submission
func (s *auditService) GetAuditTrail(
	ctx context.Context,
	principal utils.Principal,
	submissionID string,
) ([]backendmodel.AuditTrailEntry, *serviceerror.ServiceError) {
	if submissionID == "" {
		return nil, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, "submission ID is required")
	}

	trail, err := s.source.GetSubmissionAuditTrail(ctx, submissionID)
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to load audit trail"); svcErr != nil {
		return nil, svcErr
	}
	return trail, nil
}

// ExportActivity returns the filtered feed without the statistics
func (s *auditService) ExportActivity(
	ctx context.Context,
	principal utils.Principal,
	query model.Query,
) ([]backendmodel.RecentActivityEntry, *serviceerror.ServiceError) {
	scope, svcErr := scopeFor(principal)
	if svcErr != nil {
		return nil, svcErr
	}
	_, limit, svcErr := s.validateQuery(scope, query)
	if svcErr != nil {
		return nil, svcErr
	}

	feed, err := s.source.GetRecentAuditActivity(ctx, limit)
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to export audit data"); svcErr != nil {
		return nil, svcErr
	}
	return Filter(restrictToSchool(feed, principal), query.Filter), nil
}

func scopeFor(principal utils.Principal) (string, *serviceerror.ServiceError) {
	if principal.IsBoardAdmin() {
		return scopeBoard, nil
	}
	if !principal.IsAdmin() {
		return "", serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"only administrators may view audit data")
	}
	if principal.SchoolID == "" {
		return "", serviceerror.CustomServiceError(serviceerror.ForbiddenError,
			"no school is assigned to this administrator")
	}
	return scopeSchool, nil
}

func (s *auditService) validateQuery(scope string, query model.Query) (utils.DateRange, int, *serviceerror.ServiceError) {
	dateRange, err := utils.ParseDateRange(query.Range, query.Start, query.End, s.now())
	if err != nil {
		return utils.DateRange{}, 0, serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}
	if err := validateFilter(query.Filter); err != nil {
		return utils.DateRange{}, 0, serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}

	limit := query.Limit
	if limit < 0 {
		return utils.DateRange{}, 0, serviceerror.CustomServiceError(serviceerror.ValidationError,
			"limit must not be negative")
	}
	if limit == 0 {
		limit = s.limits.BoardActivity
		if scope == scopeSchool {
			limit = s.limits.SchoolActivity
		}
	}
	return dateRange, limit, nil
}

// restrictToSchool keeps a school administrator's own school. Board
// administrators see the whole feed.
func restrictToSchool(feed []backendmodel.RecentActivityEntry, principal utils.Principal) []backendmodel.RecentActivityEntry {
	if principal.IsBoardAdmin() {
		return feed
	}
	restricted := make([]backendmodel.RecentActivityEntry, 0, len(feed))
	for _, e := range feed {
		if e.School() == principal.SchoolID {
			restricted = append(restricted, e)
		}
	}
	return restricted
}
