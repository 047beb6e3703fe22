package report

import (
	"context"
	"errors"

	"github.com/communityhours/hours-dashboard/internal/authguard"
	"github.com/communityhours/hours-dashboard/internal/dashboard"
	"github.com/communityhours/hours-dashboard/internal/report/model"
	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/log"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ReportServiceInterface defines the contract for board report operations
type ReportServiceInterface interface {
	Generate(ctx context.Context, principal utils.Principal) (*model.Snapshot, *serviceerror.ServiceError)
	Get(ctx context.Context, principal utils.Principal, id string) (*model.Snapshot, *serviceerror.ServiceError)
	List(ctx context.Context, principal utils.Principal, limit, offset int) (*model.ListResponse, *serviceerror.ServiceError)
}

// reportService implements the ReportServiceInterface
type reportService struct {
	store ReportStore
	users dashboard.UserSource
	guard *authguard.Guard
	now   func() int64
}

// newReportService creates a new report service
func newReportService(store ReportStore, users dashboard.UserSource, guard *authguard.Guard) *reportService {
	return &reportService{
		store: store,
		users: users,
		guard: guard,
		now:   utils.GetCurrentTimeMillis,
	}
}

// Generate computes the board totals from the current users and stores them
func (s *reportService) Generate(ctx context.Context, principal utils.Principal) (*model.Snapshot, *serviceerror.ServiceError) {
	if svcErr := requireBoardAdmin(principal); svcErr != nil {
		return nil, svcErr
	}

	users, err := s.users.GetAllUsers(ctx)
	if svcErr := s.guard.Observe(principal.SessionID, err, "failed to load users"); svcErr != nil {
		return nil, svcErr
	}

	summary := dashboard.Summarize(users)
	snapshot := &model.Snapshot{
		ID:                  utils.GenerateUUID(),
		ReportType:          model.ReportTypeOnSIS,
		GeneratedBy:         principal.Subject,
		GeneratedTime:       s.now(),
		TotalUsers:          summary.TotalUsers,
		TotalSubmissions:    summary.TotalSubmissions,
		TotalSubmitted:      summary.TotalSubmittedSubmissions,
		TotalHours:          summary.TotalHours,
		UsersWithSignatures: summary.UsersWithSignatures,
	}
	stampGeneratedAt(snapshot)
	for _, o := range dashboard.RollupSchools(users) {
		snapshot.Schools = append(snapshot.Schools, model.SchoolLine{
			ReportID:         snapshot.ID,
			SchoolID:         o.SchoolID,
			TotalStudents:    o.TotalStudents,
			TotalSubmissions: o.TotalSubmissions,
			TotalHours:       o.TotalHours,
		})
	}

	if err := s.store.Create(ctx, snapshot); err != nil {
		log.GetLogger().WithError(err).Error("Failed to store report snapshot")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to store report snapshot")
	}

	log.GetLogger().WithFields(map[string]interface{}{
		"reportId": snapshot.ID,
		"schools":  len(snapshot.Schools),
	}).Info("Board report generated")
	return snapshot, nil
}

// Get returns one stored snapshot
func (s *reportService) Get(ctx context.Context, principal utils.Principal, id string) (*model.Snapshot, *serviceerror.ServiceError) {
	if svcErr := requireBoardAdmin(principal); svcErr != nil {
		return nil, svcErr
	}
	if id == "" {
		return nil, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, "report ID is required")
	}
	if !utils.IsValidUUID(id) {
		return nil, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, "invalid report ID: "+id)
	}

	snapshot, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return nil, serviceerror.CustomServiceError(serviceerror.ResourceNotFoundError, "report not found: "+id)
		}
		log.GetLogger().WithError(err).Error("Failed to read report snapshot")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to read report snapshot")
	}
	stampGeneratedAt(snapshot)
	return snapshot, nil
}

// List returns a page of stored snapshots, newest first
func (s *reportService) List(
	ctx context.Context,
	principal utils.Principal,
	limit, offset int,
) (*model.ListResponse, *serviceerror.ServiceError) {
	if svcErr := requireBoardAdmin(principal); svcErr != nil {
		return nil, svcErr
	}
	if limit < 0 || offset < 0 {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, "limit and offset must not be negative")
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	snapshots, total, err := s.store.List(ctx, limit, offset)
	if err != nil {
		log.GetLogger().WithError(err).Error("Failed to list report snapshots")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to list report snapshots")
	}
	for i := range snapshots {
		stampGeneratedAt(&snapshots[i])
	}
	return &model.ListResponse{
		Data:       snapshots,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// stampGeneratedAt fills the ISO generation time from the stored millis
func stampGeneratedAt(snapshot *model.Snapshot) {
	snapshot.GeneratedAt = utils.ISO(utils.MillisToTime(snapshot.GeneratedTime))
}

func requireBoardAdmin(principal utils.Principal) *serviceerror.ServiceError {
	if principal.IsBoardAdmin() {
		return nil
	}
	return serviceerror.CustomServiceError(serviceerror.ForbiddenError, "only board administrators may manage reports")
}
