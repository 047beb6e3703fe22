package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/communityhours/hours-dashboard/internal/report/model"
	"github.com/communityhours/hours-dashboard/internal/system/database"
)

// ErrSnapshotNotFound is returned when no snapshot has the requested id
var ErrSnapshotNotFound = errors.New("report snapshot not found")

// ReportStore defines the persistence operations for board report snapshots
type ReportStore interface {
	Create(ctx context.Context, snapshot *model.Snapshot) error
	GetByID(ctx context.Context, id string) (*model.Snapshot, error)
	List(ctx context.Context, limit, offset int) ([]model.Snapshot, int, error)
}

// reportStore implements ReportStore on MySQL
type reportStore struct {
	db *database.DB
}

// newReportStore creates a new report store
func newReportStore(db *database.DB) ReportStore {
	return &reportStore{db: db}
}

// Create inserts the snapshot and its school lines in one transaction
func (s *reportStore) Create(ctx context.Context, snapshot *model.Snapshot) error {
	return s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO REPORT_SNAPSHOT (
				REPORT_ID, REPORT_TYPE, GENERATED_BY, GENERATED_TIME, TOTAL_USERS,
				TOTAL_SUBMISSIONS, TOTAL_SUBMITTED, TOTAL_HOURS, USERS_WITH_SIGNATURES
			) VALUES (
				:REPORT_ID, :REPORT_TYPE, :GENERATED_BY, :GENERATED_TIME, :TOTAL_USERS,
				:TOTAL_SUBMISSIONS, :TOTAL_SUBMITTED, :TOTAL_HOURS, :USERS_WITH_SIGNATURES
			)
		`
		if _, err := tx.NamedExecContext(ctx, query, snapshot); err != nil {
			return fmt.Errorf("failed to create report snapshot: %w", err)
		}

		lineQuery := `
			INSERT INTO REPORT_SCHOOL_LINE (
				REPORT_ID, SCHOOL_ID, TOTAL_STUDENTS, TOTAL_SUBMISSIONS, TOTAL_HOURS
			) VALUES (?, ?, ?, ?, ?)
		`
		for _, line := range snapshot.Schools {
			if _, err := tx.ExecContext(ctx, lineQuery,
				snapshot.ID,
				line.SchoolID,
				line.TotalStudents,
				line.TotalSubmissions,
				line.TotalHours,
			); err != nil {
				return fmt.Errorf("failed to create report line for school %s: %w", line.SchoolID, err)
			}
		}
		return nil
	})
}

// GetByID retrieves a snapshot with its school lines
func (s *reportStore) GetByID(ctx context.Context, id string) (*model.Snapshot, error) {
	query := `
		SELECT REPORT_ID, REPORT_TYPE, GENERATED_BY, GENERATED_TIME, TOTAL_USERS,
			TOTAL_SUBMISSIONS, TOTAL_SUBMITTED, TOTAL_HOURS, USERS_WITH_SIGNATURES
		FROM REPORT_SNAPSHOT
		WHERE REPORT_ID = ?
	`

	var snapshot model.Snapshot
	if err := s.db.GetContext(ctx, &snapshot, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get report snapshot: %w", err)
	}

	lineQuery := `
		SELECT REPORT_ID, SCHOOL_ID, TOTAL_STUDENTS, TOTAL_SUBMISSIONS, TOTAL_HOURS
		FROM REPORT_SCHOOL_LINE
		WHERE REPORT_ID = ?
		ORDER BY SCHOOL_ID
	`
	if err := s.db.SelectContext(ctx, &snapshot.Schools, lineQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get report lines: %w", err)
	}

	return &snapshot, nil
}

// List returns a page of snapshots, newest first, and the total count
func (s *reportStore) List(ctx context.Context, limit, offset int) ([]model.Snapshot, int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM REPORT_SNAPSHOT"); err != nil {
		return nil, 0, fmt.Errorf("failed to count report snapshots: %w", err)
	}

	query := `
		SELECT REPORT_ID, REPORT_TYPE, GENERATED_BY, GENERATED_TIME, TOTAL_USERS,
			TOTAL_SUBMISSIONS, TOTAL_SUBMITTED, TOTAL_HOURS, USERS_WITH_SIGNATURES
		FROM REPORT_SNAPSHOT
		ORDER BY GENERATED_TIME DESC
		LIMIT ? OFFSET ?
	`
	snapshots := []model.Snapshot{}
	if err := s.db.SelectContext(ctx, &snapshots, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list report snapshots: %w", err)
	}

	return snapshots, total, nil
}
