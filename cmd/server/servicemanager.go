package main

import (
	"github.com/gin-gonic/gin"

	"github.com/communityhours/hours-dashboard/internal/audit"
	"github.com/communityhours/hours-dashboard/internal/authguard"
	"github.com/communityhours/hours-dashboard/internal/backend"
	"github.com/communityhours/hours-dashboard/internal/dashboard"
	"github.com/communityhours/hours-dashboard/internal/report"
	"github.com/communityhours/hours-dashboard/internal/review"
	"github.com/communityhours/hours-dashboard/internal/system/config"
	"github.com/communityhours/hours-dashboard/internal/system/database"
	"github.com/communityhours/hours-dashboard/internal/system/log"
)

// Package-level service references for cleanup during shutdown
var (
	dashboardService dashboard.DashboardServiceInterface
	auditService     audit.AuditServiceInterface
	reviewService    review.ReviewServiceInterface
	reportService    report.ReportServiceInterface
)

// registerServices initializes every module on the authenticated API group.
// The report module needs the database and is skipped without one.
func registerServices(
	v1 *gin.RouterGroup,
	cfg *config.Config,
	client *backend.Client,
	guard *authguard.Guard,
	db *database.DB,
) {
	logger := log.GetLogger()

	dashboardService = dashboard.Initialize(v1, client, guard)
	logger.Info("Dashboard module initialized")

	auditService = audit.Initialize(v1, client, guard, audit.Limits{
		BoardActivity:   cfg.Audit.BoardActivityLimit,
		SchoolActivity:  cfg.Audit.SchoolActivityLimit,
		LeaderboardSize: cfg.Audit.LeaderboardSize,
	})
	logger.Info("Audit module initialized")

	reviewService = review.Initialize(v1, client, guard)
	logger.Info("Review module initialized")

	if db != nil {
		reportService = report.Initialize(v1, db, client, guard)
		logger.Info("Report module initialized")
	}
}

// unregisterServices releases module references during shutdown
func unregisterServices() {
	dashboardService = nil
	auditService = nil
	reviewService = nil
	reportService = nil
}
