package report

import (
	"github.com/gin-gonic/gin"

	"github.com/communityhours/hours-dashboard/internal/authguard"
	"github.com/communityhours/hours-dashboard/internal/dashboard"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/database"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
)

// Initialize sets up the report module and registers routes
func Initialize(rg *gin.RouterGroup, db *database.DB, users dashboard.UserSource, guard *authguard.Guard) ReportServiceInterface {
	store := newReportStore(db)
	service := newReportService(store, users, guard)
	handler := newReportHandler(service)

	registerRoutes(rg, handler)

	return service
}

// registerRoutes registers all report routes
func registerRoutes(rg *gin.RouterGroup, handler *reportHandler) {
	group := rg.Group("/reports", middleware.RequireRole(constants.RoleBoardAdmin))

	// POST /reports/board - Generate and store a board report
	group.POST("/board", handler.handleGenerate)

	// GET /reports - List stored reports
	group.GET("", handler.handleList)

	// GET /reports/:id - Get one stored report
	group.GET("/:id", handler.handleGet)
}
