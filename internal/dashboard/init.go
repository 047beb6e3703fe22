package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/communityhours/hours-dashboard/internal/authguard"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
)

// Initialize sets up the dashboard module and registers routes
func Initialize(rg *gin.RouterGroup, users UserSource, guard *authguard.Guard) DashboardServiceInterface {
	service := newDashboardService(users, guard)
	handler := newDashboardHandler(service)

	registerRoutes(rg, handler)

	return service
}

// registerRoutes registers all dashboard routes
func registerRoutes(rg *gin.RouterGroup, handler *dashboardHandler) {
	group := rg.Group("/dashboard")

	// GET /dashboard/board - Cross-school totals
	group.GET("/board", middleware.RequireRole(constants.RoleBoardAdmin), handler.handleBoard)

	// GET /dashboard/school - One school's students
	group.GET("/school", middleware.RequireRole(constants.RoleBoardAdmin, constants.RoleSchoolAdmin), handler.handleSchool)
}
