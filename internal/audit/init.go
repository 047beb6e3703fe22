package audit

import (
	"github.com/gin-gonic/gin"

	"github.com/communityhours/hours-dashboard/internal/authguard"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
)

// Initialize sets up the audit module and registers routes
func Initialize(rg *gin.RouterGroup, source AuditSource, guard *authguard.Guard, limits Limits) AuditServiceInterface {
	service := newAuditService(source, guard, limits)
	handler := newAuditHandler(service)

	registerRoutes(rg, handler)

	return service
}

// registerRoutes registers all audit routes
func registerRoutes(rg *gin.RouterGroup, handler *auditHandler) {
	admins := middleware.RequireRole(constants.RoleBoardAdmin, constants.RoleSchoolAdmin)

	// GET /audit/dashboard - Statistics, activity feed and school rollup
	rg.GET("/audit/dashboard", admins, handler.handleDashboard)

	// GET /audit/export.csv - Filtered activity feed as CSV
	rg.GET("/audit/export.csv", admins, handler.handleExport)

	// GET /submissions/:id/audit-trail - Status history of one submission
	rg.GET("/submissions/:id/audit-trail", admins, handler.handleAuditTrail)
}
