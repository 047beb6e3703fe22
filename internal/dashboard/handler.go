package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// dashboardHandler handles HTTP requests for the dashboards
type dashboardHandler struct {
	service DashboardServiceInterface
}

// newDashboardHandler creates a new dashboard handler
func newDashboardHandler(service DashboardServiceInterface) *dashboardHandler {
	return &dashboardHandler{
		service: service,
	}
}

// handleBoard handles GET /dashboard/board
func (h *dashboardHandler) handleBoard(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.SendError(c, &serviceerror.UnauthorizedError)
		return
	}

	response, serviceErr := h.service.BoardDashboard(c.Request.Context(), principal, c.Query("search"))
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	utils.SendOK(c, response)
}

// handleSchool handles GET /dashboard/school
func (h *dashboardHandler) handleSchool(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.SendError(c, &serviceerror.UnauthorizedError)
		return
	}

	response, serviceErr := h.service.SchoolDashboard(c.Request.Context(), principal,
		c.Query("schoolId"), c.Query("search"))
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	utils.SendOK(c, response)
}
