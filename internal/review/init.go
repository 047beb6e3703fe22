package review

import (
	"github.com/gin-gonic/gin"

	"github.com/communityhours/hours-dashboard/internal/authguard"
	"github.com/communityhours/hours-dashboard/internal/review/model"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
)

// Initialize sets up the review module and registers routes
func Initialize(rg *gin.RouterGroup, backend ReviewBackend, guard *authguard.Guard) ReviewServiceInterface {
	service := newReviewService(backend, guard)
	handler := newReviewHandler(service)

	registerRoutes(rg, handler)

	return service
}

// registerRoutes registers all review routes
func registerRoutes(rg *gin.RouterGroup, handler *reviewHandler) {
	admins := middleware.RequireRole(constants.RoleBoardAdmin, constants.RoleSchoolAdmin)

	// GET /users/:id - Student detail with selectable submissions
	rg.GET("/users/:id", admins, handler.handleGetUser)

	// PATCH /users/:id/submissions/bulk/{approve,reject} - Bulk decision
	rg.PATCH("/users/:id/submissions/bulk/approve", admins, handler.handleBulkDecide(model.ActionApprove))
	rg.PATCH("/users/:id/submissions/bulk/reject", admins, handler.handleBulkDecide(model.ActionReject))

	// GET /submissions/:id - Submission detail
	rg.GET("/submissions/:id", admins, handler.handleGetSubmission)

	// PATCH /submissions/:id/{approve,reject} - Single decision
	rg.PATCH("/submissions/:id/approve", admins, handler.handleDecide(model.ActionApprove))
	rg.PATCH("/submissions/:id/reject", admins, handler.handleDecide(model.ActionReject))
}
