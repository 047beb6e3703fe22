package report

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// reportHandler handles HTTP requests for board reports
type reportHandler struct {
	service ReportServiceInterface
}

// newReportHandler creates a new report handler
func newReportHandler(service ReportServiceInterface) *reportHandler {
	return &reportHandler{
		service: service,
	}
}

// handleGenerate handles POST /reports/board
func (h *reportHandler) handleGenerate(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.SendError(c, &serviceerror.UnauthorizedError)
		return
	}

	snapshot, serviceErr := h.service.Generate(c.Request.Context(), principal)
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	utils.SendCreated(c, snapshot)
}

// handleGet handles GET /reports/:id
func (h *reportHandler) handleGet(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.SendError(c, &serviceerror.UnauthorizedError)
		return
	}

	snapshot, serviceErr := h.service.Get(c.Request.Context(), principal, c.Param("id"))
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	utils.SendOK(c, snapshot)
}

// handleList handles GET /reports
func (h *reportHandler) handleList(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.SendError(c, &serviceerror.UnauthorizedError)
		return
	}

	limit, err := utils.QueryInt(c, "limit", 0)
	if err != nil {
		utils.SendError(c, serviceerror.CustomServiceError(serviceerror.InvalidRequestError,
			fmt.Sprintf("invalid limit: %v", err)))
		return
	}
	offset, err := utils.QueryInt(c, "offset", 0)
	if err != nil {
		utils.SendError(c, serviceerror.CustomServiceError(serviceerror.InvalidRequestError,
			fmt.Sprintf("invalid offset: %v", err)))
		return
	}

	response, serviceErr := h.service.List(c.Request.Context(), principal, limit, offset)
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	utils.SendOK(c, response)
}
