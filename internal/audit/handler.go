package audit

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/communityhours/hours-dashboard/internal/audit/model"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/log"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// auditHandler handles HTTP requests for audit reporting
type auditHandler struct {
	service AuditServiceInterface
}

// newAuditHandler creates a new audit handler
func newAuditHandler(service AuditServiceInterface) *auditHandler {
	return &auditHandler{
		service: service,
	}
}

// handleDashboard handles GET /audit/dashboard
func (h *auditHandler) handleDashboard(c *gin.Context) {
	principal, query, ok := h.parseRequest(c)
	if !ok {
		return
	}

	response, serviceErr := h.service.GetDashboard(c.Request.Context(), principal, query)
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	utils.SendOK(c, response)
}

// handleExport handles GET /audit/export.csv
func (h *auditHandler) handleExport(c *gin.Context) {
	principal, query, ok := h.parseRequest(c)
	if !ok {
		return
	}

	entries, serviceErr := h.service.ExportActivity(c.Request.Context(), principal, query)
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, entries); err != nil {
		log.GetLogger().WithError(err).Error("Failed to render audit export")
		utils.SendError(c, &serviceerror.InternalServerError)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="audit-activity.csv"`)
	c.Data(http.StatusOK, constants.ContentTypeCSV, buf.Bytes())
}

// handleAuditTrail handles GET /submissions/:id/audit-trail
func (h *auditHandler) handleAuditTrail(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.SendError(c, &serviceerror.UnauthorizedError)
		return
	}

	trail, serviceErr := h.service.GetAuditTrail(c.Request.Context(), principal, c.Param("id"))
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	utils.SendOK(c, trail)
}

func (h *auditHandler) parseRequest(c *gin.Context) (utils.Principal, model.Query, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.SendError(c, &serviceerror.UnauthorizedError)
		return utils.Principal{}, model.Query{}, false
	}

	limit, err := utils.QueryInt(c, "limit", 0)
	if err != nil {
		utils.SendError(c, serviceerror.CustomServiceError(
			serviceerror.InvalidRequestError,
			fmt.Sprintf("invalid limit: %v", err),
		))
		return utils.Principal{}, model.Query{}, false
	}

	return principal, model.Query{
		Range: c.Query("range"),
		Start: c.Query("start"),
		End:   c.Query("end"),
		Limit: limit,
		Filter: model.Filter{
			Action: c.DefaultQuery("action", constants.FilterAll),
			School: c.DefaultQuery("school", constants.FilterAll),
		},
	}, true
}
