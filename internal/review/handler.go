package review

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/communityhours/hours-dashboard/internal/review/model"
	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// reviewHandler handles HTTP requests for submission review
type reviewHandler struct {
	service ReviewServiceInterface
}

// newReviewHandler creates a new review handler
func newReviewHandler(service ReviewServiceInterface) *reviewHandler {
	return &reviewHandler{
		service: service,
	}
}

// handleGetUser handles GET /users/:id
func (h *reviewHandler) handleGetUser(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.SendError(c, &serviceerror.UnauthorizedError)
		return
	}

	response, serviceErr := h.service.GetUser(c.Request.Context(), principal, c.Param("id"))
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	utils.SendOK(c, response)
}

// handleGetSubmission handles GET /submissions/:id
func (h *reviewHandler) handleGetSubmission(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.SendError(c, &serviceerror.UnauthorizedError)
		return
	}

	response, serviceErr := h.service.GetSubmission(c.Request.Context(), principal, c.Param("id"))
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	utils.SendOK(c, response)
}

// handleDecide handles PATCH /submissions/:id/approve and /reject
func (h *reviewHandler) handleDecide(action model.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.PrincipalFrom(c)
		if !ok {
			utils.SendError(c, &serviceerror.UnauthorizedError)
			return
		}

		request, ok := bindDecision(c)
		if !ok {
			return
		}

		response, serviceErr := h.service.Decide(c.Request.Context(), principal, c.Param("id"), action, request.Reason)
		if serviceErr != nil {
			utils.SendError(c, serviceErr)
			return
		}
		utils.SendOK(c, response)
	}
}

// handleBulkDecide handles PATCH /users/:id/submissions/bulk/approve and /reject
func (h *reviewHandler) handleBulkDecide(action model.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.PrincipalFrom(c)
		if !ok {
			utils.SendError(c, &serviceerror.UnauthorizedError)
			return
		}

		request, ok := bindDecision(c)
		if !ok {
			return
		}

		response, serviceErr := h.service.BulkDecide(c.Request.Context(), principal, c.Param("id"), model.Decision{
			Action: action,
			IDs:    request.SubmissionIDs,
			Reason: request.Reason,
		})
		if serviceErr != nil {
			utils.SendError(c, serviceErr)
			return
		}
		utils.SendOK(c, response)
	}
}

// bindDecision parses an optional JSON body
func bindDecision(c *gin.Context) (model.DecisionRequest, bool) {
	var request model.DecisionRequest
	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		utils.SendError(c, serviceerror.CustomServiceError(
			serviceerror.InvalidRequestError,
			fmt.Sprintf("invalid request body: %v", err),
		))
		return request, false
	}
	return request, true
}
