package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/communityhours/hours-dashboard/internal/system/error/apierror"
	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
)

// StatusCodeFor maps a ServiceError to its HTTP status code
func StatusCodeFor(err *serviceerror.ServiceError) int {
	switch err.Code {
	case serviceerror.ResourceNotFoundError.Code:
		return http.StatusNotFound
	case serviceerror.ConflictError.Code:
		return http.StatusConflict
	case serviceerror.UnauthorizedError.Code:
		return http.StatusUnauthorized
	case serviceerror.ForbiddenError.Code:
		return http.StatusForbidden
	case serviceerror.UpstreamError.Code:
		return http.StatusBadGateway
	case serviceerror.UpstreamUnavailableError.Code:
		return http.StatusServiceUnavailable
	}
	if err.Type == serviceerror.ClientErrorType {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// SendError writes a ServiceError as an HTTP response with appropriate status code
func SendError(c *gin.Context, err *serviceerror.ServiceError) {
	body := apierror.NewErrorResponse(err.Error, err.ErrorDescription)
	body.Retryable = err.Retryable
	body.SignOut = err.SignOut
	c.AbortWithStatusJSON(StatusCodeFor(err), body)
}

// SendOK writes data as a 200 JSON response
func SendOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreated writes data as a 201 JSON response
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// QueryInt reads an integer query parameter, returning def when absent.
func QueryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
