package authguard

import (
	"errors"
	"fmt"

	"github.com/communityhours/hours-dashboard/internal/backend"
	"github.com/communityhours/hours-dashboard/internal/system/error/serviceerror"
	"github.com/communityhours/hours-dashboard/internal/system/log"
)

// Observe records the result of a backend call for the session and, when err
// is not nil, converts it into the ServiceError the caller should return.
// action describes what failed ("failed to load audit data").
func (g *Guard) Observe(sessionID string, err error, action string) *serviceerror.ServiceError {
	class := Classify(err)
	outcome := g.Record(sessionID, class)
	if err == nil {
		return nil
	}

	log.GetLogger().WithError(err).WithFields(map[string]interface{}{
		"class":    class.String(),
		"outcome":  outcome,
		"failures": g.Failures(sessionID),
	}).Warn(action)

	switch class {
	case ClassNetwork:
		return serviceerror.CustomServiceError(serviceerror.UpstreamUnavailableError,
			fmt.Sprintf("%s: backend unreachable, please try again", action))
	case ClassAuthTransient, ClassAuthExpired:
		svcErr := serviceerror.CustomServiceError(serviceerror.UnauthorizedError, authMessage(outcome, g.maxFailures))
		svcErr.Retryable = outcome == OutcomeRetry
		svcErr.SignOut = outcome == OutcomeSignOut
		return svcErr
	case ClassForbidden:
		return serviceerror.CustomServiceError(serviceerror.ForbiddenError, backendMessage(err, "permission denied"))
	case ClassNotFound:
		return serviceerror.CustomServiceError(serviceerror.ResourceNotFoundError, backendMessage(err, "resource not found"))
	case ClassHTTP:
		var apiErr *backend.APIError
		errors.As(err, &apiErr)
		return serviceerror.CustomServiceError(serviceerror.UpstreamError,
			fmt.Sprintf("%s: status %d: %s", action, apiErr.StatusCode, apiErr.Message))
	}
	return serviceerror.CustomServiceError(serviceerror.InternalServerError, action)
}

func authMessage(outcome Outcome, maxFailures int) string {
	if outcome == OutcomeSignOut {
		return "your session has ended, please sign in again"
	}
	return fmt.Sprintf("authentication is still being established, please retry (session ends after %d failures)", maxFailures)
}

// backendMessage returns the backend's own message verbatim when it sent one
func backendMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
