// Package authguard classifies backend failures and decides when repeated
// authentication failures should end a session.
package authguard

import (
	"context"
	"errors"
	"strings"

	"github.com/communityhours/hours-dashboard/internal/backend"
)

// Class is the error taxonomy of backend failures
type Class int

const (
	ClassNone Class = iota
	// ClassNetwork means no response was received
	ClassNetwork
	// ClassAuthTransient is a 401 caused by a token bootstrap race
	ClassAuthTransient
	// ClassAuthExpired is a 401 caused by a genuinely expired session
	ClassAuthExpired
	// ClassForbidden is a 403
	ClassForbidden
	// ClassNotFound is a 404
	ClassNotFound
	// ClassHTTP is any other non-2xx response
	ClassHTTP
	// ClassInternal is a local failure such as an undecodable body
	ClassInternal
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassNetwork:
		return "network"
	case ClassAuthTransient:
		return "auth_transient"
	case ClassAuthExpired:
		return "auth_expired"
	case ClassForbidden:
		return "forbidden"
	case ClassNotFound:
		return "not_found"
	case ClassHTTP:
		return "http"
	}
	return "internal"
}

var transientCodes = map[string]bool{
	"TOKEN_MISSING": true,
	"AUTH_REQUIRED": true,
}

var expiredCodes = map[string]bool{
	"TOKEN_EXPIRED": true,
	"TOKEN_INVALID": true,
}

var transientMessages = []string{"No token", "Authentication required"}

// Classify maps an error returned by the backend client onto the taxonomy.
// A structured error code wins over message matching.
func Classify(err error) Class {
	if err == nil {
		return ClassNone
	}

	var netErr *backend.NetworkError
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return ClassNetwork
	}

	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		return ClassInternal
	}

	switch apiErr.StatusCode {
	case 401:
		return classifyUnauthorized(apiErr)
	case 403:
		return ClassForbidden
	case 404:
		return ClassNotFound
	}
	return ClassHTTP
}

func classifyUnauthorized(apiErr *backend.APIError) Class {
	code := strings.ToUpper(apiErr.Code)
	if transientCodes[code] {
		return ClassAuthTransient
	}
	if expiredCodes[code] {
		return ClassAuthExpired
	}
	for _, msg := range transientMessages {
		if strings.Contains(apiErr.Message, msg) {
			return ClassAuthTransient
		}
	}
	return ClassAuthExpired
}
