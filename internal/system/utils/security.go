package utils

import (
	"context"

	"github.com/communityhours/hours-dashboard/internal/system/constants"
)

type contextKey string

const bearerTokenKey contextKey = "bearer_token"

// Principal is the verified identity behind a request.
type Principal struct {
	Subject   string `json:"subject"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	SchoolID  string `json:"schoolId,omitempty"`
	SessionID string `json:"-"`
}

// IsBoardAdmin reports whether the principal sees all schools.
func (p Principal) IsBoardAdmin() bool {
	return p.Role == constants.RoleBoardAdmin
}

// IsAdmin reports whether the principal may review submissions.
func (p Principal) IsAdmin() bool {
	return p.Role == constants.RoleBoardAdmin || p.Role == constants.RoleSchoolAdmin
}

// WithBearerToken stores the caller's bearer token for forwarding to the backend.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey, token)
}

// BearerTokenFromContext returns the token stored by WithBearerToken.
func BearerTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerTokenKey).(string)
	return token, ok && token != ""
}
