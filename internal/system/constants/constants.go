package constants

const (
	AuthorizationHeaderName = "Authorization"
	ContentTypeHeaderName   = "Content-Type"
	CorrelationIDHeaderName = "X-Correlation-ID"
	SessionIDHeaderName     = "X-Session-ID"
	ContentTypeJSON         = "application/json"
	ContentTypeCSV          = "text/csv"
	TokenTypeBearer         = "Bearer"

	// Context keys set by middleware
	ContextKeyCorrelationID = "correlation_id"
	ContextKeyPrincipal     = "principal"

	// Roles carried in identity claims
	RoleStudent     = "STUDENT"
	RoleSchoolAdmin = "SCHOOL_ADMIN"
	RoleBoardAdmin  = "BOARD_ADMIN"

	// Filter value that disables an equality filter
	FilterAll = "ALL"

	UnknownSchool = "Unknown School"
	NotAvailable  = "N/A"

	DefaultDateRangeDays = 30
)

// Aliases for convenience
const (
	HeaderContentType = ContentTypeHeaderName
	HeaderSessionID   = SessionIDHeaderName
)
