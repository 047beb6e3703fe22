package serviceerror

type ServiceErrorType string

const (
	ClientErrorType ServiceErrorType = "client_error"
	ServerErrorType ServiceErrorType = "server_error"
)

type ServiceError struct {
	Code             string           `json:"code"`
	Type             ServiceErrorType `json:"type"`
	Error            string           `json:"error"`
	ErrorDescription string           `json:"error_description,omitempty"`
	// Retryable tells the caller the same request may succeed if repeated.
	Retryable bool `json:"retryable,omitempty"`
	// SignOut is set when the auth guard decided the session must end.
	SignOut bool `json:"sign_out,omitempty"`
}

var (
	InternalServerError = ServiceError{
		Type:             ServerErrorType,
		Code:             "SSE-5000",
		Error:            "internal_server_error",
		ErrorDescription: "An unexpected error occurred",
	}

	DatabaseError = ServiceError{
		Type:             ServerErrorType,
		Code:             "SSE-5001",
		Error:            "database_error",
		ErrorDescription: "A database error occurred",
	}

	UpstreamError = ServiceError{
		Type:             ServerErrorType,
		Code:             "SSE-5002",
		Error:            "upstream_error",
		ErrorDescription: "The backend API returned an error",
		Retryable:        true,
	}

	UpstreamUnavailableError = ServiceError{
		Type:             ServerErrorType,
		Code:             "SSE-5003",
		Error:            "upstream_unavailable",
		ErrorDescription: "The backend API could not be reached",
		Retryable:        true,
	}

	InvalidRequestError = ServiceError{
		Type:             ClientErrorType,
		Code:             "CSE-4000",
		Error:            "invalid_request",
		ErrorDescription: "The request is invalid",
	}

	ValidationError = ServiceError{
		Type:             ClientErrorType,
		Code:             "CSE-4001",
		Error:            "validation_error",
		ErrorDescription: "Validation failed",
	}

	UnauthorizedError = ServiceError{
		Type:             ClientErrorType,
		Code:             "CSE-4010",
		Error:            "unauthorized",
		ErrorDescription: "Authentication is required",
	}

	ForbiddenError = ServiceError{
		Type:             ClientErrorType,
		Code:             "CSE-4030",
		Error:            "forbidden",
		ErrorDescription: "Permission denied",
	}

	ResourceNotFoundError = ServiceError{
		Type:             ClientErrorType,
		Code:             "CSE-4004",
		Error:            "resource_not_found",
		ErrorDescription: "Resource not found",
	}

	ConflictError = ServiceError{
		Type:             ClientErrorType,
		Code:             "CSE-4009",
		Error:            "conflict",
		ErrorDescription: "Request conflicts with current state",
	}
)

func CustomServiceError(baseError ServiceError, description string) *ServiceError {
	return &ServiceError{
		Type:             baseError.Type,
		Code:             baseError.Code,
		Error:            baseError.Error,
		ErrorDescription: description,
		Retryable:        baseError.Retryable,
	}
}
