package apierror

type ErrorResponse struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	Retryable   bool   `json:"retryable,omitempty"`
	SignOut     bool   `json:"signOut,omitempty"`
}

func NewErrorResponse(code, description string) *ErrorResponse {
	return &ErrorResponse{
		Code:        code,
		Description: description,
	}
}
