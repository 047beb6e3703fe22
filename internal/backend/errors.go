package backend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the backend API
type APIError struct {
	StatusCode int
	// Code is the structured error code when the backend sends one
	Code    string
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// NetworkError means no response was received from the backend
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unreachable at %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// errorBody covers the error shapes the backend is known to send
type errorBody struct {
	Code      string          `json:"code"`
	ErrorCode string          `json:"errorCode"`
	Error     string          `json:"error"`
	Message   json.RawMessage `json:"message"`
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	apiErr.Code = parsed.Code
	if apiErr.Code == "" {
		apiErr.Code = parsed.ErrorCode
	}
	apiErr.Message = decodeMessage(parsed.Message)
	if apiErr.Message == "" {
		apiErr.Message = parsed.Error
	}
	return apiErr
}

// decodeMessage accepts either a string or a list of strings
func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return string(raw)
}
