package api

import (
	"encoding/json"
	"fmt"
)

// Error is an API-level error response from the remote analysis service
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("API error: %s (status %d)", e.Detail, e.StatusCode)
}

// errorBody matches the error payload shapes the service is known to emit:
// {"detail": "..."} or {"error": {"message": "..."}}.
type errorBody struct {
	Detail string `json:"detail"`
	Err    struct {
		Message string `json:"message"`
	} `json:"error"`
}

// decodeError builds an Error from a non-2xx response body
func decodeError(statusCode int, body []byte) *Error {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return &Error{StatusCode: statusCode, Detail: parsed.Detail}
		}
		if parsed.Err.Message != "" {
			return &Error{StatusCode: statusCode, Detail: parsed.Err.Message}
		}
	}
	return &Error{StatusCode: statusCode, Detail: string(body)}
}
