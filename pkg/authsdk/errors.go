package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/harborworks/tenauth/pkg/httpx"
)

// Error codes returned by the service. The wire shape follows RFC 6749
// ({"error", "error_description"}) even though the endpoints are not an
// OAuth2 token endpoint, because every client already knows how to read it.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeTenantNotFound     = "tenant_not_found"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidInvitation  = "invalid_invitation"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeAdminRequired      = "admin_required"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// APIError is the service's error response. It implements the error
// interface and is used both by the server (to write HTTP responses) and by
// the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "email_taken")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// WithDescription returns a copy of the error with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	clone := *e
	clone.Description = desc
	return &clone
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailTaken,
		Description: "a user with this email already exists",
	}

	ErrTenantNotFound = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeTenantNotFound,
		Description: "the tenant does not exist",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	ErrInvalidInvitation = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidInvitation,
		Description: "the invitation does not exist or was already accepted",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "missing or invalid bearer token",
	}

	ErrAdminRequired = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAdminRequired,
		Description: "this operation requires an administrator role",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an internal error occurred",
	}
)

// parseErrorResponse attempts to parse an HTTP error response body into a
// typed *APIError. Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fall back to a generic error carrying the status code.
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("unexpected response (HTTP %d)", resp.StatusCode),
	}
}
