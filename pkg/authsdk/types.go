package authsdk

import (
	"fmt"
	"net/mail"
	"strings"
)

const minPasswordLength = 6

// ErrorResponse is the wire shape of an error. Used internally for parsing;
// client code gets the typed *APIError from errors.go.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
}

// SessionResponse is returned by every operation that authenticates or
// creates a user.
type SessionResponse struct {
	User UserResponse `json:"user"`

	// Token is the JWT access token used to authenticate API requests
	Token string `json:"token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int64 `json:"expires_in"`
}

// InvitationResponse is the public view of an invitation.
type InvitationResponse struct {
	ID        string `json:"id"`
	TenantID  string `json:"tenant_id"`
	Email     string `json:"email"`
	InvitedBy string `json:"invited_by"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// InvitationListResponse wraps the admin invitation listing.
type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// SignupRequest registers a new tenant with its first admin user.
type SignupRequest struct {
	TenantName string `json:"tenant_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (r SignupRequest) Validate() error {
	if strings.TrimSpace(r.TenantName) == "" {
		return fmt.Errorf("tenant_name is required")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

// SignupUserRequest registers a regular user under an existing tenant.
type SignupUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenant_id"`
}

func (r SignupUserRequest) Validate() error {
	if strings.TrimSpace(r.TenantID) == "" {
		return fmt.Errorf("tenant_id is required")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

// InviteRequest invites an email into the caller's tenant.
type InviteRequest struct {
	Email string `json:"email"`
}

func (r InviteRequest) Validate() error {
	return validateEmail(r.Email)
}

// AcceptInviteRequest redeems an invitation with chosen credentials.
type AcceptInviteRequest struct {
	InvitationID string `json:"invitation_id"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

func (r AcceptInviteRequest) Validate() error {
	if strings.TrimSpace(r.InvitationID) == "" {
		return fmt.Errorf("invitation_id is required")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email must be a valid address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}
