package http

import (
	"time"

	"github.com/harborworks/tenauth/internal/auth/domain"
	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/pkg/authsdk"
)

func userResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role.String(),
		TenantID: u.TenantID,
	}
}

func sessionResponse(s service.Session) authsdk.SessionResponse {
	return authsdk.SessionResponse{
		User:      userResponse(s.User),
		Token:     s.AccessToken,
		TokenType: "Bearer",
		ExpiresIn: s.ExpiresIn,
	}
}

func invitationResponse(inv domain.Invitation) authsdk.InvitationResponse {
	return authsdk.InvitationResponse{
		ID:        inv.ID,
		TenantID:  inv.TenantID,
		Email:     inv.Email,
		InvitedBy: inv.InvitedBy,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt.UTC().Format(time.RFC3339),
	}
}
