package http

import (
	"net/http"

	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/pkg/authsdk"
	"github.com/harborworks/tenauth/pkg/httpx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Authenticated Identity Endpoint
//	@Description	Return the profile of the user identified by the bearer token.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"id, email, role, tenant_id"
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/auth/me [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		// A valid token for a deleted user reads as unauthenticated.
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}
