package http

import (
	"encoding/json"
	"net/http"

	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/pkg/authsdk"
	"github.com/harborworks/tenauth/pkg/httpx"
)

type SignupUserHandler struct {
	SignupService *service.SignupService
}

// ServeHTTP godoc
//
//	@Summary		User Signup Endpoint
//	@Description	Register a regular USER-role account under an existing tenant and receive an access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignupUserRequest	true	"User signup request"
//	@Success		201		{object}	authsdk.SessionResponse		"user, token, token_type, expires_in"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/auth/signup-user [post].
func (h *SignupUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.SignupUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeInvalidRequest(w, err.Error())
		return
	}

	sess, err := h.SignupService.SignupUser(ctx, req.Email, req.Password, req.TenantID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sessionResponse(sess))
}
