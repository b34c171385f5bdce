package http

import (
	"encoding/json"
	"net/http"

	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/pkg/authsdk"
	"github.com/harborworks/tenauth/pkg/httpx"
)

type SignupHandler struct {
	SignupService *service.SignupService
}

// ServeHTTP godoc
//
//	@Summary		Tenant Signup Endpoint
//	@Description	Register a new tenant together with its first user. The creating user is assigned the ADMIN role and receives an access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignupRequest	true	"Signup request"
//	@Success		201		{object}	authsdk.SessionResponse	"user, token, token_type, expires_in"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeInvalidRequest(w, err.Error())
		return
	}

	sess, err := h.SignupService.Signup(ctx, req.TenantName, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sessionResponse(sess))
}
