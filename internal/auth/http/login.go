package http

import (
	"encoding/json"
	"net/http"

	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/pkg/authsdk"
	"github.com/harborworks/tenauth/pkg/httpx"
)

type LoginHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email and password, receiving a bearer access token. Unknown emails and wrong passwords are indistinguishable.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Login request"
//	@Success		200		{object}	authsdk.SessionResponse	"user, token, token_type, expires_in"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeInvalidRequest(w, err.Error())
		return
	}

	sess, err := h.LoginService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionResponse(sess))
}
