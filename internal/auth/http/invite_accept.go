package http

import (
	"encoding/json"
	"net/http"

	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/pkg/authsdk"
	"github.com/harborworks/tenauth/pkg/httpx"
)

type InviteAcceptHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invitation Acceptance Endpoint
//	@Description	Redeem a pending invitation by choosing credentials. Creates a USER-role account under the invitation's tenant and returns an access token.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.AcceptInviteRequest	true	"Accept invite request"
//	@Success		201		{object}	authsdk.SessionResponse		"user, token, token_type, expires_in"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/auth/accept-invite [post].
func (h *InviteAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeInvalidRequest(w, err.Error())
		return
	}

	sess, err := h.InviteService.Accept(ctx, req.InvitationID, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sessionResponse(sess))
}
