package http

import (
	"encoding/json"
	"net/http"

	"github.com/harborworks/tenauth/internal/auth/domain"
	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/pkg/authsdk"
	"github.com/harborworks/tenauth/pkg/httpx"
	"github.com/harborworks/tenauth/pkg/jwtx"
)

type InviteCreateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		User Invitation Endpoint
//	@Description	Invite an email address into the caller's tenant. Admin-only; the invitation is bound to the caller's tenant and user id.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.InviteRequest		true	"Invite request"
//	@Success		201		{object}	authsdk.InvitationResponse	"id, tenant_id, email, invited_by, status, created_at"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/auth/invite [post].
func (h *InviteCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeInvalidRequest(w, err.Error())
		return
	}

	claims, ok := ctx.Value(httpx.CtxKeyClaims).(jwtx.Claims)
	if !ok || claims.Subject == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	inv, err := h.InviteService.Invite(
		ctx,
		req.Email,
		claims.Subject,
		claims.TenantID,
		domain.Role(claims.Role),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, invitationResponse(inv))
}
