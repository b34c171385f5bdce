package http

import (
	"net/http"

	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/pkg/authsdk"
	"github.com/harborworks/tenauth/pkg/httpx"
)

type InviteListHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invitation Listing Endpoint
//	@Description	List the caller tenant's invitations, newest first. Admin-only.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{object}	authsdk.InvitationListResponse	"invitations"
//	@Failure		401	{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		403	{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500	{object}	authsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/auth/invitations [get].
func (h *InviteListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID := httpx.TenantIDFromCtx(ctx)
	if tenantID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	invs, err := h.InviteService.ListTenantInvitations(ctx, tenantID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := authsdk.InvitationListResponse{
		Invitations: make([]authsdk.InvitationResponse, 0, len(invs)),
	}
	for _, inv := range invs {
		out.Invitations = append(out.Invitations, invitationResponse(inv))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
