package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/pkg/authsdk"
	"github.com/harborworks/tenauth/pkg/slogx"
)

// writeServiceError maps service sentinel errors onto the wire error
// taxonomy. Anything unmapped is a 500 and gets logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		authsdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrTenantNotFound):
		authsdk.ErrTenantNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInvalidInvitation):
		authsdk.ErrInvalidInvitation.WriteError(w)
	case errors.Is(err, service.ErrAdminRequired):
		authsdk.ErrAdminRequired.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
	}
}

func writeInvalidRequest(w http.ResponseWriter, desc string) {
	authsdk.ErrInvalidRequest.WithDescription(desc).WriteError(w)
}
