package httpx

import (
	"net/http"
	"strings"
)

// RequireRole rejects the request unless the authenticated caller holds one
// of the listed roles. Must run after AuthnMiddleware.
func RequireRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := roleFromCtx(r.Context())

			if _, ok := want[have]; ok {
				next.ServeHTTP(w, r)
				return
			}

			writeBearerRoleError(w, http.StatusForbidden, allowed...)
		})
	}
}

// RFC 6750-style error response for a caller without the required role.
func writeBearerRoleError(w http.ResponseWriter, code int, allowed ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_role", role="`+strings.Join(allowed, " ")+`"`)
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"admin_required","error_description":"This operation requires an administrator role."}`))
}
