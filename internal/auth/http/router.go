package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/internal/auth/store"
	"github.com/harborworks/tenauth/pkg/httpx"
	"github.com/harborworks/tenauth/pkg/jwtx"
	"github.com/harborworks/tenauth/pkg/slogx"

	_ "github.com/harborworks/tenauth/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	SignupService *service.SignupService
	LoginService  *service.LoginService
	InviteService *service.InviteService
	UserService   *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvites()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TenAuth Multi-Tenant Authentication API
//	@version		0.1.0
//	@description	Multi-tenant authentication service: tenant signup, user signup, login, and admin invitations, with HS256 JWT bearer tokens.
//
//	@contact.name				Harbor Works Platform Team
//	@contact.url				https://github.com/harborworks/tenauth
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Credential endpoints take strict limits by IP to damp brute force.
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(&SignupHandler{SignupService: r.SignupService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /auth/login",
		httpx.Chain(&LoginHandler{LoginService: r.LoginService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /auth/signup-user",
		httpx.Chain(&SignupUserHandler{SignupService: r.SignupService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvites() {
	// POST /auth/invite - admin-only, moderate rate limit by user
	r.Mux.Handle("POST /auth/invite",
		httpx.Chain(&InviteCreateHandler{InviteService: r.InviteService},
			httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/aud/exp)
			httpx.RequireRole("ADMIN"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /auth/invitations - admin-only listing
	r.Mux.Handle("GET /auth/invitations",
		httpx.Chain(&InviteListHandler{InviteService: r.InviteService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("ADMIN"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /auth/accept-invite - public signup path, strict by IP
	r.Mux.Handle("POST /auth/accept-invite",
		httpx.Chain(&InviteAcceptHandler{InviteService: r.InviteService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	r.Mux.Handle("GET /auth/me",
		httpx.Chain(&UserInfoHandler{UserService: r.UserService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
