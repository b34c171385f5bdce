package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/harborworks/tenauth/internal/auth/store"
	"github.com/harborworks/tenauth/pkg/cryptox"
	"github.com/harborworks/tenauth/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash is verified against on the unknown-email path so login timing
// does not reveal whether an email is registered. Lazy so the pepper file
// is only touched once the service is actually used.
var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("dummy-password-for-timing")
	if err != nil {
		panic(err)
	}
	return h
})

type LoginService struct {
	Store  store.Store
	Tokens *TokenService
}

// Login verifies the credentials and returns a session. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *LoginService) Login(ctx context.Context, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Look up the user.
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn the same work as a real verification.
			_ = cryptox.VerifyPassword(password, dummyHash())
			log.Warn("login attempted with unknown email")
			return Session{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return Session{}, err
	}

	// 2. Verify the password.
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login attempted with wrong password",
				slog.String("user_id", user.ID),
			)
			return Session{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return Session{}, err
	}

	log.Info("user logged in",
		slog.String("tenant_id", user.TenantID),
		slog.String("user_id", user.ID),
	)

	// 3. Issue the session token.
	return s.Tokens.IssueSession(ctx, user)
}
