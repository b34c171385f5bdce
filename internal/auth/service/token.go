package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/harborworks/tenauth/internal/auth/domain"
	"github.com/harborworks/tenauth/pkg/jwtx"
	"github.com/harborworks/tenauth/pkg/slogx"
)

// Session is an issued access token together with the user it belongs to.
type Session struct {
	User        domain.User
	AccessToken string
	ExpiresIn   int64 // seconds
}

type TokenService struct {
	Signer    jwtx.Signer
	Issuer    string
	Audience  []string
	AccessTTL time.Duration
}

// IssueSession mints an access token for the given user.
func (s *TokenService) IssueSession(ctx context.Context, user domain.User) (Session, error) {
	log := slogx.FromContext(ctx)

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(
		user.ID,
		user.TenantID,
		user.Role.String(),
		ttl,
		s.Issuer,
		s.Audience,
		time.Now().UTC(),
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign access token",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return Session{}, err
	}

	return Session{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}
