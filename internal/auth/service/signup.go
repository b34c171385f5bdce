package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/harborworks/tenauth/internal/auth/domain"
	"github.com/harborworks/tenauth/internal/auth/store"
	"github.com/harborworks/tenauth/pkg/cryptox"
	"github.com/harborworks/tenauth/pkg/idx"
	"github.com/harborworks/tenauth/pkg/slogx"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrTenantNotFound = errors.New("tenant not found")
)

type SignupService struct {
	Store  store.Store
	Tokens *TokenService
}

// Signup registers a new tenant with its first admin user and returns a
// session for that user.
func (s *SignupService) Signup(
	ctx context.Context,
	tenantName, email, password string,
) (Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Reject emails that already have a user. Emails are unique across
	// all tenants.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		log.Warn("signup attempted with taken email")
		return Session{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return Session{}, err
	}

	// 2. Hash the password before touching the database.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return Session{}, err
	}

	tenant := domain.Tenant{
		ID:   idx.New().String(),
		Name: tenantName,
	}
	admin := domain.User{
		ID:           idx.New().String(),
		TenantID:     tenant.ID,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}

	// 3. Create tenant and admin atomically. A concurrent signup with the
	// same email loses on the unique index.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tenants().CreateTenant(ctx, tenant); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, admin)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return Session{}, ErrEmailTaken
		}
		log.Error("failed to create tenant and admin",
			slog.String("tenant_id", tenant.ID),
			slog.Any("error", err),
		)
		return Session{}, err
	}

	log.Info("tenant signed up",
		slog.String("tenant_id", tenant.ID),
		slog.String("user_id", admin.ID),
	)

	// 4. Issue the session token.
	return s.Tokens.IssueSession(ctx, admin)
}

// SignupUser registers a regular user under an existing tenant and returns
// a session for that user.
func (s *SignupService) SignupUser(
	ctx context.Context,
	email, password, tenantID string,
) (Session, error) {
	log := slogx.FromContext(ctx)

	// 1. The tenant must exist.
	if _, err := s.Store.Tenants().GetTenantByID(ctx, tenantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("signup attempted for unknown tenant",
				slog.String("tenant_id", tenantID),
			)
			return Session{}, ErrTenantNotFound
		}
		log.Error("failed to fetch tenant", slog.Any("error", err))
		return Session{}, err
	}

	// 2. Reject emails that already have a user.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		log.Warn("signup attempted with taken email")
		return Session{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return Session{}, err
	}

	// 3. Hash and create.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return Session{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return Session{}, ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return Session{}, err
	}

	log.Info("user signed up",
		slog.String("tenant_id", tenantID),
		slog.String("user_id", user.ID),
	)

	// 4. Issue the session token.
	return s.Tokens.IssueSession(ctx, user)
}
