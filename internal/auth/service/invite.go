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
	ErrInvalidInvitation = errors.New("invitation not found or already accepted")
	ErrAdminRequired     = errors.New("inviter must be an admin")
)

type InviteService struct {
	Store  store.Store
	Tokens *TokenService
}

// Invite records a pending invitation for an email, bound to the inviter's
// tenant. Repeat invitations for the same email are allowed while pending;
// acceptance consumes exactly one.
func (s *InviteService) Invite(
	ctx context.Context,
	email string,
	inviterID, tenantID string,
	inviterRole domain.Role,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Only admins may invite.
	if inviterRole != domain.RoleAdmin {
		log.Warn("non-admin attempted to invite",
			slog.String("user_id", inviterID),
		)
		return domain.Invitation{}, ErrAdminRequired
	}

	// 2. Reject emails that already have a user.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		log.Warn("invite attempted for registered email")
		return domain.Invitation{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	// 3. Store the invitation.
	inv := domain.Invitation{
		ID:        idx.New().String(),
		TenantID:  tenantID,
		Email:     email,
		InvitedBy: inviterID,
		Status:    domain.InvitationPending,
	}
	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		log.Error("failed to create invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Invitation{}, err
	}

	log.Info("invitation created",
		slog.String("tenant_id", tenantID),
		slog.String("invitation_id", inv.ID),
	)

	return inv, nil
}

// Accept redeems a pending invitation, creating a USER-role account under
// the invitation's tenant, and returns a session for the new user.
func (s *InviteService) Accept(
	ctx context.Context,
	invitationID, email, password string,
) (Session, error) {
	log := slogx.FromContext(ctx)

	// 1. The invitation must exist and still be pending.
	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("accept attempted with unknown invitation",
				slog.String("invitation_id", invitationID),
			)
			return Session{}, ErrInvalidInvitation
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return Session{}, err
	}
	if inv.Status != domain.InvitationPending {
		log.Warn("accept attempted on consumed invitation",
			slog.String("invitation_id", invitationID),
		)
		return Session{}, ErrInvalidInvitation
	}

	// 2. Reject emails that already have a user.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		log.Warn("accept attempted with taken email")
		return Session{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return Session{}, err
	}

	// 3. Hash the password.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return Session{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		TenantID:     inv.TenantID,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	// 4. Create the user and consume the invitation atomically. A racing
	// accept loses on the pending-only status transition.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Invitations().MarkInvitationAccepted(ctx, inv.ID)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return Session{}, ErrEmailTaken
		case errors.Is(err, store.ErrNotFound):
			return Session{}, ErrInvalidInvitation
		}
		log.Error("failed to accept invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return Session{}, err
	}

	log.Info("invitation accepted",
		slog.String("tenant_id", inv.TenantID),
		slog.String("invitation_id", inv.ID),
		slog.String("user_id", user.ID),
	)

	// 5. Issue the session token.
	return s.Tokens.IssueSession(ctx, user)
}

// ListTenantInvitations returns a tenant's invitations, newest first.
func (s *InviteService) ListTenantInvitations(
	ctx context.Context,
	tenantID string,
) ([]domain.Invitation, error) {
	return s.Store.Invitations().ListTenantInvitations(ctx, tenantID)
}
