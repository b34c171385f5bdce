package sqlite_test

import (
	"context"
	"testing"

	"github.com/harborworks/tenauth/internal/auth/domain"
	"github.com/harborworks/tenauth/internal/auth/store"
	"github.com/harborworks/tenauth/internal/auth/store/drivers/sqlite"
	"github.com/harborworks/tenauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedTenant(t *testing.T, s store.Store) domain.Tenant {
	t.Helper()

	tenant := domain.Tenant{
		ID:   idx.New().String(),
		Name: "Acme Pty Ltd",
	}
	require.NoError(t, s.Tenants().CreateTenant(context.Background(), tenant))
	return tenant
}

func seedUser(t *testing.T, s store.Store, tenantID, email string, role domain.Role) domain.User {
	t.Helper()

	user := domain.User{
		ID:           idx.New().String(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Role:         role,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), user))
	return user
}

func TestTenantsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tenant := seedTenant(t, s)

	got, err := s.Tenants().GetTenantByID(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, tenant.ID, got.ID)
	require.Equal(t, tenant.Name, got.Name)
	require.False(t, got.CreatedAt.IsZero())

	_, err = s.Tenants().GetTenantByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tenant := seedTenant(t, s)
	user := seedUser(t, s, tenant.ID, "admin@acme.test", domain.RoleAdmin)

	byID, err := s.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, byID.Email)
	require.Equal(t, domain.RoleAdmin, byID.Role)

	byEmail, err := s.Users().GetUserByEmail(ctx, "admin@acme.test")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)
	require.Equal(t, tenant.ID, byEmail.TenantID)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@acme.test")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserEnforcesUniqueEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tenantA := seedTenant(t, s)
	tenantB := seedTenant(t, s)
	seedUser(t, s, tenantA.ID, "taken@acme.test", domain.RoleAdmin)

	// Same email in another tenant still conflicts: emails are global.
	err := s.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		TenantID:     tenantB.ID,
		Email:        "taken@acme.test",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestListTenantUsersScopedToTenant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tenantA := seedTenant(t, s)
	tenantB := seedTenant(t, s)
	seedUser(t, s, tenantA.ID, "a1@acme.test", domain.RoleAdmin)
	seedUser(t, s, tenantA.ID, "a2@acme.test", domain.RoleUser)
	seedUser(t, s, tenantB.ID, "b1@acme.test", domain.RoleAdmin)

	users, err := s.Users().ListTenantUsers(ctx, tenantA.ID)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.Equal(t, tenantA.ID, u.TenantID)
	}
}

func TestInvitationsLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tenant := seedTenant(t, s)
	admin := seedUser(t, s, tenant.ID, "admin@acme.test", domain.RoleAdmin)

	inv := domain.Invitation{
		ID:        idx.New().String(),
		TenantID:  tenant.ID,
		Email:     "invitee@acme.test",
		InvitedBy: admin.ID,
		Status:    domain.InvitationPending,
	}
	require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))

	got, err := s.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, got.Status)
	require.Equal(t, admin.ID, got.InvitedBy)

	require.NoError(t, s.Invitations().MarkInvitationAccepted(ctx, inv.ID))

	got, err = s.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationAccepted, got.Status)

	// Accepting twice fails: the transition is pending-only.
	require.ErrorIs(t, s.Invitations().MarkInvitationAccepted(ctx, inv.ID), store.ErrNotFound)
}

func TestListTenantInvitations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tenant := seedTenant(t, s)
	other := seedTenant(t, s)
	admin := seedUser(t, s, tenant.ID, "admin@acme.test", domain.RoleAdmin)
	otherAdmin := seedUser(t, s, other.ID, "admin@other.test", domain.RoleAdmin)

	for _, email := range []string{"one@acme.test", "two@acme.test"} {
		require.NoError(t, s.Invitations().CreateInvitation(ctx, domain.Invitation{
			ID:        idx.New().String(),
			TenantID:  tenant.ID,
			Email:     email,
			InvitedBy: admin.ID,
			Status:    domain.InvitationPending,
		}))
	}
	require.NoError(t, s.Invitations().CreateInvitation(ctx, domain.Invitation{
		ID:        idx.New().String(),
		TenantID:  other.ID,
		Email:     "stranger@other.test",
		InvitedBy: otherAdmin.ID,
		Status:    domain.InvitationPending,
	}))

	invs, err := s.Invitations().ListTenantInvitations(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, invs, 2)
	for _, inv := range invs {
		require.Equal(t, tenant.ID, inv.TenantID)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tenantID := idx.New().String()
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tenants().CreateTenant(ctx, domain.Tenant{ID: tenantID, Name: "Doomed"}); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.Error(t, err)

	_, err = s.Tenants().GetTenantByID(ctx, tenantID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tenantID := idx.New().String()
	userID := idx.New().String()
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tenants().CreateTenant(ctx, domain.Tenant{ID: tenantID, Name: "Kept"}); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, domain.User{
			ID:           userID,
			TenantID:     tenantID,
			Email:        "kept@acme.test",
			PasswordHash: "hash",
			Role:         domain.RoleAdmin,
		})
	})
	require.NoError(t, err)

	user, err := s.Users().GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, tenantID, user.TenantID)
}
