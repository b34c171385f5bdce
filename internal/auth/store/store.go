package store

import (
	"context"
	"errors"

	"github.com/harborworks/tenauth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. It exposes sub-repositories to keep
// concerns tidy and testable.
type Store interface {
	Tenants() Tenants
	Users() Users
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Tenants interface {
	// CreateTenant inserts a new tenant (id is provided by app via ULID).
	CreateTenant(ctx context.Context, t domain.Tenant) error

	// GetTenantByID returns a tenant by id.
	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is already registered.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and duplicate checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListTenantUsers returns all users of a tenant, newest first.
	ListTenantUsers(ctx context.Context, tenantID string) ([]domain.User, error)
}

type Invitations interface {
	// CreateInvitation writes a new pending invitation.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// MarkInvitationAccepted flips status to ACCEPTED and bumps updated_at.
	// Only pending invitations can transition; otherwise ErrNotFound.
	MarkInvitationAccepted(ctx context.Context, id string) error

	// ListTenantInvitations returns a tenant's invitations, newest first.
	ListTenantInvitations(ctx context.Context, tenantID string) ([]domain.Invitation, error)
}
