package sqlite

import (
	"context"
	"time"

	"github.com/harborworks/tenauth/internal/auth/domain"
)

type tenantsRepo struct {
	db dbtx
}

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenants (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, now, now,
	)
	return mapConflict(err)
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM tenants
		WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return t, nil
}
