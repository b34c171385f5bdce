package sqlite

import (
	"context"
	"time"

	"github.com/harborworks/tenauth/internal/auth/domain"
	"github.com/harborworks/tenauth/internal/auth/store"
)

type invitationsRepo struct {
	db dbtx
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (id, tenant_id, email, invited_by, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TenantID, inv.Email, inv.InvitedBy, string(inv.Status), now, now,
	)
	return mapConflict(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	var inv domain.Invitation
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, email, invited_by, status, created_at, updated_at
		FROM invitations
		WHERE id = ?`,
		id,
	).Scan(&inv.ID, &inv.TenantID, &inv.Email, &inv.InvitedBy, &status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	inv.Status = domain.InvitationStatus(status)
	return inv, nil
}

func (r *invitationsRepo) MarkInvitationAccepted(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'ACCEPTED', updated_at = ?
		WHERE id = ? AND status = 'PENDING'`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) ListTenantInvitations(ctx context.Context, tenantID string) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, email, invited_by, status, created_at, updated_at
		FROM invitations
		WHERE tenant_id = ?
		ORDER BY created_at DESC, id DESC`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []domain.Invitation
	for rows.Next() {
		var inv domain.Invitation
		var status string
		if err := rows.Scan(&inv.ID, &inv.TenantID, &inv.Email, &inv.InvitedBy, &status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		inv.Status = domain.InvitationStatus(status)
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}
