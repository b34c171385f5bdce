package domain

import "time"

// InvitationStatus tracks the lifecycle of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
)

type Invitation struct {
	ID        string
	TenantID  string
	Email     string
	InvitedBy string // User ID of the admin who created the invitation
	Status    InvitationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
