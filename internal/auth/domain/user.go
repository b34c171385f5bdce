package domain

import (
	"fmt"
	"time"
)

// Role is the coarse per-user authorization level within a tenant.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole validates a stored or wire-level role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // argon2 encoded
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
