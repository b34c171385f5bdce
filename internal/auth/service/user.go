package service

import (
	"context"
	"errors"

	"github.com/harborworks/tenauth/internal/auth/domain"
	"github.com/harborworks/tenauth/internal/auth/store"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	Store store.Store
}

// GetUserByID returns a user's profile.
func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// ListTenantUsers returns all users of a tenant, newest first.
func (s *UserService) ListTenantUsers(ctx context.Context, tenantID string) ([]domain.User, error) {
	return s.Store.Users().ListTenantUsers(ctx, tenantID)
}
