package service_test

import (
	"context"
	"testing"

	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func TestLoginWithValidCredentials(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	signedUp, err := svc.signup.Signup(ctx, "Acme", testEmail, "password123")
	require.NoError(t, err)

	sess, err := svc.login.Login(ctx, testEmail, "password123")
	require.NoError(t, err)
	require.Equal(t, signedUp.User.ID, sess.User.ID)
	require.NotEmpty(t, sess.AccessToken)

	claims := verifySession(t, sess)
	require.Equal(t, signedUp.User.TenantID, claims.TenantID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	_, err := svc.signup.Signup(ctx, "Acme", testEmail, "password123")
	require.NoError(t, err)

	_, err = svc.login.Login(ctx, testEmail, "wrong-password")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := newServices(t)

	_, err := svc.login.Login(context.Background(), "nobody@acme.test", "password123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}
