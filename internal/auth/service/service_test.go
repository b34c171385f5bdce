package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/internal/auth/store"
	"github.com/harborworks/tenauth/internal/auth/store/drivers/sqlite"
	"github.com/harborworks/tenauth/pkg/cryptox"
	"github.com/harborworks/tenauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "https://auth.test.local"
	testEmail  = "founder@acme.test"
)

var testAudience = []string{"tenauth-api"}

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "tenauth-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

type services struct {
	store  store.Store
	tokens *service.TokenService
	signup *service.SignupService
	login  *service.LoginService
	invite *service.InviteService
	users  *service.UserService
}

func newServices(t *testing.T) services {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256([]byte("service-test-secret"))
	require.NoError(t, err)

	tokens := &service.TokenService{
		Signer:    signer,
		Issuer:    testIssuer,
		Audience:  testAudience,
		AccessTTL: 15 * time.Minute,
	}

	return services{
		store:  s,
		tokens: tokens,
		signup: &service.SignupService{Store: s, Tokens: tokens},
		login:  &service.LoginService{Store: s, Tokens: tokens},
		invite: &service.InviteService{Store: s, Tokens: tokens},
		users:  &service.UserService{Store: s},
	}
}

func verifySession(t *testing.T, sess service.Session) jwtx.Claims {
	t.Helper()

	verifier, err := jwtx.NewVerifierHS256([]byte("service-test-secret"), testIssuer, testAudience)
	require.NoError(t, err)

	claims, err := verifier.Verify(sess.AccessToken)
	require.NoError(t, err)
	return claims
}

func TestTokenServiceIssuesVerifiableSession(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	sess, err := svc.signup.Signup(ctx, "Acme", testEmail, "password123")
	require.NoError(t, err)
	require.NotEmpty(t, sess.AccessToken)
	require.Equal(t, int64(900), sess.ExpiresIn)

	claims := verifySession(t, sess)
	require.Equal(t, sess.User.ID, claims.Subject)
	require.Equal(t, sess.User.TenantID, claims.TenantID)
	require.Equal(t, "ADMIN", claims.Role)
}
