package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	authhttp "github.com/harborworks/tenauth/internal/auth/http"
	"github.com/harborworks/tenauth/internal/auth/service"
	"github.com/harborworks/tenauth/internal/auth/store/drivers/sqlite"
	"github.com/harborworks/tenauth/pkg/authsdk"
	"github.com/harborworks/tenauth/pkg/cryptox"
	"github.com/harborworks/tenauth/pkg/httpx"
	"github.com/harborworks/tenauth/pkg/jwtx"
	"github.com/harborworks/tenauth/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://auth.test.local"

var testAudience = []string{"tenauth-api"}

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "tenauth-http-test-pepper")
	cryptox.SetPepperPath(pepperPath)
	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	// All test traffic shares one IP; raise the limits so only the
	// dedicated rate-limit test ever trips them.
	generous := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	httpx.StrictLimit = generous
	httpx.ModerateLimit = generous
	httpx.LenientLimit = generous

	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *authsdk.SDKClient {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256([]byte("http-test-secret"))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte("http-test-secret"), testIssuer, testAudience)
	require.NoError(t, err)

	tokens := &service.TokenService{
		Signer:    signer,
		Issuer:    testIssuer,
		Audience:  testAudience,
		AccessTTL: 15 * time.Minute,
	}

	logger := slogx.New(slogx.Config{Service: "tenauth-test", Level: "error", Format: "text"})

	router := authhttp.NewRouter(verifier, "test", st, logger)
	router.SignupService = &service.SignupService{Store: st, Tokens: tokens}
	router.LoginService = &service.LoginService{Store: st, Tokens: tokens}
	router.InviteService = &service.InviteService{Store: st, Tokens: tokens}
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return authsdk.NewSDKClient(srv.URL)
}

func signupFixture(t *testing.T, client *authsdk.SDKClient) *authsdk.SessionResponse {
	t.Helper()

	sess, err := client.Signup(context.Background(), authsdk.SignupRequest{
		TenantName: "Acme",
		Email:      "founder@acme.test",
		Password:   "password123",
	})
	require.NoError(t, err)
	return sess
}

func TestSignupFlow(t *testing.T) {
	client := newTestServer(t)

	sess := signupFixture(t, client)
	require.Equal(t, "founder@acme.test", sess.User.Email)
	require.Equal(t, "ADMIN", sess.User.Role)
	require.NotEmpty(t, sess.User.TenantID)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, "Bearer", sess.TokenType)
	require.Equal(t, int64(900), sess.ExpiresIn)
}

func TestSignupRejectsInvalidBody(t *testing.T) {
	client := newTestServer(t)

	_, err := client.Signup(context.Background(), authsdk.SignupRequest{
		TenantName: "Acme",
		Email:      "not-an-email",
		Password:   "password123",
	})

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeInvalidRequest, apiErr.Code)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	client := newTestServer(t)
	signupFixture(t, client)

	_, err := client.Signup(context.Background(), authsdk.SignupRequest{
		TenantName: "Other Co",
		Email:      "founder@acme.test",
		Password:   "password456",
	})

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeEmailTaken, apiErr.Code)
}

func TestLoginFlow(t *testing.T) {
	client := newTestServer(t)
	signupFixture(t, client)
	ctx := context.Background()

	sess, err := client.Login(ctx, authsdk.LoginRequest{
		Email:    "founder@acme.test",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, "ADMIN", sess.User.Role)

	_, err = client.Login(ctx, authsdk.LoginRequest{
		Email:    "founder@acme.test",
		Password: "wrong-password",
	})
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeInvalidCredentials, apiErr.Code)

	// Unknown email yields the same error code.
	_, err = client.Login(ctx, authsdk.LoginRequest{
		Email:    "nobody@acme.test",
		Password: "password123",
	})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, authsdk.ErrorCodeInvalidCredentials, apiErr.Code)
}

func TestSignupUserFlow(t *testing.T) {
	client := newTestServer(t)
	admin := signupFixture(t, client)
	ctx := context.Background()

	sess, err := client.SignupUser(ctx, authsdk.SignupUserRequest{
		Email:    "member@acme.test",
		Password: "password456",
		TenantID: admin.User.TenantID,
	})
	require.NoError(t, err)
	require.Equal(t, "USER", sess.User.Role)
	require.Equal(t, admin.User.TenantID, sess.User.TenantID)

	_, err = client.SignupUser(ctx, authsdk.SignupUserRequest{
		Email:    "other@acme.test",
		Password: "password456",
		TenantID: "no-such-tenant",
	})
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeTenantNotFound, apiErr.Code)
}

func TestInviteFlow(t *testing.T) {
	client := newTestServer(t)
	admin := signupFixture(t, client)
	ctx := context.Background()

	inv, err := client.Invite(ctx, admin.Token, authsdk.InviteRequest{
		Email: "invitee@acme.test",
	})
	require.NoError(t, err)
	require.Equal(t, "PENDING", inv.Status)
	require.Equal(t, admin.User.TenantID, inv.TenantID)
	require.Equal(t, admin.User.ID, inv.InvitedBy)

	list, err := client.ListInvitations(ctx, admin.Token)
	require.NoError(t, err)
	require.Len(t, list.Invitations, 1)

	sess, err := client.AcceptInvite(ctx, authsdk.AcceptInviteRequest{
		InvitationID: inv.ID,
		Email:        "invitee@acme.test",
		Password:     "password789",
	})
	require.NoError(t, err)
	require.Equal(t, "USER", sess.User.Role)
	require.Equal(t, admin.User.TenantID, sess.User.TenantID)

	// Accepting twice fails.
	_, err = client.AcceptInvite(ctx, authsdk.AcceptInviteRequest{
		InvitationID: inv.ID,
		Email:        "another@acme.test",
		Password:     "password789",
	})
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, authsdk.ErrorCodeInvalidInvitation, apiErr.Code)
}

func TestInviteRequiresBearerToken(t *testing.T) {
	client := newTestServer(t)

	_, err := client.Invite(context.Background(), "", authsdk.InviteRequest{
		Email: "invitee@acme.test",
	})
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestInviteForbiddenForNonAdmin(t *testing.T) {
	client := newTestServer(t)
	admin := signupFixture(t, client)
	ctx := context.Background()

	member, err := client.SignupUser(ctx, authsdk.SignupUserRequest{
		Email:    "member@acme.test",
		Password: "password456",
		TenantID: admin.User.TenantID,
	})
	require.NoError(t, err)

	_, err = client.Invite(ctx, member.Token, authsdk.InviteRequest{
		Email: "invitee@acme.test",
	})
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeAdminRequired, apiErr.Code)
}

func TestMeEndpoint(t *testing.T) {
	client := newTestServer(t)
	admin := signupFixture(t, client)
	ctx := context.Background()

	me, err := client.Me(ctx, admin.Token)
	require.NoError(t, err)
	require.Equal(t, admin.User.ID, me.ID)
	require.Equal(t, admin.User.Email, me.Email)

	_, err = client.Me(ctx, "garbage-token")
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	client := newTestServer(t)

	require.NoError(t, client.Healthy(context.Background()))

	resp, err := client.HTTPClient.Get(client.BaseURL + "/livez")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
