// Package authsdk provides the typed request/response contracts of the
// authentication service and a small HTTP client covering every public
// endpoint. The server's handlers share these types so the wire format is
// defined exactly once.
package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the authentication service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Signup registers a new tenant with its first admin user.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.postJSON(ctx, "/auth/signup", "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates an existing user.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.postJSON(ctx, "/auth/login", "", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignupUser registers a regular user under an existing tenant.
func (c *SDKClient) SignupUser(ctx context.Context, req SignupUserRequest) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.postJSON(ctx, "/auth/signup-user", "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Invite creates an invitation into the caller's tenant. Requires an admin
// bearer token.
func (c *SDKClient) Invite(ctx context.Context, token string, req InviteRequest) (*InvitationResponse, error) {
	var out InvitationResponse
	if err := c.postJSON(ctx, "/auth/invite", token, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvite redeems a pending invitation.
func (c *SDKClient) AcceptInvite(ctx context.Context, req AcceptInviteRequest) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.postJSON(ctx, "/auth/accept-invite", "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvitations returns the caller tenant's invitations. Requires an
// admin bearer token.
func (c *SDKClient) ListInvitations(ctx context.Context, token string) (*InvitationListResponse, error) {
	var out InvitationListResponse
	if err := c.getJSON(ctx, "/auth/invitations", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the authenticated user's profile.
func (c *SDKClient) Me(ctx context.Context, token string) (*UserResponse, error) {
	var out UserResponse
	if err := c.getJSON(ctx, "/auth/me", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Healthy reports whether the service is up and able to reach its database.
func (c *SDKClient) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/readyz"), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}
	return nil
}

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

func (c *SDKClient) postJSON(
	ctx context.Context,
	path, token string,
	in, out any,
	expectedStatus int,
) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decodeJSON(resp, out, expectedStatus)
}

func (c *SDKClient) getJSON(ctx context.Context, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decodeJSON(resp, out, http.StatusOK)
}

// decodeJSON decodes a JSON response into the target.
// Returns a typed *APIError if the response indicates an error.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	// Read body once for both error parsing and success decoding
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
