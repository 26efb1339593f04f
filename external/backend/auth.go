package backend

import (
	"context"
	"net/http"

	"github.com/ruralplus/companion-api/schema"
)

// Login exchanges credentials for an access token. The backend also sets the
// refresh-token cookie, which the client's jar retains.
func (c *Client) Login(ctx context.Context, email, password string) (*schema.TokenResponse, error) {
	var token schema.TokenResponse
	req := schema.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Refresh trades the refresh cookie for a fresh access token.
func (c *Client) Refresh(ctx context.Context) (*schema.TokenResponse, error) {
	var token schema.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, "", nil, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, "", nil, nil)
}

// Me returns the account bound to an access token.
func (c *Client) Me(ctx context.Context, accessToken string) (*schema.User, error) {
	var user schema.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req schema.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, "", req, nil)
}

// PasswordForgot requests a verification code by email.
func (c *Client) PasswordForgot(ctx context.Context, email string) error {
	req := schema.PasswordForgotRequest{Email: email}
	return c.do(ctx, http.MethodPost, "/auth/password/forgot", nil, "", req, nil)
}

// PasswordVerify checks an emailed verification code.
func (c *Client) PasswordVerify(ctx context.Context, email, code string) error {
	req := schema.PasswordVerifyRequest{Email: email, Code: code}
	return c.do(ctx, http.MethodPost, "/auth/password/verify", nil, "", req, nil)
}

// PasswordReset sets a new password using a verified code.
func (c *Client) PasswordReset(ctx context.Context, email, code, newPassword string) error {
	req := schema.PasswordResetRequest{Email: email, Code: code, NewPassword: newPassword}
	return c.do(ctx, http.MethodPost, "/auth/password/reset", nil, "", req, nil)
}
