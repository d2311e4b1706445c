package api

import (
	"context"
	"net/http"
)

// AuthResponse is the common envelope of the auth endpoints.
type AuthResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	User    map[string]any `json:"user,omitempty"`
	Session *Session       `json:"session,omitempty"`
}

// Session holds the tokens returned by login and signup.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account. A returned session, when present, is
// usable immediately.
func (c *Client) Signup(ctx context.Context, email, password, fullName string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", signupRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session. The client's own token is not
// updated; call SetToken with the returned access token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ForgotPassword requests a password reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{
		"email": email,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword completes a reset using the token from the reset email.
func (c *Client) ResetPassword(ctx context.Context, accessToken, newPassword string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"access_token": accessToken,
		"new_password": newPassword,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword updates the password for the authenticated user.
func (c *Client) ChangePassword(ctx context.Context, current, updated string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/change-password", map[string]string{
		"current_password": current,
		"new_password":     updated,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount permanently removes the account. The password is required
// as confirmation.
func (c *Client) DeleteAccount(ctx context.Context, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/delete-account", map[string]string{
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
