package api

import (
	"context"
	"fmt"
	"io"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
	Code     string `json:"code,omitempty"`
}

// Login exchanges credentials for a bearer token and profile.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var result LoginResult
	if err := c.post(ctx, "/api/login", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account. The backend may return the created profile.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (Profile, error) {
	var profile Profile
	if err := c.post(ctx, "/api/register", req, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SendVerificationCode requests an email verification code.
func (c *Client) SendVerificationCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.post(ctx, "/api/send-verification-code", body, nil)
}

// FetchProfile retrieves the logged-in user's profile.
func (c *Client) FetchProfile(ctx context.Context) (Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/api/profile", nil, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies a partial profile update and returns the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (Profile, error) {
	var profile Profile
	if err := c.put(ctx, "/api/profile", fields, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadAvatar uploads a new avatar image.
func (c *Client) UploadAvatar(ctx context.Context, filename string, content io.Reader) (Profile, error) {
	if content == nil {
		return nil, fmt.Errorf("请选择头像文件")
	}
	var profile Profile
	upload := &Upload{Filename: filename, Content: content}
	if err := c.post(ctx, "/api/upload-avatar", upload, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteAccount permanently removes the logged-in account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.delete(ctx, "/api/account", nil)
}
