package apiclient

import (
	"context"
	"fmt"

	"github.com/iliyamo/club-dining/internal/model"
)

// LoginResponse is the body of POST /api/auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.post(ctx, "/api/auth/login", map[string]string{"email": email, "password": password}, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("%w: login returned no access_token", ErrUnexpectedShape)
	}
	return &out, nil
}

// Me returns the user the bound token belongs to.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.get(ctx, "/api/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	var u model.User
	if err := c.post(ctx, "/api/auth/register", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Health checks the API itself.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	if err := c.get(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return out, nil
}
