package strapi

import (
	"context"
	"fmt"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

// AuthResponse is the backend's reply to a successful login or registration
type AuthResponse struct {
	JWT  string             `json:"jwt"`
	User *model.UserProfile `json:"user"`
}

// loginRequest is the local-provider login payload
type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// registerRequest is the local-provider registration payload
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the local provider and returns the issued
// credential with the basic user projection.
func (c *Client) Login(ctx context.Context, identifier, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.post(ctx, "/api/auth/local", "", loginRequest{
		Identifier: identifier,
		Password:   password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	// A 200 without the jwt/user pair is unusable for sign-in
	if resp.JWT == "" || resp.User == nil {
		return nil, fmt.Errorf("%w: login response missing jwt or user", ErrMalformedResponse)
	}

	return &resp, nil
}

// Register creates a new account and returns the issued credential with the
// basic user projection
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.post(ctx, "/api/auth/local/register", "", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.JWT == "" || resp.User == nil {
		return nil, fmt.Errorf("%w: registration response missing jwt or user", ErrMalformedResponse)
	}

	return &resp, nil
}
