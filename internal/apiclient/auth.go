package apiclient

import (
	"context"
	"net/http"

	"estate-backoffice/internal/models"
)

// Login exchanges credentials for an API token
func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthData, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.call(ctx, http.MethodPost, "/auth/login", nil, req, &resp, false); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DemoLogin signs in with the API's predefined account for role
func (c *Client) DemoLogin(ctx context.Context, role string) (*models.AuthData, error) {
	var resp models.AuthResponse
	if err := c.call(ctx, http.MethodPost, "/auth/demo-login", nil, models.DemoLoginRequest{Role: role}, &resp, false); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Verify checks the bound token and returns its user
func (c *Client) Verify(ctx context.Context) (*models.User, error) {
	var resp models.VerifyResponse
	if err := c.call(ctx, http.MethodGet, "/auth/verify", nil, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
