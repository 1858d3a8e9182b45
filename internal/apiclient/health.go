package apiclient

import (
	"context"
	"net/http"
)

// Ping checks the API's health endpoint
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/health", nil, nil, nil, false)
}
