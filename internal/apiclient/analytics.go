package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"estate-backoffice/internal/models"
)

// Dashboard fetches KPIs and chart data for the given query
func (c *Client) Dashboard(ctx context.Context, query url.Values) (*models.DashboardData, error) {
	var data models.DashboardData
	if err := c.call(ctx, http.MethodGet, "/analytics/dashboard", query, nil, &data, true); err != nil {
		return nil, err
	}
	return &data, nil
}

// Export fetches the export artifact; its shape is owned by the API
func (c *Client) Export(ctx context.Context, query url.Values) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := c.call(ctx, http.MethodGet, "/analytics/export", query, nil, &payload, true); err != nil {
		return nil, err
	}
	return payload, nil
}
