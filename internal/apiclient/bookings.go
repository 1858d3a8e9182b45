package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"estate-backoffice/internal/models"
)

func bookingPath(id models.BookingID) string {
	return "/bookings/" + url.PathEscape(string(id))
}

// ListBookings returns every booking visible to the token's user
func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var resp models.BookingListResponse
	if err := c.call(ctx, http.MethodGet, "/bookings", nil, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Bookings, nil
}

// CreateBooking posts a new booking and returns the server's message
func (c *Client) CreateBooking(ctx context.Context, input *models.BookingInput) (string, error) {
	var resp models.MessageResponse
	if err := c.call(ctx, http.MethodPost, "/bookings", nil, input, &resp, true); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdateBooking replaces the fields present in input
func (c *Client) UpdateBooking(ctx context.Context, id models.BookingID, input *models.BookingInput) (string, error) {
	var resp models.MessageResponse
	if err := c.call(ctx, http.MethodPut, bookingPath(id), nil, input, &resp, true); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// DeleteBooking deletes the booking; for sales staff the API cancels it instead
func (c *Client) DeleteBooking(ctx context.Context, id models.BookingID) (string, error) {
	var resp models.MessageResponse
	if err := c.call(ctx, http.MethodDelete, bookingPath(id), nil, nil, &resp, true); err != nil {
		return "", err
	}
	return resp.Message, nil
}
