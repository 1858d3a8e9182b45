package booking

import (
	"context"

	"estate-backoffice/internal/events"
	"estate-backoffice/internal/models"
)

// Event names handled by the bookings tab
const (
	EventLoad         = "booking.load"
	EventSearch       = "booking.search"
	EventFilterStatus = "booking.filter-status"
	EventSort         = "booking.sort"
	EventAdd          = "booking.add"
	EventEdit         = "booking.edit"
	EventSubmit       = "booking.submit"
	EventClose        = "booking.close"
	EventDelete       = "booking.delete"
)

// DeletePrompt is returned for a delete event that still needs the user's answer
type DeletePrompt struct {
	Confirm string           `json:"confirm"`
	ID      models.BookingID `json:"id"`
}

// Bind subscribes the controller to its page events
func (c *Controller) Bind(bus *events.Bus) {
	bus.Subscribe(EventLoad, func(ctx context.Context, ev events.Event) (any, error) {
		c.LoadBookings(ctx)
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventSearch, func(ctx context.Context, ev events.Event) (any, error) {
		var p struct {
			Term string `json:"term"`
		}
		if err := ev.Decode(&p); err != nil {
			return nil, err
		}
		c.Search(p.Term)
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventFilterStatus, func(ctx context.Context, ev events.Event) (any, error) {
		var p struct {
			Status string `json:"status"`
		}
		if err := ev.Decode(&p); err != nil {
			return nil, err
		}
		c.FilterStatus(p.Status)
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventSort, func(ctx context.Context, ev events.Event) (any, error) {
		var p struct {
			Column string `json:"column"`
		}
		if err := ev.Decode(&p); err != nil {
			return nil, err
		}
		if err := c.SortTable(p.Column); err != nil {
			return nil, err
		}
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventAdd, func(ctx context.Context, ev events.Event) (any, error) {
		c.ShowBookingForm(nil)
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventEdit, func(ctx context.Context, ev events.Event) (any, error) {
		var p struct {
			ID models.BookingID `json:"id"`
		}
		if err := ev.Decode(&p); err != nil {
			return nil, err
		}
		if err := c.EditBooking(p.ID); err != nil {
			return nil, err
		}
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventSubmit, func(ctx context.Context, ev events.Event) (any, error) {
		var p struct {
			Values map[string]string `json:"values"`
		}
		if err := ev.Decode(&p); err != nil {
			return nil, err
		}
		c.SubmitForm(ctx, p.Values)
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventClose, func(ctx context.Context, ev events.Event) (any, error) {
		c.CloseModal()
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventDelete, func(ctx context.Context, ev events.Event) (any, error) {
		var p struct {
			ID        models.BookingID `json:"id"`
			Confirmed bool             `json:"confirmed"`
		}
		if err := ev.Decode(&p); err != nil {
			return nil, err
		}

		var prompt string
		err := c.RequestDelete(ctx, p.ID, func(message string) bool {
			prompt = message
			return p.Confirmed
		})
		if err != nil {
			return nil, err
		}
		if prompt != "" && !p.Confirmed {
			return DeletePrompt{Confirm: prompt, ID: p.ID}, nil
		}
		return c.Snapshot(), nil
	})
}
