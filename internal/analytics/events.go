package analytics

import (
	"context"

	"estate-backoffice/internal/events"
)

// Event names handled by the analytics tab
const (
	EventLoad      = "analytics.load"
	EventSetRange  = "analytics.set-range"
	EventSetFilter = "analytics.set-filter"
	EventApply     = "analytics.apply"
	EventCleanup   = "analytics.cleanup"
)

// Bind subscribes the controller to its page events
func (c *Controller) Bind(bus *events.Bus) {
	bus.Subscribe(EventLoad, func(ctx context.Context, ev events.Event) (any, error) {
		c.Load(ctx)
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventSetRange, func(ctx context.Context, ev events.Event) (any, error) {
		var p DateRange
		if err := ev.Decode(&p); err != nil {
			return nil, err
		}
		if err := c.SetDateRange(p.Start, p.End); err != nil {
			return nil, err
		}
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventSetFilter, func(ctx context.Context, ev events.Event) (any, error) {
		var p struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}
		if err := ev.Decode(&p); err != nil {
			return nil, err
		}
		if err := c.SetFilter(p.Key, p.Value); err != nil {
			return nil, err
		}
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventApply, func(ctx context.Context, ev events.Event) (any, error) {
		c.ApplyFilters(ctx)
		return c.Snapshot(), nil
	})

	bus.Subscribe(EventCleanup, func(ctx context.Context, ev events.Event) (any, error) {
		c.Cleanup()
		return c.Snapshot(), nil
	})
}
