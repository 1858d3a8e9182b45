package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"estate-backoffice/internal/metrics"
)

var ErrUnknownEvent = errors.New("unknown event")

// Event is a UI action forwarded by the page, e.g. {"name":"booking.sort","payload":{"column":"amount"}}
type Event struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Decode unmarshals the payload into v. An empty payload leaves v untouched.
func (e Event) Decode(v any) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("%s payload: %w", e.Name, err)
	}
	return nil
}

// Handler reacts to an event and returns a value for the page (may be nil)
type Handler func(ctx context.Context, ev Event) (any, error)

// Bus routes named events to the handlers controllers registered at startup
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string]Handler)}
}

// Subscribe binds name to h, replacing any previous binding
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = h
}

// Dispatch runs the handler bound to ev.Name
func (b *Bus) Dispatch(ctx context.Context, ev Event) (any, error) {
	b.mu.RLock()
	h, ok := b.handlers[ev.Name]
	b.mu.RUnlock()
	if !ok {
		metrics.EventsDispatched.WithLabelValues("unknown", "unknown").Inc()
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Name)
	}

	result, err := h(ctx, ev)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.EventsDispatched.WithLabelValues(ev.Name, outcome).Inc()
	return result, err
}

// Names lists the subscribed events in order
func (b *Bus) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
