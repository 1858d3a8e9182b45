package health

import (
	"context"
	"errors"
	"testing"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestCheckBasic(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		h := NewHealthChecker(PingFunc(ok), map[string]Pinger{"redis": PingFunc(ok)})
		if s := h.CheckBasic(context.Background()); s.Status != "healthy" {
			t.Fatalf("expected healthy, got %+v", s)
		}
	})

	t.Run("optional dependency down degrades", func(t *testing.T) {
		h := NewHealthChecker(PingFunc(ok), map[string]Pinger{"database": PingFunc(down)})
		s := h.CheckBasic(context.Background())
		if s.Status != "degraded" {
			t.Fatalf("expected degraded, got %s", s.Status)
		}
		if s.Dependencies["database"].Error != "connection refused" {
			t.Fatalf("expected the ping error, got %+v", s.Dependencies["database"])
		}
	})

	t.Run("api down is unhealthy", func(t *testing.T) {
		h := NewHealthChecker(PingFunc(down), map[string]Pinger{"redis": PingFunc(down)})
		if s := h.CheckBasic(context.Background()); s.Status != "unhealthy" {
			t.Fatalf("expected unhealthy, got %s", s.Status)
		}
	})
}

func TestCheckDetailed(t *testing.T) {
	h := NewHealthChecker(PingFunc(ok), nil)
	d := h.CheckDetailed(context.Background(), 3)
	if d.Sessions != 3 || d.Status != "healthy" || d.CheckedAt.IsZero() {
		t.Fatalf("unexpected detailed status %+v", d)
	}
}
