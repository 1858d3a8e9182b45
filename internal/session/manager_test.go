package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"estate-backoffice/internal/apiclient"
	"estate-backoffice/internal/auth"
	"estate-backoffice/internal/booking"
	"estate-backoffice/internal/cache"
	"estate-backoffice/internal/config"
	"estate-backoffice/internal/events"
	"estate-backoffice/internal/models"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(models.AuthResponse{
			Message: "Login successful",
			Data:    models.AuthData{Token: "api-admin", User: models.User{ID: 1, Username: req.Username, Role: models.RoleAdmin}},
		})
	})
	mux.HandleFunc("/auth/demo-login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.AuthResponse{
			Data: models.AuthData{Token: "api-sales", User: models.User{ID: 2, Username: "sales", Role: models.RoleSalesPerson}},
		})
	})
	mux.HandleFunc("/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		users := map[string]string{"Bearer api-admin": "admin", "Bearer api-sales": "sales"}
		name, ok := users[r.Header.Get("Authorization")]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Token is invalid"})
			return
		}
		json.NewEncoder(w).Encode(models.VerifyResponse{Message: "Token is valid", User: models.User{Username: name}})
	})
	mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer api-sales" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"bookings":[{"id":7,"customer_name":"Asha","project_name":"Lake View","status":"active"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestManager(t *testing.T) *Manager {
	m, _, _ := newTestManagerWithAPI(t, 0)
	return m
}

func newTestManagerWithAPI(t *testing.T, verifyEvery time.Duration) (*Manager, *httptest.Server, cache.SessionStore) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.Issuer = "estate-backoffice"
	cfg.Session.ExpirationHours = 1
	cfg.Session.VerifyIntervalSeconds = int(verifyEvery / time.Second)

	srv := fakeAPI(t)
	store := cache.NewMemorySessionStore(time.Now)
	m := NewManager(cfg, apiclient.New(srv.URL, 5*time.Second), store, auth.NewJWTManager(cfg), nil)
	return m, srv, store
}

func TestLogin(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	t.Run("success issues a console token", func(t *testing.T) {
		s, token, err := m.Login(ctx, " admin ", "admin123")
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if s.Role != models.RoleAdmin || s.APIToken != "api-admin" || s.Username != "admin" {
			t.Fatalf("unexpected session %+v", s)
		}
		got, err := m.Authenticate(ctx, token)
		if err != nil {
			t.Fatalf("token should authenticate: %v", err)
		}
		if got.ID != s.ID {
			t.Fatalf("expected session %s, got %s", s.ID, got.ID)
		}
	})

	t.Run("rejected credentials keep the server message", func(t *testing.T) {
		_, _, err := m.Login(ctx, "admin", "wrong")
		if err == nil {
			t.Fatal("expected error")
		}
		if msg := apiclient.ServerMessage(err, "Login failed"); msg != "Invalid credentials" {
			t.Fatalf("unexpected message %q", msg)
		}
	})

	t.Run("blank credentials never reach the API", func(t *testing.T) {
		if _, _, err := m.Login(ctx, "  ", "x"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		if _, err := m.Authenticate(ctx, "not-a-token"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestDemoLoginRoles(t *testing.T) {
	m := newTestManager(t)
	if _, _, err := m.DemoLogin(context.Background(), "guest"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	s, _, err := m.DemoLogin(context.Background(), "Sales")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if s.Role != models.RoleSalesPerson {
		t.Fatalf("expected sales_person, got %s", s.Role)
	}
}

func TestWorkspaceLifecycle(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	s, token, err := m.DemoLogin(ctx, "sales")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	ws := m.Workspace(s)
	if again := m.Workspace(s); again != ws {
		t.Fatal("workspace should be built once per session")
	}
	if ws.Bookings.Role() != models.RoleSalesPerson {
		t.Fatalf("role not applied, got %q", ws.Bookings.Role())
	}

	result, err := ws.Bus.Dispatch(ctx, events.Event{Name: booking.EventLoad})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	view, ok := result.(booking.View)
	if !ok || view.Total != 1 {
		t.Fatalf("expected one booking loaded with the session token, got %+v", result)
	}

	if err := m.Logout(ctx, s.ID); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if m.Count() != 0 {
		t.Fatalf("expected no workspaces, got %d", m.Count())
	}
	if _, err := m.Authenticate(ctx, token); !errors.Is(err, cache.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestAuthenticate_VerifiesUpstreamToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected API token ends the session", func(t *testing.T) {
		m, _, store := newTestManagerWithAPI(t, 0)
		s, token, err := m.DemoLogin(ctx, "sales")
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		m.Workspace(s)

		s.APIToken = "api-expired"
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("unexpected error %v", err)
		}

		if _, err := m.Authenticate(ctx, token); !errors.Is(err, ErrSessionRevoked) {
			t.Fatalf("expected ErrSessionRevoked, got %v", err)
		}
		if m.Count() != 0 {
			t.Fatalf("workspace should be dropped, got %d", m.Count())
		}
		if _, err := store.Get(ctx, s.ID); !errors.Is(err, cache.ErrSessionNotFound) {
			t.Fatalf("session should be deleted, got %v", err)
		}
	})

	t.Run("unreachable API keeps the session", func(t *testing.T) {
		m, srv, _ := newTestManagerWithAPI(t, 0)
		s, token, err := m.DemoLogin(ctx, "sales")
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		srv.Close()

		got, err := m.Authenticate(ctx, token)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if got.ID != s.ID {
			t.Fatalf("expected session %s, got %s", s.ID, got.ID)
		}
	})

	t.Run("a recent check is reused", func(t *testing.T) {
		m, srv, _ := newTestManagerWithAPI(t, time.Hour)
		_, token, err := m.DemoLogin(ctx, "sales")
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if _, err := m.Authenticate(ctx, token); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		srv.Close()

		// a revoked token would go unnoticed until the interval lapses
		if _, err := m.Authenticate(ctx, token); err != nil {
			t.Fatalf("cached verification should be used, got %v", err)
		}
	})
}
