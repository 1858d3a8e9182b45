package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"estate-backoffice/internal/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	return New(srv.URL+"/api", 5*time.Second).WithToken("tok"), srv.Close
}

func TestClient_Do(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		c := New("http://example.invalid", time.Second)
		resp, err := c.Do(context.Background(), http.MethodGet, "/bookings", nil, nil)
		if resp != nil || !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v %v", resp, err)
		}
	})

	t.Run("401 is unauthenticated", func(t *testing.T) {
		c, done := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		defer done()

		resp, err := c.Do(context.Background(), http.MethodGet, "/bookings", nil, nil)
		if resp != nil || !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v %v", resp, err)
		}
	})

	t.Run("bearer header and query", func(t *testing.T) {
		c, done := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("unexpected auth header %q", got)
			}
			if r.URL.Path != "/api/analytics/dashboard" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("start_date") != "2024-03-01T00:00:00" {
				t.Errorf("unexpected query %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{}`))
		})
		defer done()

		q := url.Values{"start_date": {"2024-03-01T00:00:00"}}
		resp, err := c.Do(context.Background(), http.MethodGet, "/analytics/dashboard", q, nil)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if !resp.OK() {
			t.Fatalf("expected 2xx, got %d", resp.StatusCode)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := New(srv.URL, time.Second).WithToken("tok")

		_, err := c.Do(context.Background(), http.MethodGet, "/bookings", nil, nil)
		if !errors.Is(err, ErrTransport) {
			t.Fatalf("expected ErrTransport, got %v", err)
		}
	})
}

func TestResponse_ErrorMessage(t *testing.T) {
	t.Run("server error field", func(t *testing.T) {
		r := &Response{StatusCode: 400, Body: []byte(`{"error":"Missing required field: type"}`)}
		if got := r.ErrorMessage(); got != "Missing required field: type" {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("fallback to status", func(t *testing.T) {
		r := &Response{StatusCode: 502, Body: []byte(`<html>bad gateway</html>`)}
		if got := r.ErrorMessage(); got != "HTTP error! status: 502" {
			t.Fatalf("unexpected message %q", got)
		}
	})
}

func TestClient_ListBookings(t *testing.T) {
	c, done := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bookings":[{"id":7,"customer_name":"Asha","area":1200.5,"timeline":"2030-01-02T10:00:00","status":"active"}]}`))
	})
	defer done()

	bookings, err := c.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}
	b := bookings[0]
	if b.ID != "7" || b.CustomerName != "Asha" || b.Area != 1200.5 {
		t.Fatalf("unexpected booking %+v", b)
	}
	if b.Timeline.Year() != 2030 {
		t.Fatalf("unexpected timeline %v", b.Timeline)
	}
}

func TestClient_Mutations(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	c, done := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotBody = nil
		json.NewDecoder(r.Body).Decode(&gotBody)
		if r.URL.Path == "/api/bookings/9" && r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"Access denied"}`))
			return
		}
		w.Write([]byte(`{"message":"Booking updated successfully"}`))
	})
	defer done()

	area := 900.0
	msg, err := c.UpdateBooking(context.Background(), "3", &models.BookingInput{CustomerName: "Ravi", Area: &area})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if msg != "Booking updated successfully" {
		t.Fatalf("unexpected message %q", msg)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/bookings/3" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if _, ok := gotBody["amount"]; ok {
		t.Fatal("absent fields must not be sent")
	}
	if gotBody["area"] != 900.0 {
		t.Fatalf("unexpected area %v", gotBody["area"])
	}

	_, err = c.DeleteBooking(context.Background(), "9")
	if StatusOf(err) != http.StatusForbidden || err.Error() != "Access denied" {
		t.Fatalf("expected 403 Access denied, got %v", err)
	}
}

func TestEndpointLabel(t *testing.T) {
	if got := endpointLabel(http.MethodPut, "/bookings/42"); got != "PUT /bookings/{id}" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := endpointLabel(http.MethodGet, "/analytics/dashboard"); got != "GET /analytics/dashboard" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestServerMessage(t *testing.T) {
	if got := ServerMessage(&APIError{Status: 400, Message: "Invalid type"}, "Failed to save booking"); got != "Invalid type" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := ServerMessage(&APIError{Status: 500}, "Failed to save booking"); got != "Failed to save booking" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := (&APIError{Status: 500}).Error(); got != "HTTP error! status: 500" {
		t.Fatalf("unexpected error text %q", got)
	}
}

func TestClient_Verify(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		var gotAuth, gotPath string
		c, done := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth, gotPath = r.Header.Get("Authorization"), r.URL.Path
			w.Write([]byte(`{"message":"Token is valid","user":{"id":3,"username":"meera","role":"admin"}}`))
		})
		defer done()

		user, err := c.Verify(context.Background())
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if gotAuth != "Bearer tok" || gotPath != "/api/auth/verify" {
			t.Fatalf("unexpected request %q %q", gotAuth, gotPath)
		}
		if user.Username != "meera" || user.Role != models.RoleAdmin {
			t.Fatalf("unexpected user %+v", user)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		c, done := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Token is invalid"}`))
		})
		defer done()

		if _, err := c.Verify(context.Background()); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})
}
