package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"estate-backoffice/internal/metrics"
)

var (
	// ErrUnauthenticated means the call was not attempted or the API rejected the token.
	// Callers treat it like the absent response of an expired login.
	ErrUnauthenticated = errors.New("network error or authentication failed")

	// ErrTransport means no HTTP response was received
	ErrTransport = errors.New("api unreachable")
)

const maxBodyBytes = 10 << 20

// APIError is a non-2xx answer from the booking API.
// Message is empty when the server sent no {error} text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	return e.Message
}

// ServerMessage returns the server-supplied error text of err, or fallback
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Response is the raw outcome of an API call that reached the server
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON body into v
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// ServerError is the {error} text of the body, if any
func (r *Response) ServerError() string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return ""
	}
	return body.Error
}

// ErrorMessage is the server-supplied {error} text, falling back to the status line
func (r *Response) ErrorMessage() string {
	if msg := r.ServerError(); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP error! status: %d", r.StatusCode)
}

// Err converts a non-2xx response into *APIError
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return &APIError{Status: r.StatusCode, Message: r.ServerError()}
}

// Client issues authenticated calls against the booking REST API
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of c that sends token as the bearer credential
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Do issues an authenticated request. A missing token or a 401 yields
// ErrUnauthenticated with a nil response; any other status is returned as is.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	if c.token == "" {
		return nil, ErrUnauthenticated
	}
	return c.send(ctx, method, path, query, body, true)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, authed bool) (*Response, error) {
	endpoint := endpointLabel(method, path)
	start := time.Now()
	defer func() {
		metrics.UpstreamCallDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		log.Printf("[API] %s failed: %v", endpoint, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		return nil, fmt.Errorf("%w: read %s: %v", ErrTransport, endpoint, err)
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		metrics.UpstreamCallsTotal.WithLabelValues(endpoint, "unauthenticated").Inc()
		log.Printf("[API] %s rejected the session token", endpoint)
		return nil, ErrUnauthenticated
	}

	outcome := "ok"
	if resp.StatusCode >= 300 {
		outcome = fmt.Sprintf("http_%d", resp.StatusCode)
	}
	metrics.UpstreamCallsTotal.WithLabelValues(endpoint, outcome).Inc()

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// call sends a request and decodes a 2xx body into out
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var (
		resp *Response
		err  error
	)
	if authed {
		resp, err = c.Do(ctx, method, path, query, body)
	} else {
		resp, err = c.send(ctx, method, path, query, body, false)
	}
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpointLabel(method, path), err)
	}
	return nil
}

// endpointLabel collapses record ids so metric labels stay bounded
func endpointLabel(method, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := 1; i < len(segments); i++ {
		if segments[i-1] == "bookings" && segments[i] != "" {
			segments[i] = "{id}"
		}
	}
	return method + " /" + strings.Join(segments, "/")
}
