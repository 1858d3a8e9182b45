package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"estate-backoffice/internal/models"

	"github.com/google/uuid"
)

// ActionWriter persists audit entries
type ActionWriter interface {
	Create(ctx context.Context, entry *models.ActionLog) error
}

type auditKey struct{}

// auditNote is filled by handlers that performed an auditable action
type auditNote struct {
	mu          sync.Mutex
	action      string
	description string
	session     *models.Session
}

// RecordAction marks the current request as an auditable console action.
// The session is taken from ctx when present.
func RecordAction(ctx context.Context, action, description string) {
	note, ok := ctx.Value(auditKey{}).(*auditNote)
	if !ok {
		return
	}
	note.mu.Lock()
	defer note.mu.Unlock()
	note.action = action
	note.description = description
	if s, ok := SessionFromContext(ctx); ok {
		note.session = s
	}
}

// AuditLogger writes recorded console actions to the action log off the request path
type AuditLogger struct {
	repo    ActionWriter
	logChan chan *models.ActionLog
	done    chan struct{}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func NewAuditLogger(repo ActionWriter) *AuditLogger {
	m := &AuditLogger{
		repo:    repo,
		logChan: make(chan *models.ActionLog, 1000), // Buffer for async logging
		done:    make(chan struct{}),
	}

	go m.asyncLogWriter()

	return m
}

func (m *AuditLogger) asyncLogWriter() {
	defer close(m.done)
	for entry := range m.logChan {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := m.repo.Create(ctx, entry); err != nil {
			log.Printf("[Audit] Failed to write %s for %s: %v", entry.ActionType, entry.Path, err)
		}
		cancel()
	}
}

// Handler tags each request with an id and writes an entry for requests
// whose handler called RecordAction
func (m *AuditLogger) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		note := &auditNote{}
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r.WithContext(context.WithValue(r.Context(), auditKey{}, note)))

		note.mu.Lock()
		defer note.mu.Unlock()
		if note.action == "" {
			return
		}

		entry := &models.ActionLog{
			RequestID:   requestID,
			ActionType:  note.action,
			Method:      r.Method,
			Path:        sanitizePath(r.URL.Path),
			StatusCode:  wrapped.statusCode,
			DurationMs:  float64(time.Since(start).Microseconds()) / 1000.0,
			IPAddress:   getClientIP(r),
			Description: note.description,
		}
		if s := note.session; s != nil {
			id, name, role := s.ID, s.Username, string(s.Role)
			entry.SessionID, entry.Username, entry.Role = &id, &name, &role
		}

		// Send to async writer (non-blocking)
		select {
		case m.logChan <- entry:
		default:
			log.Printf("[Audit] Log buffer full, dropping entry for %s", entry.Path)
		}
	})
}

// Close flushes pending entries and stops the writer
func (m *AuditLogger) Close() {
	close(m.logChan)
	<-m.done
}

func sanitizePath(path string) string {
	if len(path) > 500 {
		path = path[:500]
	}
	return path
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
