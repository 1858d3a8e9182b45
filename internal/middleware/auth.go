package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"estate-backoffice/internal/models"
)

type contextKey string

const SessionKey contextKey = "session"

// Authenticator resolves a console token to its session
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

type AuthMiddleware struct {
	sessions   Authenticator
	cookieName string
}

func NewAuthMiddleware(sessions Authenticator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// tokenFrom reads the session cookie, falling back to "Bearer <token>"
func (m *AuthMiddleware) tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// Authenticate requires a live console session and puts it in the request context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.tokenFrom(r)
		if token == "" {
			if wantsHTML(r) {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		session, err := m.sessions.Authenticate(r.Context(), token)
		if err != nil {
			if wantsHTML(r) {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireRole restricts an authenticated route to the given roles
func (m *AuthMiddleware) RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := SessionFromContext(r.Context())
			if !slices.Contains(allowed, session.Role) {
				if wantsHTML(r) {
					http.Redirect(w, r, "/dashboard", http.StatusFound)
					return
				}
				http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// WithSession returns a context carrying the session
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionFromContext extracts the session from request context
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*models.Session)
	return s, ok && s != nil
}
