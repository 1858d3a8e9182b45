package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"estate-backoffice/internal/analytics"
	"estate-backoffice/internal/apiclient"
	"estate-backoffice/internal/auth"
	"estate-backoffice/internal/booking"
	"estate-backoffice/internal/cache"
	"estate-backoffice/internal/config"
	"estate-backoffice/internal/events"
	"estate-backoffice/internal/metrics"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/timeutil"
	"estate-backoffice/internal/ui"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("username and password are required")
	ErrInvalidRole        = errors.New(`invalid role. Use "admin" or "sales"`)
	ErrSessionRevoked     = errors.New("session was revoked by the booking API")
)

// Workspace is the per-session set of controllers wired to one event bus
type Workspace struct {
	Session   models.Session
	Bookings  *booking.Controller
	Analytics *analytics.Controller
	Feedback  *ui.Notifier
	Board     *analytics.Board
	Bus       *events.Bus
}

// Manager creates console sessions and owns their workspaces
type Manager struct {
	cfg      *config.Config
	api      *apiclient.Client
	store    cache.SessionStore
	jwt      *auth.JWTManager
	archiver analytics.Archiver
	now      timeutil.Clock
	// verifyEvery is how long an upstream token check stays good
	verifyEvery time.Duration

	mu         sync.Mutex
	workspaces map[string]*Workspace
	verified   map[string]time.Time
}

func NewManager(cfg *config.Config, api *apiclient.Client, store cache.SessionStore, jwt *auth.JWTManager, archiver analytics.Archiver) *Manager {
	return &Manager{
		cfg:         cfg,
		api:         api,
		store:       store,
		jwt:         jwt,
		archiver:    archiver,
		now:         time.Now,
		verifyEvery: time.Duration(cfg.Session.VerifyIntervalSeconds) * time.Second,
		workspaces:  make(map[string]*Workspace),
		verified:    make(map[string]time.Time),
	}
}

// Login authenticates against the booking API and opens a console session.
// It returns the session and the signed console token.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.Session, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}
	data, err := m.api.Login(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	return m.start(ctx, data)
}

// DemoLogin opens a session with the API's predefined account for role
func (m *Manager) DemoLogin(ctx context.Context, role string) (*models.Session, string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case "admin", "sales", string(models.RoleSalesPerson):
	default:
		return nil, "", ErrInvalidRole
	}
	data, err := m.api.DemoLogin(ctx, role)
	if err != nil {
		return nil, "", err
	}
	return m.start(ctx, data)
}

func (m *Manager) start(ctx context.Context, data *models.AuthData) (*models.Session, string, error) {
	if data.Token == "" {
		return nil, "", fmt.Errorf("login response carried no token")
	}

	now := m.now()
	s := &models.Session{
		ID:        uuid.NewString(),
		Username:  data.User.Username,
		Role:      data.User.Role,
		APIToken:  data.Token,
		CreatedAt: now,
		ExpiresAt: now.Add(m.jwt.TTL()),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}

	token, err := m.jwt.GenerateToken(s)
	if err != nil {
		m.store.Delete(ctx, s.ID)
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	log.Printf("[Session] %s logged in as %s", s.Username, s.Role)
	return s, token, nil
}

// Authenticate resolves a console token to its live session. A session
// whose API token the booking API no longer accepts is ended here.
func (m *Manager) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	s, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if s.Username != claims.Username {
		return nil, cache.ErrSessionNotFound
	}
	if err := m.verify(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// verify asks GET /auth/verify about the session's API token, at most once
// per verifyEvery. An unreachable API leaves the session alone.
func (m *Manager) verify(ctx context.Context, s *models.Session) error {
	now := m.now()

	m.mu.Lock()
	last, ok := m.verified[s.ID]
	m.mu.Unlock()
	if ok && now.Sub(last) < m.verifyEvery {
		return nil
	}

	user, err := m.api.WithToken(s.APIToken).Verify(ctx)
	switch {
	case errors.Is(err, apiclient.ErrUnauthenticated):
		log.Printf("[Session] API rejected the token of %s, ending session", s.Username)
		m.Logout(ctx, s.ID)
		return ErrSessionRevoked
	case err != nil:
		log.Printf("[Session] Warning: could not verify session of %s: %v", s.Username, err)
		return nil
	case user.Username != "" && user.Username != s.Username:
		log.Printf("[Session] API token of %s now belongs to %s, ending session", s.Username, user.Username)
		m.Logout(ctx, s.ID)
		return ErrSessionRevoked
	}

	m.mu.Lock()
	m.verified[s.ID] = now
	m.mu.Unlock()
	return nil
}

// Workspace returns the session's workspace, building it on first use.
// The role is applied once, here, after login.
func (m *Manager) Workspace(s *models.Session) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ws, ok := m.workspaces[s.ID]; ok {
		return ws
	}

	client := m.api.WithToken(s.APIToken)
	notifier := ui.NewNotifier()
	board := analytics.NewBoard()

	bookings := booking.NewController(client, notifier, booking.Options{
		ComposeFilters: m.cfg.Bookings.ComposeFilters,
	})
	dashboard := analytics.NewController(client, notifier, board, analytics.Options{
		DefaultRangeDays: m.cfg.Analytics.DefaultRangeDays,
		Archiver:         m.archiver,
	})

	bus := events.NewBus()
	bookings.Bind(bus)
	dashboard.Bind(bus)
	bookings.SetUserRole(s.Role)

	ws := &Workspace{
		Session:   *s,
		Bookings:  bookings,
		Analytics: dashboard,
		Feedback:  notifier,
		Board:     board,
		Bus:       bus,
	}
	m.workspaces[s.ID] = ws
	metrics.ActiveSessions.Set(float64(len(m.workspaces)))
	return ws
}

// Logout releases the session's charts, drops its workspace and forgets the session
func (m *Manager) Logout(ctx context.Context, id string) error {
	m.mu.Lock()
	ws, ok := m.workspaces[id]
	delete(m.workspaces, id)
	delete(m.verified, id)
	metrics.ActiveSessions.Set(float64(len(m.workspaces)))
	m.mu.Unlock()

	if ok {
		ws.Analytics.Cleanup()
		log.Printf("[Session] %s logged out", ws.Session.Username)
	}
	return m.store.Delete(ctx, id)
}

// Count is the number of live workspaces
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}
