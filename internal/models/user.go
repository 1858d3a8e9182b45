package models

import "time"

// Role is the caller's authorization class used for UI gating
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSalesPerson Role = "sales_person"
)

// Valid reports whether r is a role the console knows how to gate
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSalesPerson
}

// User is the account returned by the API on login
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DemoLoginRequest logs in with predefined credentials for a role
type DemoLoginRequest struct {
	Role string `json:"role"`
}

// AuthData is the "data" member of a successful login response
type AuthData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthResponse is the body of POST /auth/login and /auth/demo-login
type AuthResponse struct {
	Message string   `json:"message"`
	Data    AuthData `json:"data"`
}

// VerifyResponse is the body of GET /auth/verify
type VerifyResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Session is a logged-in console user together with the upstream API token
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	APIToken  string    `json:"api_token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
