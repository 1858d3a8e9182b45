package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"estate-backoffice/internal/apiclient"
	"estate-backoffice/internal/middleware"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/session"
	"estate-backoffice/pkg/utils"
)

type AuthHandler struct {
	Sessions     *session.Manager
	CookieName   string
	SecureCookie bool
}

func NewAuthHandler(sessions *session.Manager, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{
		Sessions:     sessions,
		CookieName:   cookieName,
		SecureCookie: secure,
	}
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Request body must be JSON")
		return
	}

	s, token, err := h.Sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.loginFailed(w, err)
		return
	}
	h.started(w, r, s, token, "Login successful")
}

// DemoLogin handles POST /auth/demo-login
func (h *AuthHandler) DemoLogin(w http.ResponseWriter, r *http.Request) {
	var req models.DemoLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Request body must be JSON")
		return
	}

	s, token, err := h.Sessions.DemoLogin(r.Context(), req.Role)
	if err != nil {
		h.loginFailed(w, err)
		return
	}
	h.started(w, r, s, token, "Demo login successful as "+string(s.Role))
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	if err := h.Sessions.Logout(r.Context(), s.ID); err != nil {
		log.Printf("[Auth] Error ending session %s: %v", s.ID, err)
	}
	middleware.RecordAction(r.Context(), models.ActionLogout, s.Username+" logged out")

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHandler) started(w http.ResponseWriter, r *http.Request, s *models.Session, token, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	ctx := middleware.WithSession(r.Context(), s)
	middleware.RecordAction(ctx, models.ActionLogin, s.Username+" logged in as "+string(s.Role))

	utils.JSON(w, http.StatusOK, loginResponse{
		Message: message,
		Token:   token,
		User:    models.User{Username: s.Username, Role: s.Role},
	})
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, err error) {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, session.ErrInvalidRole):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		utils.Error(w, status, apiclient.ServerMessage(err, "Login failed"))
	default:
		log.Printf("[Auth] Login error: %v", err)
		utils.Error(w, http.StatusBadGateway, "Network error. Please try again.")
	}
}
