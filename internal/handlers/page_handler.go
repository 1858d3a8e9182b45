package handlers

import (
	"html/template"
	"log"
	"net/http"

	"estate-backoffice/internal/middleware"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/session"
	"estate-backoffice/templates"
)

type PageHandler struct {
	templates *template.Template
	Sessions  *session.Manager
}

func NewPageHandler(sessions *session.Manager) *PageHandler {
	// Parse all templates from embedded filesystem
	tmpl := template.Must(template.ParseFS(templates.FS, "*.html"))

	return &PageHandler{
		templates: tmpl,
		Sessions:  sessions,
	}
}

type dashboardPage struct {
	Username        string
	Role            models.Role
	PropertyTypes   []string
	BookingStatuses []string
	InvoiceStatuses []string
	Bookings        any
	Analytics       any
}

// LoginPage serves the login page
func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", nil)
}

// DashboardPage serves the dashboard for the authenticated session
func (h *PageHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	ws := h.Sessions.Workspace(s)

	h.render(w, "dashboard.html", dashboardPage{
		Username:        s.Username,
		Role:            s.Role,
		PropertyTypes:   models.PropertyTypes,
		BookingStatuses: models.BookingStatuses,
		InvoiceStatuses: models.InvoiceStatuses,
		Bookings:        ws.Bookings.Snapshot(),
		Analytics:       ws.Analytics.Snapshot(),
	})
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[Pages] Error rendering %s: %v", name, err)
	}
}
