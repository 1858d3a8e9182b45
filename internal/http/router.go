package http

import (
	"io/fs"
	"net/http"

	"estate-backoffice/internal/handlers"
	"estate-backoffice/internal/middleware"
	"estate-backoffice/internal/models"
	"estate-backoffice/static"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the console routes. actionLogHandler is nil when no database is configured.
func NewRouter(
	pageHandler *handlers.PageHandler,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	viewHandler *handlers.ViewHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	actionLogHandler *handlers.ActionLogHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Serve static files from embedded filesystem
	staticFS, _ := fs.Sub(static.FS, ".")
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public HTML pages
	r.HandleFunc("/", pageHandler.LoginPage).Methods("GET")
	r.HandleFunc("/login", pageHandler.LoginPage).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/demo-login", authHandler.DemoLogin).Methods("POST")

	// Protected HTML pages
	r.Handle("/dashboard", authMiddleware.Authenticate(http.HandlerFunc(pageHandler.DashboardPage))).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)
	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/events/{name}", eventHandler.Dispatch).Methods("POST")
	api.HandleFunc("/bookings/view", viewHandler.BookingsView).Methods("GET")
	api.HandleFunc("/analytics/view", viewHandler.AnalyticsView).Methods("GET")
	api.HandleFunc("/analytics/export", viewHandler.AnalyticsExport).Methods("GET")
	api.HandleFunc("/reports/bookings.xlsx", reportHandler.BookingsXLSX).Methods("GET")
	api.HandleFunc("/reports/bookings.pdf", reportHandler.BookingsPDF).Methods("GET")

	// Admin-only audit trail
	if actionLogHandler != nil {
		r.Handle("/admin/audit",
			authMiddleware.RequireRole(models.RoleAdmin)(http.HandlerFunc(actionLogHandler.ListActionLogs))).Methods("GET")
	}

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
