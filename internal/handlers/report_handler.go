package handlers

import (
	"fmt"
	"log"
	"net/http"

	"estate-backoffice/internal/middleware"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/reports"
	"estate-backoffice/internal/session"
	"estate-backoffice/internal/timeutil"
	"estate-backoffice/pkg/utils"
)

type ReportHandler struct {
	Sessions *session.Manager
}

func NewReportHandler(sessions *session.Manager) *ReportHandler {
	return &ReportHandler{Sessions: sessions}
}

// BookingsXLSX handles GET /api/reports/bookings.xlsx for the current filtered view
func (h *ReportHandler) BookingsXLSX(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", reports.BookingsXLSX)
}

// BookingsPDF handles GET /api/reports/bookings.pdf for the current filtered view
func (h *ReportHandler) BookingsPDF(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "pdf", "application/pdf", reports.BookingsPDF)
}

func (h *ReportHandler) serve(w http.ResponseWriter, r *http.Request, ext, contentType string,
	build func([]models.Booking, reports.Meta) ([]byte, error)) {
	ws := workspaceFor(h.Sessions, w, r)
	if ws == nil {
		return
	}

	view := ws.Bookings.Snapshot()
	now := timeutil.Now()
	meta := reports.Meta{
		GeneratedAt:  now,
		GeneratedBy:  ws.Session.Username,
		SearchTerm:   view.SearchTerm,
		StatusFilter: view.StatusFilter,
	}

	content, err := build(ws.Bookings.FilteredBookings(), meta)
	if err != nil {
		log.Printf("[Reports] Error generating %s: %v", ext, err)
		utils.Error(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	filename := fmt.Sprintf("bookings_%s.%s", now.Format("2006-01-02"), ext)
	middleware.RecordAction(r.Context(), models.ActionReportDownload, filename)
	utils.Attachment(w, filename, contentType, content)
}
