package handlers

import (
	"net/http"

	"estate-backoffice/internal/analytics"
	"estate-backoffice/internal/middleware"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/session"
	"estate-backoffice/pkg/utils"
)

// NoticeHeader carries success toasts on file downloads, which have no JSON body
const NoticeHeader = "X-Notice"

type ViewHandler struct {
	Sessions *session.Manager
}

func NewViewHandler(sessions *session.Manager) *ViewHandler {
	return &ViewHandler{Sessions: sessions}
}

// BookingsView handles GET /api/bookings/view
func (h *ViewHandler) BookingsView(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFor(h.Sessions, w, r)
	if ws == nil {
		return
	}
	utils.JSON(w, http.StatusOK, ws.Bookings.Snapshot())
}

type analyticsView struct {
	analytics.View
	Configs map[string]analytics.ChartConfig `json:"configs"`
}

// AnalyticsView handles GET /api/analytics/view: KPIs plus the chart configs to draw
func (h *ViewHandler) AnalyticsView(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFor(h.Sessions, w, r)
	if ws == nil {
		return
	}
	utils.JSON(w, http.StatusOK, analyticsView{
		View:    ws.Analytics.Snapshot(),
		Configs: ws.Board.Configs(),
	})
}

// AnalyticsExport handles GET /api/analytics/export
func (h *ViewHandler) AnalyticsExport(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFor(h.Sessions, w, r)
	if ws == nil {
		return
	}

	dl := ws.Analytics.ExportData(r.Context())
	if dl == nil {
		utils.JSON(w, http.StatusBadGateway, EventResponse{State: ws.Feedback.Drain(), Error: "Failed to export data"})
		return
	}
	for _, n := range ws.Feedback.Drain().Notices {
		if n.Kind == "success" {
			w.Header().Add(NoticeHeader, n.Message)
		}
	}

	middleware.RecordAction(r.Context(), models.ActionAnalyticsExport, dl.Filename)
	utils.Attachment(w, dl.Filename, dl.ContentType, dl.Content)
}
