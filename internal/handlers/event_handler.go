package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"estate-backoffice/internal/booking"
	"estate-backoffice/internal/events"
	"estate-backoffice/internal/middleware"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/session"
	"estate-backoffice/internal/ui"
	"estate-backoffice/pkg/utils"

	"github.com/gorilla/mux"
)

const maxEventBody = 1 << 20

type EventHandler struct {
	Sessions *session.Manager
}

func NewEventHandler(sessions *session.Manager) *EventHandler {
	return &EventHandler{Sessions: sessions}
}

// EventResponse carries the handler result and the feedback it raised
type EventResponse struct {
	Result any `json:"result,omitempty"`
	ui.State
	Error string `json:"error,omitempty"`
}

// Dispatch handles POST /api/events/{name}. The body is the event payload.
func (h *EventHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFor(h.Sessions, w, r)
	if ws == nil {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	ev := events.Event{Name: mux.Vars(r)["name"]}
	if len(body) > 0 {
		if !json.Valid(body) {
			utils.Error(w, http.StatusBadRequest, "Request body must be JSON")
			return
		}
		ev.Payload = body
	}

	audit := auditFor(ws, ev)

	result, err := ws.Bus.Dispatch(r.Context(), ev)
	resp := EventResponse{Result: result, State: ws.Feedback.Drain()}
	if err != nil {
		resp.Error = err.Error()
		utils.JSON(w, eventStatus(err), resp)
		return
	}

	if audit != nil {
		audit(r, result)
	}
	utils.JSON(w, http.StatusOK, resp)
}

func eventStatus(err error) int {
	switch {
	case errors.Is(err, events.ErrUnknownEvent), errors.Is(err, booking.ErrBookingNotFound):
		return http.StatusNotFound
	default:
		log.Printf("[Events] Rejected event: %v", err)
		return http.StatusBadRequest
	}
}

// auditFor decides, before dispatch, how a mutating event is recorded once it has run
func auditFor(ws *session.Workspace, ev events.Event) func(r *http.Request, result any) {
	switch ev.Name {
	case booking.EventSubmit:
		editing := ws.Bookings.Snapshot().Modal.EditingID
		return func(r *http.Request, result any) {
			view, ok := result.(booking.View)
			if !ok || view.Modal.Open {
				return
			}
			if editing != "" {
				middleware.RecordAction(r.Context(), models.ActionBookingUpdate, "booking "+string(editing))
				return
			}
			middleware.RecordAction(r.Context(), models.ActionBookingCreate, "new booking")
		}
	case booking.EventDelete:
		var p struct {
			ID        models.BookingID `json:"id"`
			Confirmed bool             `json:"confirmed"`
		}
		if err := ev.Decode(&p); err != nil || !p.Confirmed {
			return nil
		}
		return func(r *http.Request, result any) {
			if _, prompt := result.(booking.DeletePrompt); prompt {
				return
			}
			middleware.RecordAction(r.Context(), models.ActionBookingDelete, "booking "+string(p.ID))
		}
	}
	return nil
}
