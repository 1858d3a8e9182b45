package handlers

import (
	"net/http"

	"estate-backoffice/internal/middleware"
	"estate-backoffice/internal/session"
	"estate-backoffice/pkg/utils"
)

// workspaceFor returns the workspace of the authenticated caller. It writes
// a 401 and returns nil when the request carries no session.
func workspaceFor(sessions *session.Manager, w http.ResponseWriter, r *http.Request) *session.Workspace {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authorization required")
		return nil
	}
	return sessions.Workspace(s)
}
