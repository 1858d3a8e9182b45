package handlers

import (
	"net/http"
	"strconv"

	"estate-backoffice/internal/repositories"
	"estate-backoffice/pkg/utils"
)

type ActionLogHandler struct {
	Repo *repositories.ActionLogRepository
}

func NewActionLogHandler(repo *repositories.ActionLogRepository) *ActionLogHandler {
	return &ActionLogHandler{Repo: repo}
}

// ListActionLogs handles GET /admin/audit?limit=N, newest first
func (h *ActionLogHandler) ListActionLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.Repo.ListRecent(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to retrieve action logs")
		return
	}
	utils.JSON(w, http.StatusOK, logs)
}
