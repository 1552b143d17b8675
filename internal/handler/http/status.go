package http

import (
	"net/http"
	"time"

	"github.com/processflow/server/internal/utils"
	"github.com/processflow/server/models"
)

// status is the unauthenticated service banner at the root path.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.StatusResponse{
		Message:   "ProcessFlow backend running",
		Version:   h.version,
		Status:    "online",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}
