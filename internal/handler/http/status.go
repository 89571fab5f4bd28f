package http

import (
	"net/http"

	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/utils"
	"github.com/voxlate/voxlate/models"
)

// legacyStatus serves GET /status, the original single-job endpoint that the
// published client library polls. It reports the status of the job created
// at server startup.
func (h *Handler) legacyStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	status, err := h.services.JobService.LegacyStatus(ctx)
	if err != nil {
		log.Err(err).Msg("legacy status lookup failed")
		writeError(w, err)
		return
	}

	// a cached "pending" would hide the terminal transition from pollers
	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, models.StatusResponse{Result: status}, http.StatusOK)
}
