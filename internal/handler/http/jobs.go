package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/utils"
	"github.com/voxlate/voxlate/models"
)

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: true, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	job, err := h.services.JobService.CreateJob(ctx, req)
	if err != nil {
		log.Err(err).Msg("job creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, job, http.StatusCreated)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	job, err := h.services.JobService.GetJob(ctx, chi.URLParam(r, "jobID"))
	if err != nil {
		log.Err(err).Msg("job lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, job, http.StatusOK)
}

func (h *Handler) getJobStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	status, err := h.services.JobService.GetJobStatus(ctx, chi.URLParam(r, "jobID"))
	if err != nil {
		log.Err(err).Msg("job status lookup failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, models.StatusResponse{Result: status}, http.StatusOK)
}
