package http

import (
	"encoding/json"
	"net/http"

	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/utils"
	"github.com/voxlate/voxlate/models"
)

// issueToken exchanges a pre-shared API key for a bearer token used on the
// jobs API. Served on POST /api/auth/token.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: true, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.IssueToken(ctx, req.APIKey)
	if err != nil {
		log.Err(err).Msg("token issuance failed")
		writeError(w, err)
		return
	}

	resp := models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   "Bearer",
	}
	if token.ExpiresAt != nil {
		resp.ExpiresAt = token.ExpiresAt.Time.UTC()
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
