package http

import (
	"net/http"

	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/utils"
)

type versionResponse struct {
	Version string `json:"version"`
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	version := h.services.AppInfoService.GetAppVersion(ctx)
	log.Debug().Str("version", version).Msg("app version requested")

	utils.WriteJSON(w, versionResponse{Version: version}, http.StatusOK)
}
