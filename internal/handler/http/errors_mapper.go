package http

import (
	"errors"
	"net/http"

	"github.com/voxlate/voxlate/internal/service"
	"github.com/voxlate/voxlate/internal/store"
	"github.com/voxlate/voxlate/internal/utils"
	"github.com/voxlate/voxlate/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidJobID:     http.StatusBadRequest,
	service.ErrInvalidErrorRate: http.StatusBadRequest,
	service.ErrAuthDisabled:     http.StatusServiceUnavailable,
	service.ErrWrongAPIKey:      http.StatusUnauthorized,
	service.ErrTokenIsExpired:   http.StatusUnauthorized,
	service.ErrTokenIsInvalid:   http.StatusUnauthorized,

	store.ErrJobNotFound:      http.StatusNotFound,
	store.ErrJobAlreadyExists: http.StatusConflict,
	store.ErrVersionConflict:  http.StatusConflict,
	store.ErrJobNotPending:    http.StatusConflict,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError renders err as the API's JSON error envelope with the mapped
// HTTP status. Internal errors are masked behind the generic status text.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(http.StatusInternalServerError)
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: true, Message: message}, status)
}
