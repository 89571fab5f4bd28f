package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/service"
	"github.com/voxlate/voxlate/internal/utils"
	"github.com/voxlate/voxlate/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication on the
// jobs API.
//
// When authentication is not configured (no API key or sign key) the
// middleware is a pass-through and the jobs API is open. Otherwise it
// inspects the "Authorization" header, extracts the bearer token, validates
// it via [service.AuthService.ParseToken], and stores the authenticated
// client's ID in the request context under [utils.ClientIDCtxKey] before
// delegating to the next handler.
//
// Requests are rejected with HTTP 401 Unauthorized when the header is absent
// or malformed, and when the token is expired or otherwise invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.services.AuthService.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeAuthError(w, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			writeAuthError(w, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				log.Err(err).Msg("token expired")
				writeAuthError(w, service.ErrTokenIsExpired)
				return
			default:
				log.Err(err).Msg("error occurred during parsing token")
				writeAuthError(w, service.ErrTokenIsInvalid)
				return
			}
		}

		// Store the authenticated client's ID in the context so that
		// downstream handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.ClientIDCtxKey, token.ClientID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthError(w http.ResponseWriter, err error) {
	utils.WriteJSON(w, models.ErrorResponse{Error: true, Message: err.Error()}, http.StatusUnauthorized)
}
