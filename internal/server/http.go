package server

import (
	"context"
	"net/http"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
)

type httpServer struct {
	server *http.Server

	logger *logger.Logger
}

// newHTTPServer builds the HTTP transport around the chi router. Only the
// header read is bounded by a timeout: the events endpoint holds responses
// open for the lifetime of a job, so no write deadline is set.
func newHTTPServer(router http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           router,
			ReadHeaderTimeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

func (h *httpServer) RunServer() {
	if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		h.logger.Error().Msgf("HTTP server ListenAndServe: %v\n", err)
	}
}

func (h *httpServer) Shutdown() {
	if err := h.server.Shutdown(context.Background()); err != nil {
		h.logger.Error().Msgf("HTTP server Shutdown: %v\n", err)
	}
}
