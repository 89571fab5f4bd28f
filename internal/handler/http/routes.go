package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/status", h.legacyStatus)
		r.Get("/api/version", h.version)
		r.Post("/api/auth/token", h.issueToken)
	})

	// jobs API, guarded when authentication is configured
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/jobs", h.createJob)
		r.Get("/api/jobs/{jobID}", h.getJob)
		r.Get("/api/jobs/{jobID}/status", h.getJobStatus)
		r.Get("/api/jobs/{jobID}/events", h.streamJobEvents)
	})

	return router
}
