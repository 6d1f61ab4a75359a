package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/answers", s.handleRecordAnswer)
		r.Get("/practice/next", s.handleNextTasks)
		r.Get("/practice/due", s.handleTasksDue)
		r.Get("/schedule", s.handleSchedule)
		r.Get("/stats", s.handleStats)
		r.Get("/tasks", s.handleListTasks)
		r.Get("/tasks/{taskID}", s.handleGetTask)
		r.Post("/tasks/{taskID}/reschedule", s.handleRescheduleTask)
		r.Post("/import", s.handleImport)
	})

	return r
}
