package api

import (
	"net/http"
	"strconv"

	"github.com/repasoapp/repaso/internal/errors"
	"github.com/repasoapp/repaso/internal/logger"
)

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	days := s.ForecastDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Warn("invalid days: %s", v)
			handleError(w, r, errors.NewBadRequestError("days must be a non-negative integer"))
			return
		}
		days = n
	}

	entries, err := s.ForecastService.ReviewSchedule(r.Context(), days)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"schedule": entries,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.Statistics(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stats)
}
