package api

import (
	"net/http"
	"strconv"

	"github.com/repasoapp/repaso/internal/errors"
	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/models"
)

func (s *Server) handleNextTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	limit := s.PracticeLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Warn("invalid limit: %s", v)
			handleError(w, r, errors.NewBadRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	tasks, err := s.QueueService.NextTasks(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"tasks": tasksOrEmpty(tasks),
		"count": len(tasks),
	})
}

func (s *Server) handleTasksDue(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.QueueService.TasksDue(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"tasks": tasksOrEmpty(tasks),
		"count": len(tasks),
	})
}

func tasksOrEmpty(tasks []models.Task) []models.Task {
	if tasks == nil {
		return []models.Task{}
	}
	return tasks
}
