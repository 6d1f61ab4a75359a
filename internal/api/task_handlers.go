package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/repasoapp/repaso/internal/errors"
	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/models"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.ImportService.ListTasks(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"tasks": tasksOrEmpty(tasks),
		"count": len(tasks),
	})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	task, err := s.ImportService.GetTask(r.Context(), taskID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if task == nil {
		handleError(w, r, errors.NewNotFoundError("task", taskID))
		return
	}

	writeJSON(w, r, http.StatusOK, task)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var path models.LearningPath
	if err := decodeJSON(r, &path); err != nil {
		handleError(w, r, err)
		return
	}

	imported, err := s.ImportService.ImportTasks(r.Context(), path)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("learning path imported: name=%s, tasks=%d", path.Name, imported)
	writeJSON(w, r, http.StatusCreated, map[string]any{
		"imported": imported,
	})
}
